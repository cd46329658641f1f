package extract

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/doclayer/formlens/internal/assemble"
	"github.com/doclayer/formlens/internal/detector"
	"github.com/doclayer/formlens/internal/diagnostics"
	"github.com/doclayer/formlens/internal/form"
	"github.com/doclayer/formlens/internal/imgproc"
	"github.com/doclayer/formlens/internal/ocr"
	"github.com/doclayer/formlens/internal/preprocess"
)

// ReferenceImageStrategy analyzes a statically configured ordered list of
// page images. Recognition, when enabled, is optical-only.
type ReferenceImageStrategy struct {
	resources []string
	engine    *ocr.Engine
	baseUnit  string
}

// NewReferenceImageStrategy builds the reference-image strategy.
func NewReferenceImageStrategy(resources []string, engine *ocr.Engine, baseUnit string) *ReferenceImageStrategy {
	return &ReferenceImageStrategy{resources: resources, engine: engine, baseUnit: baseUnit}
}

// SupportedMode implements Strategy.
func (s *ReferenceImageStrategy) SupportedMode() ProcessingMode {
	return ModeReferenceImages
}

// Extract runs detection and optical recognition over every configured
// image, in order, with sequential zero-based page indices.
func (s *ReferenceImageStrategy) Extract(ctx Context) (form.Document, error) {
	if len(ctx.Upload) > 0 {
		slog.Info("upload ignored: reference-image mode operates on configured resources",
			"filename", ctx.Filename)
	}
	if len(s.resources) == 0 {
		return form.Document{}, fmt.Errorf("%w: no reference images configured for %s mode",
			ErrConfiguration, ModeReferenceImages)
	}

	collector := diagnostics.NewCollector()
	layouts := make([]detector.PageLayout, 0, len(s.resources))
	for pageIndex, path := range s.resources {
		img, err := imgproc.LoadImage(path)
		if err != nil {
			return form.Document{}, fmt.Errorf("%w: reference image %s: %v", ErrResource, path, err)
		}

		mask := preprocess.BuildMask(img)
		layout := detector.Analyze(mask, pageIndex)
		collector.Record(layout)

		layout, err = s.applyOCR(layout, img)
		if err != nil {
			return form.Document{}, err
		}
		layouts = append(layouts, layout)

		if ctx.PageProgress != nil {
			ctx.PageProgress(pageIndex, len(layout.Components))
		}
	}

	doc := assemble.Document(layouts, s.baseUnit)
	collector.LogSummary()
	return doc, nil
}

// applyOCR enriches every component with optically recognized text,
// replacing component values rather than mutating them.
func (s *ReferenceImageStrategy) applyOCR(layout detector.PageLayout, img image.Image) (detector.PageLayout, error) {
	if !s.engine.Enabled() {
		return layout, nil
	}

	enriched := make([]detector.Component, 0, len(layout.Components))
	for _, component := range layout.Components {
		text, err := s.engine.Recognize(img, component.BoundingBox)
		if err != nil {
			return detector.PageLayout{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		if text != "" {
			component = component.WithText(text)
		}
		enriched = append(enriched, component)
	}
	layout.Components = enriched
	return layout, nil
}
