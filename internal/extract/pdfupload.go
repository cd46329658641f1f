package extract

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/doclayer/formlens/internal/assemble"
	"github.com/doclayer/formlens/internal/detector"
	"github.com/doclayer/formlens/internal/diagnostics"
	"github.com/doclayer/formlens/internal/form"
	"github.com/doclayer/formlens/internal/ocr"
	"github.com/doclayer/formlens/internal/pdfdoc"
	"github.com/doclayer/formlens/internal/preprocess"
)

// PDFUploadStrategy renders every page of an uploaded PDF, reuses embedded
// text where the document exposes it, and falls back to optical recognition
// for regions without embedded text.
type PDFUploadStrategy struct {
	engine    *ocr.Engine
	baseUnit  string
	renderDPI float64
}

// NewPDFUploadStrategy builds the uploaded-document strategy.
func NewPDFUploadStrategy(engine *ocr.Engine, baseUnit string, renderDPI float64) *PDFUploadStrategy {
	return &PDFUploadStrategy{engine: engine, baseUnit: baseUnit, renderDPI: renderDPI}
}

// SupportedMode implements Strategy.
func (s *PDFUploadStrategy) SupportedMode() ProcessingMode {
	return ModePDFUpload
}

// Extract processes the uploaded PDF page by page.
func (s *PDFUploadStrategy) Extract(ctx Context) (form.Document, error) {
	if len(ctx.Upload) == 0 {
		return form.Document{}, fmt.Errorf("%w: %s mode requires a non-empty PDF upload",
			ErrInput, ModePDFUpload)
	}

	slog.Debug("processing pdf upload", "filename", ctx.Filename, "bytes", len(ctx.Upload))

	doc, err := pdfdoc.Open(ctx.Upload)
	if err != nil {
		return form.Document{}, fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	defer func() { _ = doc.Close() }()

	collector := diagnostics.NewCollector()
	layouts := make([]detector.PageLayout, 0, doc.PageCount())
	for pageIndex := 0; pageIndex < doc.PageCount(); pageIndex++ {
		rendered, err := doc.RenderPage(pageIndex, s.renderDPI)
		if err != nil {
			return form.Document{}, fmt.Errorf("%w: render page %d: %v", ErrProcessing, pageIndex, err)
		}

		mask := preprocess.BuildMask(rendered)
		layout := detector.Analyze(mask, pageIndex)
		collector.Record(layout)

		layout, err = s.enrichWithText(doc, layout, rendered)
		if err != nil {
			return form.Document{}, err
		}
		layouts = append(layouts, layout)

		if ctx.PageProgress != nil {
			ctx.PageProgress(pageIndex, len(layout.Components))
		}
	}

	assembled := assemble.Document(layouts, s.baseUnit)
	collector.LogSummary()
	return assembled, nil
}

// enrichWithText applies the dual-source text policy: embedded text for the
// mapped region when present and non-blank, optical recognition otherwise.
func (s *PDFUploadStrategy) enrichWithText(doc *pdfdoc.Document, layout detector.PageLayout, rendered image.Image) (detector.PageLayout, error) {
	pageW, pageH := doc.PageSize(layout.PageIndex)
	scaleX := layout.Width / pageW
	scaleY := layout.Height / pageH

	// Map each region's pixel box back into page points, keyed by the
	// component's layout node id so lookup and assembly agree.
	regions := make(map[string]pdfdoc.Region, len(layout.Components))
	for _, component := range layout.Components {
		box := component.BoundingBox
		regions[assemble.NodeID(layout.PageIndex, component.Index)] = pdfdoc.Region{
			X: float64(box.Min.X) / scaleX,
			Y: float64(box.Min.Y) / scaleY,
			W: float64(box.Dx()) / scaleX,
			H: float64(box.Dy()) / scaleY,
		}
	}
	embedded := doc.RegionText(layout.PageIndex, regions)

	enriched := make([]detector.Component, 0, len(layout.Components))
	for _, component := range layout.Components {
		text := ocr.Normalize(embedded[assemble.NodeID(layout.PageIndex, component.Index)])
		if text == "" && s.engine.Enabled() {
			var err error
			text, err = s.engine.Recognize(rendered, component.BoundingBox)
			if err != nil {
				return detector.PageLayout{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
			}
		}
		if text != "" {
			component = component.WithText(text)
		}
		enriched = append(enriched, component)
	}
	layout.Components = enriched
	return layout, nil
}
