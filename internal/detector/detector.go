package detector

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"sort"

	"github.com/doclayer/formlens/internal/form"
	"github.com/doclayer/formlens/internal/imgproc"
)

const (
	// Components smaller than this many pixels in either dimension are
	// treated as scan noise.
	minComponentSide = 4

	// Area-ratio window relative to the page; filters stray speckles and
	// near-full-page false detections.
	minComponentAreaRatio = 0.0005
	maxComponentAreaRatio = 0.8
)

// Analyze extracts, filters and classifies regions from a binary page mask.
// The mask is produced by the preprocessor and shares the page's pixel
// dimensions. A page with no surviving regions yields a layout with an
// empty component list.
func Analyze(mask *image.Gray, pageIndex int) PageLayout {
	b := mask.Bounds()
	width := float64(b.Dx())
	height := float64(b.Dy())
	pageArea := width * height

	var components []Component
	for _, rect := range contourBoxes(mask) {
		if rect.Dx() <= minComponentSide || rect.Dy() <= minComponentSide {
			continue
		}
		areaRatio := float64(rect.Dx()*rect.Dy()) / pageArea
		if areaRatio < minComponentAreaRatio || areaRatio > maxComponentAreaRatio {
			continue
		}
		typ := classify(rect)
		components = append(components, Component{
			Index:       len(components),
			Type:        typ,
			BoundingBox: rect,
			Confidence:  confidence(mask, rect),
			WidgetType:  inferWidgetType(typ, rect),
		})
	}

	sort.SliceStable(components, func(i, j int) bool {
		if components[i].BoundingBox.Min.Y != components[j].BoundingBox.Min.Y {
			return components[i].BoundingBox.Min.Y < components[j].BoundingBox.Min.Y
		}
		return components[i].BoundingBox.Min.X < components[j].BoundingBox.Min.X
	})

	reindexed := make([]Component, 0, len(components))
	for order, c := range components {
		c.Index = order
		reindexed = append(reindexed, c)
	}

	for _, c := range reindexed {
		if c.Type != ComponentGroup {
			continue
		}
		slog.Info("group detected",
			"page", pageIndex,
			"component", c.Index,
			"x", c.BoundingBox.Min.X,
			"y", c.BoundingBox.Min.Y,
			"w", c.BoundingBox.Dx(),
			"h", c.BoundingBox.Dy(),
			"confidence", fmt.Sprintf("%.3f", c.Confidence))
	}

	return PageLayout{PageIndex: pageIndex, Width: width, Height: height, Components: reindexed}
}

// classify maps a bounding rectangle to a component type. The cascade is a
// fixed priority order; comparison operators are part of the contract.
func classify(rect image.Rectangle) ComponentType {
	w, h := rect.Dx(), rect.Dy()
	aspectRatio := float64(w) / float64(h)
	switch {
	case aspectRatio >= 8 && h < 80:
		return ComponentText
	case w < 80 && h < 80:
		return ComponentField
	case w > h*4:
		return ComponentText
	case float64(h) > float64(w)*1.5:
		return ComponentGroup
	default:
		return ComponentField
	}
}

// inferWidgetType derives a widget kind for field components. Near-square
// boxes read as checkboxes, tall boxes as multi-line inputs.
func inferWidgetType(typ ComponentType, rect image.Rectangle) form.WidgetType {
	if typ != ComponentField {
		return ""
	}
	aspectRatio := float64(rect.Dx()) / float64(rect.Dy())
	if aspectRatio < 1.2 {
		return form.WidgetCheckbox
	}
	if rect.Dy() > 60 {
		return form.WidgetTextarea
	}
	return form.WidgetText
}

// confidence scores a detection by its ink coverage: the mean normalized
// mask intensity within the bounds-clipped box, clamped to [0,1]. Sparse or
// near-empty boxes score low.
func confidence(mask *image.Gray, rect image.Rectangle) float64 {
	norm := imgproc.MeanValue(mask, rect) / 255.0
	return math.Min(1.0, math.Max(0.0, norm))
}
