// Package diagnostics aggregates low-confidence detections across an
// extraction run for observability. It is a side channel only: recording
// never alters the extracted document.
package diagnostics

import (
	"fmt"
	"log/slog"

	"github.com/doclayer/formlens/internal/detector"
)

// ConfidenceThreshold is the boundary below which a detection is reported.
// Components exactly at the threshold are not reported.
const ConfidenceThreshold = 0.5

type lowConfidenceEntry struct {
	pageIndex      int
	componentIndex int
	componentType  detector.ComponentType
	x, y, w, h     int
	confidence     float64
}

// Collector gathers low-confidence detections. One collector serves one
// extraction run; it is not safe for concurrent use.
type Collector struct {
	entries []lowConfidenceEntry
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record inspects every component of a page layout and retains those with
// confidence strictly below the threshold.
func (c *Collector) Record(layout detector.PageLayout) {
	for _, component := range layout.Components {
		if component.Confidence >= ConfidenceThreshold {
			continue
		}
		box := component.BoundingBox
		c.entries = append(c.entries, lowConfidenceEntry{
			pageIndex:      layout.PageIndex,
			componentIndex: component.Index,
			componentType:  component.Type,
			x:              box.Min.X,
			y:              box.Min.Y,
			w:              box.Dx(),
			h:              box.Dy(),
			confidence:     component.Confidence,
		})
	}
}

// LowConfidenceCount returns the number of recorded entries.
func (c *Collector) LowConfidenceCount() int {
	return len(c.entries)
}

// LogSummary emits either a positive confirmation or a warning report
// enumerating every low-confidence entry.
func (c *Collector) LogSummary() {
	if len(c.entries) == 0 {
		slog.Info("all detected elements met the 50% confidence threshold")
		return
	}

	slog.Warn(fmt.Sprintf("detected %d element(s) below the 50%% confidence threshold", len(c.entries)))
	for _, e := range c.entries {
		slog.Warn("low-confidence detection",
			"page", e.pageIndex,
			"component", e.componentIndex,
			"type", string(e.componentType),
			"x", e.x,
			"y", e.y,
			"w", e.w,
			"h", e.h,
			"confidence", fmt.Sprintf("%.3f", e.confidence))
	}
}
