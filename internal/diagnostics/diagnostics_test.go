package diagnostics

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doclayer/formlens/internal/detector"
)

func layoutWith(confidences ...float64) detector.PageLayout {
	components := make([]detector.Component, 0, len(confidences))
	for i, c := range confidences {
		components = append(components, detector.Component{
			Index:       i,
			Type:        detector.ComponentField,
			BoundingBox: image.Rect(0, i*10, 20, i*10+8),
			Confidence:  c,
		})
	}
	return detector.PageLayout{PageIndex: 0, Width: 100, Height: 100, Components: components}
}

func TestCollectorRecordsBelowThreshold(t *testing.T) {
	c := NewCollector()
	c.Record(layoutWith(0.9, 0.45, 0.2))
	assert.Equal(t, 2, c.LowConfidenceCount())
}

func TestCollectorRecordsZeroConfidence(t *testing.T) {
	// An empty detection box scores exactly zero and must show up.
	c := NewCollector()
	c.Record(layoutWith(0.0))
	assert.Equal(t, 1, c.LowConfidenceCount())
}

func TestCollectorThresholdIsStrict(t *testing.T) {
	c := NewCollector()
	c.Record(layoutWith(ConfidenceThreshold))
	assert.Equal(t, 0, c.LowConfidenceCount())

	c.Record(layoutWith(ConfidenceThreshold - 0.001))
	assert.Equal(t, 1, c.LowConfidenceCount())
}

func TestCollectorAccumulatesAcrossPages(t *testing.T) {
	c := NewCollector()
	c.Record(layoutWith(0.1))
	c.Record(layoutWith(0.2, 0.3))
	assert.Equal(t, 3, c.LowConfidenceCount())

	// LogSummary only reports; the recorded state stays put.
	c.LogSummary()
	assert.Equal(t, 3, c.LowConfidenceCount())
}

func TestCollectorEmpty(t *testing.T) {
	c := NewCollector()
	assert.Equal(t, 0, c.LowConfidenceCount())
	c.LogSummary()
}
