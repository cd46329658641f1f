// Package detector finds candidate regions in a binary page mask and
// classifies them into semantic component types with a confidence score.
package detector

import (
	"image"

	"github.com/doclayer/formlens/internal/form"
)

// ComponentType classifies a detected region.
type ComponentType string

const (
	ComponentText  ComponentType = "TEXT"
	ComponentField ComponentType = "FIELD"
	ComponentTable ComponentType = "TABLE"
	ComponentImage ComponentType = "IMAGE"
	ComponentGroup ComponentType = "GROUP"
)

// NodeType maps the component type onto the document model node type.
func (t ComponentType) NodeType() form.NodeType {
	switch t {
	case ComponentText:
		return form.NodeText
	case ComponentField:
		return form.NodeField
	case ComponentTable:
		return form.NodeTable
	case ComponentImage:
		return form.NodeImage
	default:
		return form.NodeGroup
	}
}

// Component is a single detected region. Enrichment (text, reindexing)
// replaces the value rather than mutating it in place, so upstream outputs
// are never retroactively altered.
type Component struct {
	Index       int
	Type        ComponentType
	BoundingBox image.Rectangle
	Text        string
	Confidence  float64
	WidgetType  form.WidgetType
}

// WithText returns a copy of the component carrying the given text.
func (c Component) WithText(text string) Component {
	c.Text = text
	return c
}

// PageLayout is the ordered detection result for one page. Components are
// sorted top-to-bottom then left-to-right and indexed densely from zero.
type PageLayout struct {
	PageIndex  int
	Width      float64
	Height     float64
	Components []Component
}
