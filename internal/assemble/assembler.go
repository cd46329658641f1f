// Package assemble converts per-page detection results into the final
// hierarchical form document.
package assemble

import (
	"fmt"
	"sort"

	"github.com/doclayer/formlens/internal/detector"
	"github.com/doclayer/formlens/internal/form"
	"github.com/doclayer/formlens/internal/ocr"
)

// rootGap is the vertical gap, in base units, of the synthesized page
// container layout.
const rootGap = 12.0

// NodeID returns the stable identifier of a detected component's node.
func NodeID(pageIndex, componentIndex int) string {
	return fmt.Sprintf("page-%d-node-%d", pageIndex, componentIndex)
}

// RootID returns the stable identifier of a page's synthesized root node.
func RootID(pageIndex int) string {
	return fmt.Sprintf("page-%d-root", pageIndex)
}

// Document assembles the page layouts, in page order, into an immutable
// form document.
func Document(layouts []detector.PageLayout, baseUnit string) form.Document {
	pages := make([]form.Page, 0, len(layouts))
	for _, layout := range layouts {
		pages = append(pages, toPage(layout))
	}
	return form.Document{Meta: buildMeta(layouts, baseUnit), Pages: pages}
}

func buildMeta(layouts []detector.PageLayout, baseUnit string) form.Meta {
	if baseUnit == "" {
		baseUnit = form.DefaultBaseUnit
	}
	meta := form.Meta{
		SchemaVersion: form.SchemaVersion,
		BaseUnit:      baseUnit,
		Pages:         len(layouts),
	}
	if len(layouts) == 0 {
		return meta
	}

	// Page size is taken from the first page only; documents with varying
	// page dimensions report the first page's size.
	first := layouts[0]
	meta.PageSize = &form.PageSize{W: first.Width, H: first.Height}
	meta.Title = resolveTitle(layouts)
	return meta
}

// resolveTitle picks the top-most text component with non-blank text across
// all pages, ties broken by input order.
func resolveTitle(layouts []detector.PageLayout) string {
	var candidates []detector.Component
	for _, layout := range layouts {
		for _, c := range layout.Components {
			if c.Type == detector.ComponentText && ocr.Normalize(c.Text) != "" {
				candidates = append(candidates, c)
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].BoundingBox.Min.Y < candidates[j].BoundingBox.Min.Y
	})
	if len(candidates) == 0 {
		return ""
	}
	return ocr.Normalize(candidates[0].Text)
}

func toPage(layout detector.PageLayout) form.Page {
	flowOrder := make([]string, 0, len(layout.Components))
	nodes := make([]form.LayoutNode, 0, len(layout.Components)+1)

	for _, component := range layout.Components {
		id := NodeID(layout.PageIndex, component.Index)
		flowOrder = append(flowOrder, id)
		nodes = append(nodes, toNode(component, id))
	}

	root := form.LayoutNode{
		ID:   RootID(layout.PageIndex),
		Type: form.NodeGroup,
		Role: form.RolePage,
		Layout: &form.LayoutSpec{
			Kind:    form.LayoutStack,
			Axis:    form.AxisY,
			Gap:     rootGap,
			Align:   form.AlignStretch,
			Justify: form.JustifyStart,
		},
		Geom: form.Geometry{
			BBox: form.BoundingBox{X: 0, Y: 0, W: layout.Width, H: layout.Height},
		},
		Children: append([]string(nil), flowOrder...),
	}
	nodes = append(nodes, root)

	return form.Page{
		Index:     layout.PageIndex,
		FlowOrder: flowOrder,
		Root:      root,
		Nodes:     nodes,
	}
}

func toNode(component detector.Component, id string) form.LayoutNode {
	box := component.BoundingBox
	node := form.LayoutNode{
		ID:   id,
		Type: component.Type.NodeType(),
		Role: form.RoleUnknown,
		Geom: form.Geometry{
			BBox: form.BoundingBox{
				X: float64(box.Min.X),
				Y: float64(box.Min.Y),
				W: float64(box.Dx()),
				H: float64(box.Dy()),
			},
		},
		Text: ocr.Normalize(component.Text),
	}
	if component.WidgetType != "" {
		node.Widget = &form.WidgetSpec{Type: component.WidgetType}
	}
	return node
}
