package form

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutNodeJSONOmitsEmptyOptionals(t *testing.T) {
	node := LayoutNode{
		ID:   "page-0-node-0",
		Type: NodeField,
		Role: RoleUnknown,
		Geom: Geometry{BBox: BoundingBox{X: 10, Y: 20, W: 30, H: 40}},
	}

	data, err := json.Marshal(node)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "field", raw["type"])
	assert.Equal(t, "unknown", raw["role"])
	for _, absent := range []string{"layout", "legend", "text", "style", "widget", "children", "associations"} {
		assert.NotContains(t, raw, absent)
	}

	geom, ok := raw["geom"].(map[string]any)
	require.True(t, ok)
	bbox, ok := geom["bbox"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 10.0, bbox["x"])
	assert.Equal(t, 40.0, bbox["h"])
}

func TestLayoutNodeJSONWidget(t *testing.T) {
	node := LayoutNode{
		ID:     "page-0-node-1",
		Type:   NodeField,
		Role:   RoleUnknown,
		Widget: &WidgetSpec{Type: WidgetCheckbox},
	}

	data, err := json.Marshal(node)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"widget":{"type":"checkbox"}`)
}

func TestMetaJSON(t *testing.T) {
	meta := Meta{
		SchemaVersion: SchemaVersion,
		BaseUnit:      DefaultBaseUnit,
		Pages:         0,
	}

	data, err := json.Marshal(meta)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2.0", raw["schemaVersion"])
	assert.Equal(t, "px", raw["baseUnit"])
	assert.Equal(t, 0.0, raw["pages"])
	assert.NotContains(t, raw, "title")
	assert.NotContains(t, raw, "pageSize")
	assert.NotContains(t, raw, "publisher")
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := Document{
		Meta: Meta{
			SchemaVersion: SchemaVersion,
			Title:         "Application Form",
			BaseUnit:      "px",
			PageSize:      &PageSize{W: 600, H: 800},
			Pages:         1,
		},
		Pages: []Page{{
			Index:     0,
			FlowOrder: []string{"page-0-node-0"},
			Root: LayoutNode{
				ID:   "page-0-root",
				Type: NodeGroup,
				Role: RolePage,
				Layout: &LayoutSpec{
					Kind: LayoutStack, Axis: AxisY, Gap: 12,
					Align: AlignStretch, Justify: JustifyStart,
				},
				Children: []string{"page-0-node-0"},
			},
			Nodes: []LayoutNode{{
				ID:   "page-0-node-0",
				Type: NodeText,
				Role: RoleUnknown,
				Text: "Application Form",
			}},
		}},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var back Document
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, doc, back)

	assert.Contains(t, string(data), `"kind":"stack"`)
	assert.Contains(t, string(data), `"axis":"y"`)
	assert.Contains(t, string(data), `"justify":"start"`)
}
