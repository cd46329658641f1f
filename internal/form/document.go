// Package form defines the layout document model produced by an extraction
// run. The JSON shape is a wire contract: optional fields are omitted when
// absent, never serialized as null.
package form

// SchemaVersion is the fixed schema version stamped into document metadata.
const SchemaVersion = "2.0"

// DefaultBaseUnit is the measurement unit used when none is configured.
const DefaultBaseUnit = "px"

// NodeType classifies a layout node.
type NodeType string

const (
	NodeGroup NodeType = "group"
	NodeText  NodeType = "text"
	NodeField NodeType = "field"
	NodeTable NodeType = "table"
	NodeImage NodeType = "image"
)

// NodeRole is the semantic role of a node within the page.
type NodeRole string

const (
	RolePage      NodeRole = "page"
	RoleHeader    NodeRole = "header"
	RoleSection   NodeRole = "section"
	RoleLabel     NodeRole = "label"
	RoleHeading   NodeRole = "heading"
	RoleParagraph NodeRole = "paragraph"
	RoleFieldset  NodeRole = "fieldset"
	RoleFooter    NodeRole = "footer"
	RoleNote      NodeRole = "note"
	RoleBody      NodeRole = "body"
	RoleUnknown   NodeRole = "unknown"
)

// WidgetType identifies an input widget kind inferred for a field node.
type WidgetType string

const (
	WidgetText      WidgetType = "text"
	WidgetTextarea  WidgetType = "textarea"
	WidgetSelect    WidgetType = "select"
	WidgetCheckbox  WidgetType = "checkbox"
	WidgetRadio     WidgetType = "radio"
	WidgetDate      WidgetType = "date"
	WidgetNumber    WidgetType = "number"
	WidgetSignature WidgetType = "signature"
)

// LayoutKind describes how a container arranges its children.
type LayoutKind string

const (
	LayoutStack LayoutKind = "stack"
	LayoutRow   LayoutKind = "row"
	LayoutGrid  LayoutKind = "grid"
	LayoutFlow  LayoutKind = "flow"
)

// LayoutAxis is the main axis of a container layout.
type LayoutAxis string

const (
	AxisX LayoutAxis = "x"
	AxisY LayoutAxis = "y"
	AxisZ LayoutAxis = "z"
)

// LayoutAlignment is the cross-axis alignment of a container layout.
type LayoutAlignment string

const (
	AlignStart    LayoutAlignment = "start"
	AlignCenter   LayoutAlignment = "center"
	AlignEnd      LayoutAlignment = "end"
	AlignStretch  LayoutAlignment = "stretch"
	AlignBaseline LayoutAlignment = "baseline"
)

// LayoutJustify is the main-axis distribution of a container layout.
type LayoutJustify string

const (
	JustifyStart        LayoutJustify = "start"
	JustifyCenter       LayoutJustify = "center"
	JustifyEnd          LayoutJustify = "end"
	JustifySpaceBetween LayoutJustify = "space-between"
	JustifySpaceAround  LayoutJustify = "space-around"
	JustifySpaceEvenly  LayoutJustify = "space-evenly"
)

// BoundingBox is an axis-aligned box in base-unit coordinates.
type BoundingBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Geometry carries the spatial extent of a node.
type Geometry struct {
	BBox BoundingBox `json:"bbox"`
}

// PageSize is the page extent in base units.
type PageSize struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// LayoutSpec describes container layout. Only synthesized page roots carry
// one in the current pipeline.
type LayoutSpec struct {
	Kind    LayoutKind      `json:"kind"`
	Axis    LayoutAxis      `json:"axis"`
	Gap     float64         `json:"gap"`
	Align   LayoutAlignment `json:"align"`
	Justify LayoutJustify   `json:"justify"`
}

// WidgetSpec describes the input widget semantics of a field node. Name,
// options and required are schema placeholders; the detection pipeline only
// populates the type.
type WidgetSpec struct {
	Type     WidgetType `json:"type"`
	Name     string     `json:"name,omitempty"`
	Options  []string   `json:"options,omitempty"`
	Required *bool      `json:"required,omitempty"`
}

// NodeStyle holds typographic hints. Not populated by detection; kept in the
// schema for downstream producers.
type NodeStyle struct {
	FontFamily string   `json:"fontFamily,omitempty"`
	FontSize   *float64 `json:"fontSize,omitempty"`
	Weight     string   `json:"weight,omitempty"`
	Color      string   `json:"color,omitempty"`
	Leading    *float64 `json:"leading,omitempty"`
	Tracking   *float64 `json:"tracking,omitempty"`
}

// NodeAssociations links a node to related nodes (label/describedBy). Present
// for forward compatibility; detection does not populate it.
type NodeAssociations struct {
	LabelFor    string   `json:"labelFor,omitempty"`
	DescribedBy []string `json:"describedBy,omitempty"`
}

// LayoutNode is a single region or synthesized container on a page.
type LayoutNode struct {
	ID           string            `json:"id"`
	Type         NodeType          `json:"type"`
	Role         NodeRole          `json:"role"`
	Layout       *LayoutSpec       `json:"layout,omitempty"`
	Geom         Geometry          `json:"geom"`
	Legend       string            `json:"legend,omitempty"`
	Text         string            `json:"text,omitempty"`
	Style        *NodeStyle        `json:"style,omitempty"`
	Widget       *WidgetSpec       `json:"widget,omitempty"`
	Children     []string          `json:"children,omitempty"`
	Associations *NodeAssociations `json:"associations,omitempty"`
}

// Page is one page of the assembled document.
type Page struct {
	Index     int          `json:"index"`
	FlowOrder []string     `json:"flowOrder"`
	Root      LayoutNode   `json:"root"`
	Nodes     []LayoutNode `json:"nodes"`
}

// Meta carries document-level metadata.
type Meta struct {
	SchemaVersion string    `json:"schemaVersion"`
	Title         string    `json:"title,omitempty"`
	Publisher     string    `json:"publisher,omitempty"`
	Edition       string    `json:"edition,omitempty"`
	BaseUnit      string    `json:"baseUnit"`
	PageSize      *PageSize `json:"pageSize,omitempty"`
	Pages         int       `json:"pages"`
}

// Document is the root output artifact of an extraction run. It is immutable
// once assembled.
type Document struct {
	Meta  Meta   `json:"meta"`
	Pages []Page `json:"pages"`
}
