// Package schematic contains the data model for a single-line diagram:
// component nodes, the ownership forest, pages and projects.
package schematic

import "strconv"

// NodeType classifies a component and drives its default presentation.
type NodeType string

const (
	TypeSystemRoot  NodeType = "system_root" // utility supply / grid intake
	TypeGenerator   NodeType = "generator"
	TypeTransformer NodeType = "transformer"
	TypePanel       NodeType = "panel" // distribution board
	TypeBreaker     NodeType = "breaker"
	TypeSwitch      NodeType = "switch"
	TypeLoad        NodeType = "load"
	TypeUPS         NodeType = "ups"
	TypeMeter       NodeType = "meter"
)

// IsSource reports whether the type represents a supply point. Source
// types are preferred as the parent side when two nodes are connected.
func (t NodeType) IsSource() bool {
	return t == TypeSystemRoot || t == TypeGenerator
}

// TypeConfig holds the per-type presentation defaults and which optional
// fields are relevant for the type.
type TypeConfig struct {
	Label      string // display name of the type itself
	Icon       rune   // glyph used in terminal rendering
	Color      string // default icon color (hex)
	Shape      Shape  // default shape override
	HasRatings bool   // current/voltage/power fields apply
	CanGroup   bool   // may be wrapped in a panel
}

// typeConfigs is the closed lookup table keyed by NodeType. Unknown types
// fall back to defaultConfig.
var typeConfigs = map[NodeType]TypeConfig{
	TypeSystemRoot:  {Label: "Supply", Icon: '⏚', Color: "#1f6feb", HasRatings: true},
	TypeGenerator:   {Label: "Generator", Icon: 'G', Color: "#9e6a03", Shape: ShapeCircle, HasRatings: true},
	TypeTransformer: {Label: "Transformer", Icon: 'T', Color: "#8250df", Shape: ShapeCircle, HasRatings: true, CanGroup: true},
	TypePanel:       {Label: "Distribution Board", Icon: '▤', Color: "#57606a", HasRatings: true, CanGroup: true},
	TypeBreaker:     {Label: "Breaker", Icon: '/', Color: "#cf222e", HasRatings: true, CanGroup: true},
	TypeSwitch:      {Label: "Switch", Icon: 'S', Color: "#bf8700", HasRatings: true, CanGroup: true},
	TypeLoad:        {Label: "Load", Icon: 'L', Color: "#2da44e", HasRatings: true, CanGroup: true},
	TypeUPS:         {Label: "UPS", Icon: 'U', Color: "#0969da", Shape: ShapeSquare, HasRatings: true, CanGroup: true},
	TypeMeter:       {Label: "Meter", Icon: 'M', Color: "#57606a", Shape: ShapeCircle, CanGroup: true},
}

var defaultConfig = TypeConfig{Label: "Component", Icon: '?', Color: "#57606a", HasRatings: true, CanGroup: true}

// Config returns the presentation defaults for the type.
func (t NodeType) Config() TypeConfig {
	if c, ok := typeConfigs[t]; ok {
		return c
	}
	return defaultConfig
}

// Shape overrides the rendered outline of a node.
type Shape string

const (
	ShapeDefault Shape = ""
	ShapeCircle  Shape = "circle"
	ShapeSquare  Shape = "square"
)

// Offset is a persisted manual nudge added on top of the computed layout
// position.
type Offset struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// IsZero reports whether the offset is the default.
func (o Offset) IsZero() bool {
	return o.DX == 0 && o.DY == 0
}

// Add returns the offset translated by (dx, dy).
func (o Offset) Add(dx, dy int) Offset {
	return Offset{DX: o.DX + dx, DY: o.DY + dy}
}

// EdgeStyle describes the primary edge feeding into a node from its
// parent. It travels with the child node.
type EdgeStyle struct {
	Color       string `json:"color,omitempty"`
	Dash        string `json:"dash,omitempty"`    // stroke-dasharray style pattern, "" = solid
	StartMarker string `json:"startMarker,omitempty"`
	EndMarker   string `json:"endMarker,omitempty"`
	Routing     string `json:"routing,omitempty"` // "" = orthogonal elbow, "straight" = direct
	CableSize   string `json:"cableSize,omitempty"`
}

// RoutingStraight requests a direct line instead of an elbow path.
const RoutingStraight = "straight"

// Node is one component in the diagram. Children are exclusively owned:
// deleting a node cascades to all descendants. Extra lists ids of other
// nodes this node is additionally fed from; those links never imply
// ownership and never cascade.
type Node struct {
	ID          string   `json:"id"`
	Type        NodeType `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Model       string   `json:"model,omitempty"`

	Current float64 `json:"current,omitempty"` // rating, A
	Voltage float64 `json:"voltage,omitempty"` // V
	Power   float64 `json:"power,omitempty"`   // apparent power, kVA

	HasMeter        bool   `json:"hasMeter,omitempty"`
	MeterNumber     string `json:"meterNumber,omitempty"`
	HasGenerator    bool   `json:"hasGenerator,omitempty"`
	GeneratorName   string `json:"generatorName,omitempty"`
	ExcludeMetering bool   `json:"excludeMetering,omitempty"`
	AirConditioning bool   `json:"airConditioning,omitempty"`
	Reserved        bool   `json:"reserved,omitempty"`

	IconColor  string `json:"iconColor,omitempty"`
	Background string `json:"background,omitempty"`
	Shape      Shape  `json:"shape,omitempty"`
	Icon       []byte `json:"icon,omitempty"` // embedded raster icon
	Location   string `json:"location,omitempty"`

	Offset    Offset    `json:"offset,omitempty"`
	Collapsed bool      `json:"collapsed,omitempty"`
	EdgeStyle EdgeStyle `json:"edgeStyle,omitempty"`

	Children []*Node  `json:"children,omitempty"`
	Extra    []string `json:"extraConnections,omitempty"`
}

// SpecLine formats the numeric ratings for display ("63A 400V 40kVA").
// Empty when no rating is set or the type carries none.
func (n *Node) SpecLine() string {
	if !n.Type.Config().HasRatings {
		return ""
	}
	var s string
	if n.Current > 0 {
		s += trimFloat(n.Current) + "A"
	}
	if n.Voltage > 0 {
		if s != "" {
			s += " "
		}
		s += trimFloat(n.Voltage) + "V"
	}
	if n.Power > 0 {
		if s != "" {
			s += " "
		}
		s += trimFloat(n.Power) + "kVA"
	}
	return s
}

// Badges returns the short status pills shown on the node.
func (n *Node) Badges() []string {
	var b []string
	if n.HasMeter {
		if n.MeterNumber != "" {
			b = append(b, "M:"+n.MeterNumber)
		} else {
			b = append(b, "M")
		}
	}
	if n.HasGenerator {
		if n.GeneratorName != "" {
			b = append(b, "G:"+n.GeneratorName)
		} else {
			b = append(b, "G")
		}
	}
	if n.ExcludeMetering {
		b = append(b, "XM")
	}
	if n.AirConditioning {
		b = append(b, "AC")
	}
	if n.Reserved {
		b = append(b, "RES")
	}
	return b
}

// DisplayShape returns the node's shape override, or the type default
// when none is set.
func (n *Node) DisplayShape() Shape {
	if n.Shape != ShapeDefault {
		return n.Shape
	}
	return n.Type.Config().Shape
}

// DisplayColor returns the node's icon color override, or the type
// default when none is set.
func (n *Node) DisplayColor() string {
	if n.IconColor != "" {
		return n.IconColor
	}
	return n.Type.Config().Color
}

// HasExtra reports whether id is already an auxiliary feed of this node.
func (n *Node) HasExtra(id string) bool {
	for _, e := range n.Extra {
		if e == id {
			return true
		}
	}
	return false
}

// HasChild reports whether id is an immediate child.
func (n *Node) HasChild(id string) bool {
	for _, c := range n.Children {
		if c.ID == id {
			return true
		}
	}
	return false
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
