package scene

import (
	"fmt"
	"time"
)

// Vector2 is a 2D point or size.
type Vector2 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Vector3 is a 3D offset.
type Vector3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// Color is an ARGB color with 8 bits per channel.
type Color struct {
	A uint8 `yaml:"a" json:"a"`
	R uint8 `yaml:"r" json:"r"`
	G uint8 `yaml:"g" json:"g"`
	B uint8 `yaml:"b" json:"b"`
}

// Hex returns the color as AARRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}

var knownColors = []struct {
	name  string
	color Color
}{
	{"Black", Color{255, 0, 0, 0}},
	{"White", Color{255, 255, 255, 255}},
	{"Red", Color{255, 255, 0, 0}},
	{"Green", Color{255, 0, 128, 0}},
	{"Lime", Color{255, 0, 255, 0}},
	{"Blue", Color{255, 0, 0, 255}},
	{"Yellow", Color{255, 255, 255, 0}},
	{"Transparent", Color{0, 0, 0, 0}},
}

// Name returns a friendly name for well-known colors, or the hex form.
// Used when deriving method names for color brushes.
func (c Color) Name() string {
	for _, kc := range knownColors {
		if kc.color == c {
			return kc.name
		}
	}
	return c.Hex()
}

// TimeSpan is an animation duration.
type TimeSpan = time.Duration

// CapKind is a stroke cap style. The default everywhere is Flat.
type CapKind string

const (
	CapFlat   CapKind = "Flat"
	CapSquare CapKind = "Square"
	CapRound  CapKind = "Round"
)

// CombineKind is a boolean geometry combination mode.
type CombineKind string

const (
	CombineUnion     CombineKind = "Union"
	CombineIntersect CombineKind = "Intersect"
	CombineXor       CombineKind = "Xor"
	CombineExclude   CombineKind = "Exclude"
)

// FillRule selects how a path's filled region is determined.
type FillRule string

const (
	FillAlternate FillRule = "Alternate"
	FillWinding   FillRule = "Winding"
)

// PathVerb is one drawing command in a canvas path.
type PathVerb string

const (
	VerbMove  PathVerb = "move"
	VerbLine  PathVerb = "line"
	VerbCubic PathVerb = "cubic"
	VerbClose PathVerb = "close"
)

// PathCommand is a single segment of a canvas path. Points holds the
// operands: 1 point for move/line, 3 for cubic, 0 for close.
type PathCommand struct {
	Verb   PathVerb  `yaml:"verb" json:"verb"`
	Points []Vector2 `yaml:"points,omitempty" json:"points,omitempty"`
}

// PropertyKind tags the value type of a custom property.
type PropertyKind string

const (
	PropertyScalar  PropertyKind = "scalar"
	PropertyVector2 PropertyKind = "vector2"
)

// CustomProperty is one entry of a node's implicit property bag. The bag
// is never a standalone graph node; its values are emitted inline by the
// owning node's factory.
type CustomProperty struct {
	Name    string       `yaml:"name" json:"name"`
	Kind    PropertyKind `yaml:"kind" json:"kind"`
	Scalar  float64      `yaml:"scalar,omitempty" json:"scalar,omitempty"`
	Vector2 Vector2      `yaml:"vector2,omitempty" json:"vector2,omitempty"`
}
