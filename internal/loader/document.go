// Package loader reads YAML scene documents, validates them against the
// embedded schema, and builds the in-memory scene graph.
package loader

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"scenegen/internal/scene"
)

//go:embed schema.json
var schemaJSON string

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("scene.schema.json", strings.NewReader(schemaJSON)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("scene.schema.json")
}

// document is the YAML shape of a scene file. Node references are the
// string keys of the nodes map; the builder rewrites them to graph IDs.
type document struct {
	Scene struct {
		Name     string `yaml:"name"`
		Size     docV2  `yaml:"size"`
		Duration string `yaml:"duration"`
	} `yaml:"scene"`
	Root  string             `yaml:"root"`
	Nodes map[string]docNode `yaml:"nodes"`
}

type docV2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type docV3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v docV2) vec() scene.Vector2 { return scene.Vector2{X: v.X, Y: v.Y} }
func (v docV3) vec() scene.Vector3 { return scene.Vector3{X: v.X, Y: v.Y, Z: v.Z} }

// docNode is the union of every node kind's fields. Which fields apply
// is decided by kind during graph building; the rest stay zero.
type docNode struct {
	Kind string `yaml:"kind"`

	// visual / shape transform
	Offset3     *docV3   `yaml:"offset3"`
	CenterPoint *docV3   `yaml:"centerPoint3"`
	Offset      *docV2   `yaml:"offset"`
	Center2     *docV2   `yaml:"centerPoint"`
	Rotation    *float64 `yaml:"rotation"`
	Opacity     *float64 `yaml:"opacity"`
	Scale       *docV2   `yaml:"scale"`
	Size        *docV2   `yaml:"size"`

	Clip     string   `yaml:"clip"`
	Children []string `yaml:"children"`
	ViewBox  string   `yaml:"viewBox"`
	Shapes   []string `yaml:"shapes"`

	// sprite shape
	Geometry         string    `yaml:"geometry"`
	Fill             string    `yaml:"fill"`
	Stroke           string    `yaml:"stroke"`
	StrokeThickness  *float64  `yaml:"strokeThickness"`
	StrokeMiterLimit *float64  `yaml:"strokeMiterLimit"`
	StrokeStartCap   string    `yaml:"strokeStartCap"`
	StrokeEndCap     string    `yaml:"strokeEndCap"`
	StrokeDashCap    string    `yaml:"strokeDashCap"`
	StrokeDashOffset *float64  `yaml:"strokeDashOffset"`
	StrokeDashArray  []float64 `yaml:"strokeDashArray"`

	// brushes
	Color      string   `yaml:"color"`
	StartPoint *docV2   `yaml:"startPoint"`
	EndPoint   *docV2   `yaml:"endPoint"`
	Stops      []string `yaml:"stops"`
	StopOffset *float64 `yaml:"stopOffset"`

	// geometries
	Center       *docV2   `yaml:"center"`
	Radius       *docV2   `yaml:"radius"`
	CornerRadius *docV2   `yaml:"cornerRadius"`
	TrimStart    *float64 `yaml:"trimStart"`
	TrimEnd      *float64 `yaml:"trimEnd"`
	TrimOffset   *float64 `yaml:"trimOffset"`
	Path         string   `yaml:"path"`

	// clip
	LeftInset   *float64 `yaml:"leftInset"`
	TopInset    *float64 `yaml:"topInset"`
	RightInset  *float64 `yaml:"rightInset"`
	BottomInset *float64 `yaml:"bottomInset"`

	// easings
	ControlPoint1          *docV2 `yaml:"controlPoint1"`
	ControlPoint2          *docV2 `yaml:"controlPoint2"`
	StepCount              *int   `yaml:"stepCount"`
	IsFinalStepSingleFrame bool   `yaml:"isFinalStepSingleFrame"`

	// animations
	Target     string         `yaml:"target"`
	Frames     []docFrame     `yaml:"frames"`
	Expression string         `yaml:"expression"`
	Parameters []docParameter `yaml:"parameters"`

	// canvas geometries
	A        string       `yaml:"a"`
	B        string       `yaml:"b"`
	Op       string       `yaml:"op"`
	RadiusX  *float64     `yaml:"radiusX"`
	RadiusY  *float64     `yaml:"radiusY"`
	X        *float64     `yaml:"x"`
	Y        *float64     `yaml:"y"`
	W        *float64     `yaml:"w"`
	H        *float64     `yaml:"h"`
	FillRule string       `yaml:"fillRule"`
	Commands []docCommand `yaml:"commands"`

	Properties []docProperty `yaml:"properties"`
	Animators  []docAnimator `yaml:"animators"`
}

type docFrame struct {
	Progress   float64 `yaml:"progress"`
	Value      float64 `yaml:"value"`
	Vector2    *docV2  `yaml:"vector2"`
	Vector3    *docV3  `yaml:"vector3"`
	Color      string  `yaml:"color"`
	Node       string  `yaml:"node"`
	Expression string  `yaml:"expression"`
	Easing     string  `yaml:"easing"`
}

type docParameter struct {
	Name string `yaml:"name"`
	Node string `yaml:"node"`
}

type docProperty struct {
	Name    string   `yaml:"name"`
	Scalar  *float64 `yaml:"scalar"`
	Vector2 *docV2   `yaml:"vector2"`
}

type docAnimator struct {
	Property   string `yaml:"property"`
	Animation  string `yaml:"animation"`
	Controller *struct {
		Pause     bool          `yaml:"pause"`
		Animators []docAnimator `yaml:"animators"`
	} `yaml:"controller"`
}

type docCommand struct {
	Verb   string  `yaml:"verb"`
	Points []docV2 `yaml:"points"`
}

// validateDocument checks the raw YAML value against the embedded
// schema before any typed decoding happens, so structural errors are
// reported in document terms rather than as builder faults. The value
// is round-tripped through JSON because the validator works on
// JSON-decoded values.
func validateDocument(raw []byte) error {
	var v any
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("parse scene document: %w", err)
	}
	buf, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("parse scene document: %w", err)
	}
	var jv any
	if err := json.Unmarshal(buf, &jv); err != nil {
		return fmt.Errorf("parse scene document: %w", err)
	}
	if err := compiledSchema.Validate(jv); err != nil {
		return fmt.Errorf("scene document does not match schema: %w", err)
	}
	return nil
}

// yamlUnmarshalStrict decodes with unknown fields rejected, so typos in
// field names fail loudly instead of silently producing defaults.
func yamlUnmarshalStrict(raw []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// parseColor accepts #RRGGBB and #AARRGGBB.
func parseColor(s string) (scene.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	var c scene.Color
	switch len(hex) {
	case 6:
		hex = "FF" + hex
	case 8:
	default:
		return c, fmt.Errorf("color %q: want #RRGGBB or #AARRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return c, fmt.Errorf("color %q: %w", s, err)
	}
	c.A = uint8(v >> 24)
	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)
	return c, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("scene duration %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("scene duration %q: must be positive", s)
	}
	return d, nil
}
