package codegen

import (
	"time"

	"scenegen/internal/scene"
)

// Stringifier renders target-language literals and fixed tokens. One
// implementation exists per target language.
type Stringifier interface {
	Bool(v bool) string
	Int32(v int32) string
	Int64(v int64) string
	Float(v float64) string
	Vector2(v scene.Vector2) string
	Vector3(v scene.Vector3) string
	Color(c scene.Color) string
	String(s string) string

	// Deref is the member-access token and Scope the scope-resolution
	// token; New prefixes a constructor call; Var declares a local.
	Deref() string
	Scope() string
	New() string
	Null() string
	Var() string

	Int64TypeName() string
	ConstInt64(name string, v int64) string
	FieldDecl(typeName, fieldName string) string
	// TimeSpanFromConstant renders a time-span value read from the
	// named 64-bit tick constant.
	TimeSpanFromConstant(constName string) string
}

// Shell writes the unit-level boilerplate surrounding the generated
// class: file preamble, class signature, and the closing entry point.
type Shell interface {
	WritePreamble(b *Builder, requiresCanvas bool)
	WriteClassStart(b *Builder, className string, size scene.Vector2, duration time.Duration)
	WriteClassEnd(b *Builder, rootFactoryCall, singletonFieldName string)
}

// GeometryBodies emits the drawing-library factory bodies for the four
// canvas geometry kinds. fieldName is empty when the result is not
// cached. The surrounding method skeleton is written by the caller.
type GeometryBodies interface {
	WriteCombination(b *Builder, g *scene.CanvasCombination, resultType, fieldName string, resolve func(scene.NodeID) (string, error)) error
	WriteEllipse(b *Builder, g *scene.CanvasEllipse, resultType, fieldName string)
	WritePath(b *Builder, g *scene.CanvasPath, resultType, fieldName string)
	WriteRoundedRectangle(b *Builder, g *scene.CanvasRoundedRectangle, resultType, fieldName string)
}

// Target bundles the per-language collaborators consumed by the
// compilation engine.
type Target struct {
	Name     string
	Strings  Stringifier
	Shell    Shell
	Geometry GeometryBodies
}
