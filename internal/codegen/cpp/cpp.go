// Package cpp is the C++/WinRT specialization of the code generator.
// It shares the structural emitters with the C# target and differs only
// in token rendering, the surrounding header shell, and the geometry
// body syntax.
package cpp

import (
	"fmt"
	"strconv"
	"time"

	"scenegen/internal/codegen"
	"scenegen/internal/scene"
)

// New returns the C++ target.
func New() codegen.Target {
	sh := &shell{}
	return codegen.Target{
		Name:     "cpp",
		Strings:  stringifier{},
		Shell:    sh,
		Geometry: geometry{},
	}
}

type stringifier struct{}

func (stringifier) Bool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func (stringifier) Int32(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}

func (stringifier) Int64(v int64) string {
	return strconv.FormatInt(v, 10) + "L"
}

func (stringifier) Float(v float64) string {
	return floatLit(v)
}

func floatLit(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64) + "F"
}

func (stringifier) Vector2(v scene.Vector2) string {
	return fmt.Sprintf("{ %s, %s }", floatLit(v.X), floatLit(v.Y))
}

func (stringifier) Vector3(v scene.Vector3) string {
	return fmt.Sprintf("{ %s, %s, %s }", floatLit(v.X), floatLit(v.Y), floatLit(v.Z))
}

func (stringifier) Color(c scene.Color) string {
	return fmt.Sprintf("ColorHelper::FromArgb(0x%02X, 0x%02X, 0x%02X, 0x%02X)", c.A, c.R, c.G, c.B)
}

func (stringifier) String(v string) string {
	return "L" + strconv.Quote(v)
}

func (stringifier) Deref() string { return "->" }
func (stringifier) Scope() string { return "::" }
func (stringifier) New() string   { return "ref new " }
func (stringifier) Null() string  { return "nullptr" }
func (stringifier) Var() string   { return "auto " }

func (stringifier) Int64TypeName() string { return "int64_t" }

func (stringifier) ConstInt64(name string, v int64) string {
	return fmt.Sprintf("static constexpr int64_t %s{ %dL };", name, v)
}

func (stringifier) FieldDecl(typeName, fieldName string) string {
	return fmt.Sprintf("%s^ %s{};", typeName, fieldName)
}

func (stringifier) TimeSpanFromConstant(constName string) string {
	return fmt.Sprintf("TimeSpan{ %s }", constName)
}

type shell struct {
	className string
	size      scene.Vector2
	duration  time.Duration
}

func (sh *shell) WritePreamble(b *codegen.Builder, requiresCanvas bool) {
	b.WriteLine("// <auto-generated>")
	b.WriteLine("// This file was generated by scenegen. Changes will be lost when the")
	b.WriteLine("// file is regenerated.")
	b.WriteLine("// </auto-generated>")
	b.BlankLine()
	b.WriteLine("#include \"pch.h\"")
	if requiresCanvas {
		b.WriteLine("#include \"WinCompData.h\"")
	}
	b.BlankLine()
	b.WriteLine("using namespace Windows::Foundation;")
	b.WriteLine("using namespace Windows::Foundation::Numerics;")
	b.WriteLine("using namespace Windows::UI;")
	b.WriteLine("using namespace Windows::UI::Composition;")
	if requiresCanvas {
		b.WriteLine("using namespace Microsoft::Graphics::Canvas::Geometry;")
	}
	b.BlankLine()
}

func (sh *shell) WriteClassStart(b *codegen.Builder, className string, size scene.Vector2, duration time.Duration) {
	sh.className = className
	sh.size = size
	sh.duration = duration
	b.WriteLine("namespace AnimatedVisuals")
	b.OpenScope()
	b.WriteLine(fmt.Sprintf("ref class %s sealed : IAnimatedVisual", className))
	b.OpenScope()
	b.WriteLine("Compositor^ _c{};")
	b.WriteLine("Visual^ _rootVisual{};")
}

func (sh *shell) WriteClassEnd(b *codegen.Builder, rootFactoryCall, singletonFieldName string) {
	b.WriteLine("internal:")
	b.WriteLine(fmt.Sprintf("%s(Compositor^ compositor)", sh.className))
	b.OpenScope()
	b.WriteLine("_c = compositor;")
	b.WriteLine(fmt.Sprintf("%s = compositor->CreateExpressionAnimation();", singletonFieldName))
	b.WriteLine(fmt.Sprintf("_rootVisual = %s;", rootFactoryCall))
	b.CloseScope()
	b.BlankLine()
	b.WriteLine("public:")
	b.WriteLine("property Visual^ RootVisual { Visual^ get() { return _rootVisual; } }")
	b.WriteLine("property TimeSpan Duration { TimeSpan get() { return TimeSpan{ c_durationTicks }; } }")
	s := stringifier{}
	b.WriteLine(fmt.Sprintf("property float2 Size { float2 get() { return %s; } }", s.Vector2(sh.size)))
	b.WriteLine("virtual ~" + sh.className + "() { }")
	b.Unindent()
	b.WriteLine("};")
	b.CloseScope()
}

type geometry struct{}

func writeResult(b *codegen.Builder, fieldName, expr string) {
	if fieldName != "" {
		b.WriteLine(fmt.Sprintf("auto result = %s = %s;", fieldName, expr))
	} else {
		b.WriteLine(fmt.Sprintf("auto result = %s;", expr))
	}
}

func (geometry) WriteCombination(b *codegen.Builder, g *scene.CanvasCombination, resultType, fieldName string, resolve func(scene.NodeID) (string, error)) error {
	a, err := resolve(g.A)
	if err != nil {
		return err
	}
	bb, err := resolve(g.B)
	if err != nil {
		return err
	}
	writeResult(b, fieldName, fmt.Sprintf("%s->CombineWith(%s, float3x2::identity(), CanvasGeometryCombine::%s)", a, bb, g.Op))
	return nil
}

func (geometry) WriteEllipse(b *codegen.Builder, g *scene.CanvasEllipse, resultType, fieldName string) {
	writeResult(b, fieldName, fmt.Sprintf("%s::CreateEllipse(nullptr, %s, %s, %s, %s)",
		resultType, floatLit(g.Center.X), floatLit(g.Center.Y), floatLit(g.RadiusX), floatLit(g.RadiusY)))
}

func (geometry) WritePath(b *codegen.Builder, g *scene.CanvasPath, resultType, fieldName string) {
	b.WriteLine("auto builder = ref new CanvasPathBuilder(nullptr);")
	b.WriteLine(fmt.Sprintf("builder->SetFilledRegionDetermination(CanvasFilledRegionDetermination::%s);", g.FillRule))
	open := false
	for _, cmd := range g.Commands {
		switch cmd.Verb {
		case scene.VerbMove:
			if open {
				b.WriteLine("builder->EndFigure(CanvasFigureLoop::Open);")
			}
			b.WriteLine(fmt.Sprintf("builder->BeginFigure(%s);", vec2(cmd.Points[0])))
			open = true
		case scene.VerbLine:
			b.WriteLine(fmt.Sprintf("builder->AddLine(%s);", vec2(cmd.Points[0])))
		case scene.VerbCubic:
			b.WriteLine(fmt.Sprintf("builder->AddCubicBezier(%s, %s, %s);",
				vec2(cmd.Points[0]), vec2(cmd.Points[1]), vec2(cmd.Points[2])))
		case scene.VerbClose:
			b.WriteLine("builder->EndFigure(CanvasFigureLoop::Closed);")
			open = false
		}
	}
	if open {
		b.WriteLine("builder->EndFigure(CanvasFigureLoop::Open);")
	}
	writeResult(b, fieldName, fmt.Sprintf("%s::CreatePath(builder)", resultType))
}

func (geometry) WriteRoundedRectangle(b *codegen.Builder, g *scene.CanvasRoundedRectangle, resultType, fieldName string) {
	writeResult(b, fieldName, fmt.Sprintf("%s::CreateRoundedRectangle(nullptr, %s, %s, %s, %s, %s, %s)",
		resultType, floatLit(g.X), floatLit(g.Y), floatLit(g.W), floatLit(g.H), floatLit(g.RadiusX), floatLit(g.RadiusY)))
}

func vec2(v scene.Vector2) string {
	return stringifier{}.Vector2(v)
}
