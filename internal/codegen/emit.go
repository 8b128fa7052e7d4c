package codegen

import (
	"fmt"

	"scenegen/internal/scene"
)

// writeFactory emits the factory method for one retained node. Dispatch
// is exhaustive over the closed variant set; an unknown kind means an
// emitter is missing and aborts the run.
func (ctx *context) writeFactory(cn *CompiledNode) error {
	switch cn.Canonical.Kind() {
	case scene.KindContainerVisual:
		return ctx.writeContainerVisual(cn)
	case scene.KindShapeVisual:
		return ctx.writeShapeVisual(cn)
	case scene.KindSpriteShape:
		return ctx.writeSpriteShape(cn)
	case scene.KindContainerShape:
		return ctx.writeContainerShape(cn)
	case scene.KindColorBrush:
		return ctx.writeColorBrush(cn)
	case scene.KindLinearGradientBrush:
		return ctx.writeLinearGradientBrush(cn)
	case scene.KindGradientStop:
		return ctx.writeGradientStop(cn)
	case scene.KindEllipseGeometry:
		return ctx.writeEllipseGeometry(cn)
	case scene.KindRectangleGeometry:
		return ctx.writeRectangleGeometry(cn)
	case scene.KindRoundedRectangleGeometry:
		return ctx.writeRoundedRectangleGeometry(cn)
	case scene.KindPathGeometry:
		return ctx.writePathGeometry(cn)
	case scene.KindViewBox:
		return ctx.writeViewBox(cn)
	case scene.KindInsetClip:
		return ctx.writeInsetClip(cn)
	case scene.KindLinearEasing:
		return ctx.writeLinearEasing(cn)
	case scene.KindCubicBezierEasing:
		return ctx.writeCubicBezierEasing(cn)
	case scene.KindStepEasing:
		return ctx.writeStepEasing(cn)
	case scene.KindScalarKeyFrameAnimation:
		return ctx.writeScalarAnimation(cn)
	case scene.KindVector2KeyFrameAnimation:
		return ctx.writeVector2Animation(cn)
	case scene.KindVector3KeyFrameAnimation:
		return ctx.writeVector3Animation(cn)
	case scene.KindColorKeyFrameAnimation:
		return ctx.writeColorAnimation(cn)
	case scene.KindPathKeyFrameAnimation:
		return ctx.writePathAnimation(cn)
	case scene.KindExpressionAnimation:
		return ctx.writeExpressionAnimation(cn)
	case scene.KindPath:
		return ctx.writePathWrapper(cn)
	case scene.KindCanvasCombination, scene.KindCanvasEllipse,
		scene.KindCanvasPath, scene.KindCanvasRoundedRectangle:
		return ctx.writeCanvasGeometry(cn)
	}
	return faultf("no emitter for variant %q", cn.Canonical.Kind())
}

// openFactory writes the optional description comment, the method
// signature, and the opening brace.
func (ctx *context) openFactory(cn *CompiledNode, returnType string) {
	ctx.writeDescription(cn)
	ctx.b.WriteLine(fmt.Sprintf("%s %s()", returnType, cn.Name))
	ctx.b.OpenScope()
}

func (ctx *context) closeFactory() {
	ctx.b.WriteLine("return result;")
	ctx.b.CloseScope()
}

// writeCreateResult writes the constructor line, assigning the cache
// field at construction time when the node is stored. Assigning the
// field before any property or child wiring runs is what makes the
// resolver's build-order rule sound: by the time a nested factory
// executes, this node's field is already populated.
func (ctx *context) writeCreateResult(cn *CompiledNode, createExpr string) {
	s := ctx.target.Strings
	if cn.RequiresStorage {
		ctx.b.WriteLine(fmt.Sprintf("%sresult = %s = %s;", s.Var(), cn.FieldName(), createExpr))
	} else {
		ctx.b.WriteLine(fmt.Sprintf("%sresult = %s;", s.Var(), createExpr))
	}
}

// writeSimpleFactory is the fast path for variants with no settable
// properties beyond construction arguments.
func (ctx *context) writeSimpleFactory(cn *CompiledNode, returnType, createExpr string) {
	ctx.openFactory(cn, returnType)
	if cn.RequiresStorage {
		ctx.b.WriteLine(fmt.Sprintf("return %s = %s;", cn.FieldName(), createExpr))
	} else {
		ctx.b.WriteLine(fmt.Sprintf("return %s;", createExpr))
	}
	ctx.b.CloseScope()
}

// writeDescription emits the traceability comment: the chain of
// ancestor short descriptions, most distant first, each line indented
// two more spaces than its predecessor, followed by this node's own
// description. Cosmetic only.
func (ctx *context) writeDescription(cn *CompiledNode) {
	if !ctx.opts.Comments {
		return
	}
	var chain []string
	seen := map[*CompiledNode]bool{cn: true}
	cur := cn
	for {
		refs := cur.Canonical.Referrers()
		if len(refs) == 0 {
			break
		}
		parent := ctx.nodes[refs[0]]
		if parent == nil || seen[parent] {
			break
		}
		seen[parent] = true
		chain = append(chain, parent.Name)
		cur = parent
	}
	for i := len(chain) - 1; i >= 0; i-- {
		indent := (len(chain) - 1 - i) * 2
		ctx.b.WriteLine(fmt.Sprintf("// %*s%s", indent, "", chain[i]))
	}
	desc := cn.Canonical.Kind().TypeName()
	if cn.Canonical.GroupSize > 1 {
		desc = fmt.Sprintf("%s (shared by %d instances)", desc, cn.Canonical.GroupSize)
	}
	ctx.b.WriteLine("// " + desc)
}

func (ctx *context) compositorCall(method string, args ...string) string {
	s := ctx.target.Strings
	call := "_c" + s.Deref() + method + "("
	for i, a := range args {
		if i > 0 {
			call += ", "
		}
		call += a
	}
	return call + ")"
}

func (ctx *context) setProp(local, prop, value string) {
	ctx.b.WriteLine(fmt.Sprintf("%s%s%s = %s;", local, ctx.target.Strings.Deref(), prop, value))
}

func (ctx *context) callOn(local, path string, args ...string) {
	s := ctx.target.Strings
	line := local + s.Deref() + path + "("
	for i, a := range args {
		if i > 0 {
			line += ", "
		}
		line += a
	}
	ctx.b.WriteLine(line + ");")
}

// writeCustomProperties inserts the node's implicit property-bag values.
// The bag is never a standalone node; its state is always emitted here,
// inline, by the owning node's factory.
func (ctx *context) writeCustomProperties(props []scene.CustomProperty) error {
	s := ctx.target.Strings
	d := s.Deref()
	for _, p := range props {
		switch p.Kind {
		case scene.PropertyScalar:
			ctx.b.WriteLine(fmt.Sprintf("result%sProperties%sInsertScalar(%s, %s);", d, d, s.String(p.Name), s.Float(p.Scalar)))
		case scene.PropertyVector2:
			ctx.b.WriteLine(fmt.Sprintf("result%sProperties%sInsertVector2(%s, %s);", d, d, s.String(p.Name), s.Vector2(p.Vector2)))
		default:
			return faultf("unknown custom property kind %q", p.Kind)
		}
	}
	return nil
}

var (
	zeroV2 = scene.Vector2{}
	zeroV3 = scene.Vector3{}
	oneV2  = scene.Vector2{X: 1, Y: 1}
)

// writeVisualBase emits the visual properties that differ from their
// defaults, then the clip wiring.
func (ctx *context) writeVisualBase(cn *CompiledNode, v *scene.VisualBase) error {
	s := ctx.target.Strings
	if v.Offset != zeroV3 {
		ctx.setProp("result", "Offset", s.Vector3(v.Offset))
	}
	if v.CenterPoint != zeroV3 {
		ctx.setProp("result", "CenterPoint", s.Vector3(v.CenterPoint))
	}
	if v.RotationAngle != 0 {
		ctx.setProp("result", "RotationAngleInDegrees", s.Float(v.RotationAngle))
	}
	if v.Opacity != 1 {
		ctx.setProp("result", "Opacity", s.Float(v.Opacity))
	}
	if v.Scale != oneV2 {
		ctx.setProp("result", "Scale", s.Vector2(v.Scale))
	}
	if v.Size != nil {
		ctx.setProp("result", "Size", s.Vector2(*v.Size))
	}
	if v.Clip != scene.NilNode {
		ref, err := ctx.resolveReference(cn, ctx.compiledFor(v.Clip))
		if err != nil {
			return err
		}
		ctx.setProp("result", "Clip", ref)
	}
	return nil
}

func (ctx *context) writeShapeBase(v *scene.ShapeBase) {
	s := ctx.target.Strings
	if v.Offset != zeroV2 {
		ctx.setProp("result", "Offset", s.Vector2(v.Offset))
	}
	if v.CenterPoint != zeroV2 {
		ctx.setProp("result", "CenterPoint", s.Vector2(v.CenterPoint))
	}
	if v.RotationAngle != 0 {
		ctx.setProp("result", "RotationAngleInDegrees", s.Float(v.RotationAngle))
	}
	if v.Scale != oneV2 {
		ctx.setProp("result", "Scale", s.Vector2(v.Scale))
	}
}

// finishAnimatable emits property-bag values and animation bindings,
// then the return. Shared tail of every animatable emitter.
func (ctx *context) finishAnimatable(cn *CompiledNode, a *scene.Animatable) error {
	if err := ctx.writeCustomProperties(a.Properties); err != nil {
		return err
	}
	sc := &emitScope{}
	if err := ctx.writeAnimationBindings(cn, "result", a.Animators, sc); err != nil {
		return err
	}
	ctx.closeFactory()
	return nil
}

func (ctx *context) writeContainerVisual(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.ContainerVisual)
	ctx.openFactory(cn, "ContainerVisual")
	ctx.writeCreateResult(cn, ctx.compositorCall("CreateContainerVisual"))
	if err := ctx.writeVisualBase(cn, &p.VisualBase); err != nil {
		return err
	}
	for _, child := range p.Children {
		ref, err := ctx.resolveReference(cn, ctx.compiledFor(child))
		if err != nil {
			return err
		}
		ctx.callOn("result", "Children"+ctx.target.Strings.Deref()+"InsertAtTop", ref)
	}
	return ctx.finishAnimatable(cn, &p.Animatable)
}

func (ctx *context) writeShapeVisual(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.ShapeVisual)
	ctx.openFactory(cn, "ShapeVisual")
	ctx.writeCreateResult(cn, ctx.compositorCall("CreateShapeVisual"))
	if err := ctx.writeVisualBase(cn, &p.VisualBase); err != nil {
		return err
	}
	if p.ViewBox != scene.NilNode {
		ref, err := ctx.resolveReference(cn, ctx.compiledFor(p.ViewBox))
		if err != nil {
			return err
		}
		ctx.setProp("result", "ViewBox", ref)
	}
	for _, sh := range p.Shapes {
		ref, err := ctx.resolveReference(cn, ctx.compiledFor(sh))
		if err != nil {
			return err
		}
		ctx.callOn("result", "Shapes"+ctx.target.Strings.Deref()+"Append", ref)
	}
	return ctx.finishAnimatable(cn, &p.Animatable)
}

func (ctx *context) writeSpriteShape(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.SpriteShape)
	s := ctx.target.Strings
	ctx.openFactory(cn, "CompositionSpriteShape")
	ctx.writeCreateResult(cn, ctx.compositorCall("CreateSpriteShape"))
	ctx.writeShapeBase(&p.ShapeBase)
	for _, ref := range []struct {
		prop string
		id   scene.NodeID
	}{
		{"Geometry", p.Geometry},
		{"FillBrush", p.FillBrush},
		{"StrokeBrush", p.StrokeBrush},
	} {
		if ref.id == scene.NilNode {
			continue
		}
		expr, err := ctx.resolveReference(cn, ctx.compiledFor(ref.id))
		if err != nil {
			return err
		}
		ctx.setProp("result", ref.prop, expr)
	}
	if p.StrokeThickness != 1 {
		ctx.setProp("result", "StrokeThickness", s.Float(p.StrokeThickness))
	}
	if p.StrokeMiterLimit != 1 {
		ctx.setProp("result", "StrokeMiterLimit", s.Float(p.StrokeMiterLimit))
	}
	if p.StrokeStartCap != scene.CapFlat {
		ctx.setProp("result", "StrokeStartCap", capToken(s, p.StrokeStartCap))
	}
	if p.StrokeEndCap != scene.CapFlat {
		ctx.setProp("result", "StrokeEndCap", capToken(s, p.StrokeEndCap))
	}
	if p.StrokeDashCap != scene.CapFlat {
		ctx.setProp("result", "StrokeDashCap", capToken(s, p.StrokeDashCap))
	}
	if p.StrokeDashOffset != 0 {
		ctx.setProp("result", "StrokeDashOffset", s.Float(p.StrokeDashOffset))
	}
	for _, dash := range p.StrokeDashArray {
		ctx.callOn("result", "StrokeDashArray"+s.Deref()+"Append", s.Float(dash))
	}
	return ctx.finishAnimatable(cn, &p.Animatable)
}

func capToken(s Stringifier, c scene.CapKind) string {
	return "CompositionStrokeCap" + s.Scope() + string(c)
}

func (ctx *context) writeContainerShape(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.ContainerShape)
	ctx.openFactory(cn, "CompositionContainerShape")
	ctx.writeCreateResult(cn, ctx.compositorCall("CreateContainerShape"))
	ctx.writeShapeBase(&p.ShapeBase)
	for _, sh := range p.Shapes {
		ref, err := ctx.resolveReference(cn, ctx.compiledFor(sh))
		if err != nil {
			return err
		}
		ctx.callOn("result", "Shapes"+ctx.target.Strings.Deref()+"Append", ref)
	}
	return ctx.finishAnimatable(cn, &p.Animatable)
}

func (ctx *context) writeColorBrush(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.ColorBrush)
	s := ctx.target.Strings
	create := ctx.compositorCall("CreateColorBrush", s.Color(p.Color))
	if len(p.Animators) == 0 && len(p.Properties) == 0 {
		ctx.writeSimpleFactory(cn, "CompositionColorBrush", create)
		return nil
	}
	ctx.openFactory(cn, "CompositionColorBrush")
	ctx.writeCreateResult(cn, create)
	return ctx.finishAnimatable(cn, &p.Animatable)
}

func (ctx *context) writeLinearGradientBrush(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.LinearGradientBrush)
	s := ctx.target.Strings
	ctx.openFactory(cn, "CompositionLinearGradientBrush")
	ctx.writeCreateResult(cn, ctx.compositorCall("CreateLinearGradientBrush"))
	if p.StartPoint != zeroV2 {
		ctx.setProp("result", "StartPoint", s.Vector2(p.StartPoint))
	}
	if p.EndPoint != (scene.Vector2{X: 1, Y: 0}) {
		ctx.setProp("result", "EndPoint", s.Vector2(p.EndPoint))
	}
	for _, stop := range p.Stops {
		ref, err := ctx.resolveReference(cn, ctx.compiledFor(stop))
		if err != nil {
			return err
		}
		ctx.callOn("result", "ColorStops"+s.Deref()+"Append", ref)
	}
	return ctx.finishAnimatable(cn, &p.Animatable)
}

func (ctx *context) writeGradientStop(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.GradientStop)
	s := ctx.target.Strings
	create := ctx.compositorCall("CreateColorGradientStop", s.Float(p.Offset), s.Color(p.Color))
	if len(p.Animators) == 0 && len(p.Properties) == 0 {
		ctx.writeSimpleFactory(cn, "CompositionColorGradientStop", create)
		return nil
	}
	ctx.openFactory(cn, "CompositionColorGradientStop")
	ctx.writeCreateResult(cn, create)
	return ctx.finishAnimatable(cn, &p.Animatable)
}

func (ctx *context) writeGeometryBase(v *scene.GeometryBase) {
	s := ctx.target.Strings
	if v.TrimStart != 0 {
		ctx.setProp("result", "TrimStart", s.Float(v.TrimStart))
	}
	if v.TrimEnd != 1 {
		ctx.setProp("result", "TrimEnd", s.Float(v.TrimEnd))
	}
	if v.TrimOffset != 0 {
		ctx.setProp("result", "TrimOffset", s.Float(v.TrimOffset))
	}
}

func (ctx *context) writeEllipseGeometry(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.EllipseGeometry)
	s := ctx.target.Strings
	ctx.openFactory(cn, "CompositionEllipseGeometry")
	ctx.writeCreateResult(cn, ctx.compositorCall("CreateEllipseGeometry"))
	if p.Center != zeroV2 {
		ctx.setProp("result", "Center", s.Vector2(p.Center))
	}
	if p.Radius != zeroV2 {
		ctx.setProp("result", "Radius", s.Vector2(p.Radius))
	}
	ctx.writeGeometryBase(&p.GeometryBase)
	return ctx.finishAnimatable(cn, &p.Animatable)
}

func (ctx *context) writeRectangleGeometry(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.RectangleGeometry)
	s := ctx.target.Strings
	ctx.openFactory(cn, "CompositionRectangleGeometry")
	ctx.writeCreateResult(cn, ctx.compositorCall("CreateRectangleGeometry"))
	if p.Offset != zeroV2 {
		ctx.setProp("result", "Offset", s.Vector2(p.Offset))
	}
	if p.Size != zeroV2 {
		ctx.setProp("result", "Size", s.Vector2(p.Size))
	}
	ctx.writeGeometryBase(&p.GeometryBase)
	return ctx.finishAnimatable(cn, &p.Animatable)
}

func (ctx *context) writeRoundedRectangleGeometry(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.RoundedRectangleGeometry)
	s := ctx.target.Strings
	ctx.openFactory(cn, "CompositionRoundedRectangleGeometry")
	ctx.writeCreateResult(cn, ctx.compositorCall("CreateRoundedRectangleGeometry"))
	if p.Offset != zeroV2 {
		ctx.setProp("result", "Offset", s.Vector2(p.Offset))
	}
	if p.Size != zeroV2 {
		ctx.setProp("result", "Size", s.Vector2(p.Size))
	}
	if p.CornerRadius != zeroV2 {
		ctx.setProp("result", "CornerRadius", s.Vector2(p.CornerRadius))
	}
	ctx.writeGeometryBase(&p.GeometryBase)
	return ctx.finishAnimatable(cn, &p.Animatable)
}

func (ctx *context) writePathGeometry(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.PathGeometry)
	ref, err := ctx.resolveReference(cn, ctx.compiledFor(p.Path))
	if err != nil {
		return err
	}
	ctx.openFactory(cn, "CompositionPathGeometry")
	ctx.writeCreateResult(cn, ctx.compositorCall("CreatePathGeometry", ref))
	ctx.writeGeometryBase(&p.GeometryBase)
	return ctx.finishAnimatable(cn, &p.Animatable)
}

func (ctx *context) writeViewBox(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.ViewBox)
	s := ctx.target.Strings
	ctx.openFactory(cn, "CompositionViewBox")
	ctx.writeCreateResult(cn, ctx.compositorCall("CreateViewBox"))
	if p.Size != zeroV2 {
		ctx.setProp("result", "Size", s.Vector2(p.Size))
	}
	return ctx.finishAnimatable(cn, &p.Animatable)
}

func (ctx *context) writeInsetClip(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.InsetClip)
	s := ctx.target.Strings
	ctx.openFactory(cn, "InsetClip")
	ctx.writeCreateResult(cn, ctx.compositorCall("CreateInsetClip"))
	if p.LeftInset != 0 {
		ctx.setProp("result", "LeftInset", s.Float(p.LeftInset))
	}
	if p.TopInset != 0 {
		ctx.setProp("result", "TopInset", s.Float(p.TopInset))
	}
	if p.RightInset != 0 {
		ctx.setProp("result", "RightInset", s.Float(p.RightInset))
	}
	if p.BottomInset != 0 {
		ctx.setProp("result", "BottomInset", s.Float(p.BottomInset))
	}
	return ctx.finishAnimatable(cn, &p.Animatable)
}

func (ctx *context) writeLinearEasing(cn *CompiledNode) error {
	ctx.writeSimpleFactory(cn, "LinearEasingFunction", ctx.compositorCall("CreateLinearEasingFunction"))
	return nil
}

func (ctx *context) writeCubicBezierEasing(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.CubicBezierEasing)
	s := ctx.target.Strings
	ctx.writeSimpleFactory(cn, "CubicBezierEasingFunction",
		ctx.compositorCall("CreateCubicBezierEasingFunction", s.Vector2(p.ControlPoint1), s.Vector2(p.ControlPoint2)))
	return nil
}

func (ctx *context) writeStepEasing(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.StepEasing)
	s := ctx.target.Strings
	if p.StepCount == 1 && !p.IsFinalStepSingleFrame {
		ctx.writeSimpleFactory(cn, "StepEasingFunction", ctx.compositorCall("CreateStepEasingFunction"))
		return nil
	}
	ctx.openFactory(cn, "StepEasingFunction")
	ctx.writeCreateResult(cn, ctx.compositorCall("CreateStepEasingFunction"))
	if p.StepCount != 1 {
		ctx.setProp("result", "StepCount", s.Int32(int32(p.StepCount)))
	}
	if p.IsFinalStepSingleFrame {
		ctx.setProp("result", "IsFinalStepSingleFrame", s.Bool(true))
	}
	ctx.closeFactory()
	return nil
}

// openAnimation writes the shared head of every keyframe animation
// factory: create, duration, optional target.
func (ctx *context) openAnimation(cn *CompiledNode, returnType, createMethod, target string) {
	s := ctx.target.Strings
	ctx.openFactory(cn, returnType)
	ctx.writeCreateResult(cn, ctx.compositorCall(createMethod))
	ctx.setProp("result", "Duration", s.TimeSpanFromConstant(durationConst))
	if target != "" {
		ctx.setProp("result", "Target", s.String(target))
	}
}

// insertKeyFrame writes one keyframe insertion. valueExpr already holds
// the rendered value; expression frames go through the expression
// overload instead.
func (ctx *context) insertKeyFrame(cn *CompiledNode, progress float64, valueExpr, expression string, easing scene.NodeID) error {
	s := ctx.target.Strings
	method := "InsertKeyFrame"
	value := valueExpr
	if expression != "" {
		method = "InsertExpressionKeyFrame"
		value = s.String(expression)
	}
	args := []string{s.Float(progress), value}
	if easing != scene.NilNode {
		ref, err := ctx.resolveReference(cn, ctx.compiledFor(easing))
		if err != nil {
			return err
		}
		args = append(args, ref)
	}
	ctx.callOn("result", method, args...)
	return nil
}

func (ctx *context) writeScalarAnimation(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.ScalarKeyFrameAnimation)
	s := ctx.target.Strings
	ctx.openAnimation(cn, "ScalarKeyFrameAnimation", "CreateScalarKeyFrameAnimation", p.Target)
	for _, f := range p.Frames {
		if err := ctx.insertKeyFrame(cn, f.Progress, s.Float(f.Value), f.Expression, f.Easing); err != nil {
			return err
		}
	}
	ctx.closeFactory()
	return nil
}

func (ctx *context) writeVector2Animation(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.Vector2KeyFrameAnimation)
	s := ctx.target.Strings
	ctx.openAnimation(cn, "Vector2KeyFrameAnimation", "CreateVector2KeyFrameAnimation", p.Target)
	for _, f := range p.Frames {
		if err := ctx.insertKeyFrame(cn, f.Progress, s.Vector2(f.Value), f.Expression, f.Easing); err != nil {
			return err
		}
	}
	ctx.closeFactory()
	return nil
}

func (ctx *context) writeVector3Animation(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.Vector3KeyFrameAnimation)
	s := ctx.target.Strings
	ctx.openAnimation(cn, "Vector3KeyFrameAnimation", "CreateVector3KeyFrameAnimation", p.Target)
	for _, f := range p.Frames {
		if err := ctx.insertKeyFrame(cn, f.Progress, s.Vector3(f.Value), f.Expression, f.Easing); err != nil {
			return err
		}
	}
	ctx.closeFactory()
	return nil
}

func (ctx *context) writeColorAnimation(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.ColorKeyFrameAnimation)
	s := ctx.target.Strings
	ctx.openAnimation(cn, "ColorKeyFrameAnimation", "CreateColorKeyFrameAnimation", p.Target)
	for _, f := range p.Frames {
		if err := ctx.insertKeyFrame(cn, f.Progress, s.Color(f.Value), "", f.Easing); err != nil {
			return err
		}
	}
	ctx.closeFactory()
	return nil
}

func (ctx *context) writePathAnimation(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.PathKeyFrameAnimation)
	ctx.openAnimation(cn, "PathKeyFrameAnimation", "CreatePathKeyFrameAnimation", p.Target)
	for _, f := range p.Frames {
		ref, err := ctx.resolveReference(cn, ctx.compiledFor(f.Value))
		if err != nil {
			return err
		}
		if err := ctx.insertKeyFrame(cn, f.Progress, ref, "", f.Easing); err != nil {
			return err
		}
	}
	ctx.closeFactory()
	return nil
}

// writeExpressionAnimation emits a standalone factory for an expression
// animation shared by two or more bindings. Unique expression
// animations never reach here; the binder folds them into the reusable
// singleton field.
func (ctx *context) writeExpressionAnimation(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.ExpressionAnimation)
	s := ctx.target.Strings
	ctx.openFactory(cn, "ExpressionAnimation")
	ctx.writeCreateResult(cn, ctx.compositorCall("CreateExpressionAnimation", s.String(p.Expression)))
	if p.Target != "" {
		ctx.setProp("result", "Target", s.String(p.Target))
	}
	for _, rp := range p.ReferenceParameters {
		ref, err := ctx.resolveReference(cn, ctx.compiledFor(rp.Node))
		if err != nil {
			return err
		}
		ctx.callOn("result", "SetReferenceParameter", s.String(rp.Name), ref)
	}
	ctx.closeFactory()
	return nil
}

// writePathWrapper emits a factory for a shared path wrapper. Wrappers
// with at most one filtered use are inlined by the annotator and never
// get here.
func (ctx *context) writePathWrapper(cn *CompiledNode) error {
	p := cn.Canonical.Rep.Payload.(*scene.Path)
	s := ctx.target.Strings
	ref, err := ctx.resolveReference(cn, ctx.compiledFor(p.Geometry))
	if err != nil {
		return err
	}
	ctx.writeSimpleFactory(cn, "CompositionPath", fmt.Sprintf("%sCompositionPath(%s)", s.New(), ref))
	return nil
}

// writeCanvasGeometry wraps the language-supplied drawing-library body
// with the common method skeleton. The delegate leaves the constructed
// object in a local named result, assigning the cache field when a
// field name is passed.
func (ctx *context) writeCanvasGeometry(cn *CompiledNode) error {
	fieldName := ""
	if cn.RequiresStorage {
		fieldName = cn.FieldName()
	}
	geo := ctx.target.Geometry
	ctx.openFactory(cn, "CanvasGeometry")
	var err error
	switch p := cn.Canonical.Rep.Payload.(type) {
	case *scene.CanvasCombination:
		err = geo.WriteCombination(ctx.b, p, "CanvasGeometry", fieldName, func(id scene.NodeID) (string, error) {
			return ctx.resolveReference(cn, ctx.compiledFor(id))
		})
	case *scene.CanvasEllipse:
		geo.WriteEllipse(ctx.b, p, "CanvasGeometry", fieldName)
	case *scene.CanvasPath:
		geo.WritePath(ctx.b, p, "CanvasGeometry", fieldName)
	case *scene.CanvasRoundedRectangle:
		geo.WriteRoundedRectangle(ctx.b, p, "CanvasGeometry", fieldName)
	default:
		err = faultf("unknown canvas geometry payload %T", p)
	}
	if err != nil {
		return err
	}
	ctx.closeFactory()
	return nil
}
