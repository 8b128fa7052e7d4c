package codegen_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegen/internal/canonical"
	"scenegen/internal/codegen"
	"scenegen/internal/codegen/cpp"
	"scenegen/internal/codegen/csharp"
	"scenegen/internal/scene"
)

func bake(t *testing.T, g *scene.Graph, target codegen.Target) string {
	t.Helper()
	view, err := canonical.Build(g)
	require.NoError(t, err)
	out, err := codegen.Compile(view, target, codegen.Options{
		ClassName: "TestScene",
		Size:      scene.Vector2{X: 100, Y: 100},
		Duration:  time.Second,
		Comments:  true,
	})
	require.NoError(t, err)
	return out
}

// sharedBrushScene: two sprites with different geometries, each holding
// its own red brush node. The brushes are interchangeable and collapse
// into one canonical group.
func sharedBrushScene() *scene.Graph {
	g := scene.NewGraph()
	brush := g.Add(scene.KindColorBrush, scene.NewColorBrush(scene.Color{A: 255, R: 255}))
	brushB := g.Add(scene.KindColorBrush, scene.NewColorBrush(scene.Color{A: 255, R: 255}))

	geomA := scene.NewEllipseGeometry()
	geomA.Radius = scene.Vector2{X: 10, Y: 10}
	geomB := scene.NewEllipseGeometry()
	geomB.Radius = scene.Vector2{X: 20, Y: 20}
	geomAID := g.Add(scene.KindEllipseGeometry, geomA)
	geomBID := g.Add(scene.KindEllipseGeometry, geomB)

	spriteA := scene.NewSpriteShape()
	spriteA.Geometry = geomAID
	spriteA.FillBrush = brush
	spriteB := scene.NewSpriteShape()
	spriteB.Geometry = geomBID
	spriteB.FillBrush = brushB
	shapeA := g.Add(scene.KindSpriteShape, spriteA)
	shapeB := g.Add(scene.KindSpriteShape, spriteB)

	visual := scene.NewShapeVisual()
	visual.Shapes = []scene.NodeID{shapeA, shapeB}
	root := g.Add(scene.KindShapeVisual, visual)
	g.SetRoot(root)
	return g
}

func TestCompileDeterminism(t *testing.T) {
	first := bake(t, sharedBrushScene(), csharp.New())
	second := bake(t, sharedBrushScene(), csharp.New())
	assert.Equal(t, first, second)
}

func TestSharedBrushConstructedOnce(t *testing.T) {
	out := bake(t, sharedBrushScene(), csharp.New())

	assert.Contains(t, out, "CompositionColorBrush _colorBrush_Red;")
	assert.Equal(t, 1, strings.Count(out, "CreateColorBrush"))

	// One use site calls the factory, the other reads the cache field.
	assert.Equal(t, 1, strings.Count(out, "= ColorBrush_Red();"))
	assert.Equal(t, 1, strings.Count(out, "= _colorBrush_Red;"))
}

func TestMethodsInNameOrder(t *testing.T) {
	out := bake(t, sharedBrushScene(), csharp.New())

	var previous int
	for _, sig := range []string{
		"CompositionColorBrush ColorBrush_Red()",
		"CompositionEllipseGeometry EllipseGeometry_000()",
		"CompositionEllipseGeometry EllipseGeometry_001()",
		"ShapeVisual Root()",
		"CompositionSpriteShape SpriteShape_000()",
		"CompositionSpriteShape SpriteShape_001()",
	} {
		at := strings.Index(out, sig)
		require.GreaterOrEqual(t, at, 0, sig)
		assert.Greater(t, at, previous, sig)
		previous = at
	}
}

func TestDefaultDiffing(t *testing.T) {
	out := bake(t, sharedBrushScene(), csharp.New())

	// Defaults are never assigned.
	assert.NotContains(t, out, "Opacity =")
	assert.NotContains(t, out, "TrimEnd =")
	assert.NotContains(t, out, "StrokeThickness =")

	// Non-default radii are.
	assert.Contains(t, out, "result.Radius = new Vector2(10F, 10F);")
	assert.Contains(t, out, "result.Radius = new Vector2(20F, 20F);")
}

func TestDurationConstant(t *testing.T) {
	out := bake(t, sharedBrushScene(), csharp.New())
	assert.Contains(t, out, "internal const long c_durationTicks = 10000000;")
}

func TestUniqueExpressionUsesSingleton(t *testing.T) {
	g := scene.NewGraph()
	expr := g.Add(scene.KindExpressionAnimation, &scene.ExpressionAnimation{
		Expression: "my.Size.X / 2",
	})
	exprPayload := g.Node(expr).Payload.(*scene.ExpressionAnimation)

	child := scene.NewContainerVisual()
	child.Opacity = 0.5
	child.Animators = []scene.Animator{{TargetProperty: "Offset.X", Animation: expr}}
	childID := g.Add(scene.KindContainerVisual, child)
	exprPayload.ReferenceParameters = []scene.RefParameter{{Name: "my", Node: childID}}

	rootPayload := scene.NewContainerVisual()
	rootPayload.Children = []scene.NodeID{childID}
	root := g.Add(scene.KindContainerVisual, rootPayload)
	g.SetRoot(root)

	out := bake(t, g, csharp.New())

	assert.Contains(t, out, "_reusableExpressionAnimation.ClearAllParameters();")
	assert.Contains(t, out, `_reusableExpressionAnimation.Expression = "my.Size.X / 2";`)
	// The parameter targets the node being initialized, so it binds the
	// local under construction, not a factory call.
	assert.Contains(t, out, `_reusableExpressionAnimation.SetReferenceParameter("my", result);`)
	assert.Contains(t, out, `result.StartAnimation("Offset.X", _reusableExpressionAnimation);`)

	// No standalone expression animation factory.
	assert.NotContains(t, out, "ExpressionAnimation ExpressionAnimation()")
	assert.Equal(t, 1, strings.Count(out, "ExpressionAnimation _reusableExpressionAnimation;"))
}

func TestSharedExpressionGetsFactory(t *testing.T) {
	g := scene.NewGraph()
	expr := g.Add(scene.KindExpressionAnimation, &scene.ExpressionAnimation{Expression: "my.Progress"})

	child := scene.NewContainerVisual()
	child.Opacity = 0.5
	child.Animators = []scene.Animator{{TargetProperty: "Opacity", Animation: expr}}
	childID := g.Add(scene.KindContainerVisual, child)

	rootPayload := scene.NewContainerVisual()
	rootPayload.Children = []scene.NodeID{childID}
	rootPayload.Animators = []scene.Animator{{TargetProperty: "Opacity", Animation: expr}}
	root := g.Add(scene.KindContainerVisual, rootPayload)
	g.SetRoot(root)

	out := bake(t, g, csharp.New())

	assert.Contains(t, out, "ExpressionAnimation ExpressionAnimation()")
	assert.Contains(t, out, `CreateExpressionAnimation("my.Progress")`)
	assert.NotContains(t, out, "ClearAllParameters")
}

func TestInlinePathWrapper(t *testing.T) {
	g := scene.NewGraph()
	canvas := g.Add(scene.KindCanvasEllipse, &scene.CanvasEllipse{RadiusX: 5, RadiusY: 5})
	path := g.Add(scene.KindPath, scene.NewPath(canvas))
	pathGeom := g.Add(scene.KindPathGeometry, scene.NewPathGeometry(path))

	sprite := scene.NewSpriteShape()
	sprite.Geometry = pathGeom
	shape := g.Add(scene.KindSpriteShape, sprite)

	visual := scene.NewShapeVisual()
	visual.Shapes = []scene.NodeID{shape}
	root := g.Add(scene.KindShapeVisual, visual)
	g.SetRoot(root)

	out := bake(t, g, csharp.New())

	// The wrapper's construction is substituted at the use site.
	assert.Contains(t, out, "CreatePathGeometry(new CompositionPath(Geometry()))")
	assert.NotContains(t, out, "CompositionPath Path()")
	assert.Contains(t, out, "CanvasGeometry Geometry()")
	assert.Contains(t, out, "CanvasGeometry.CreateEllipse(null, 0F, 0F, 5F, 5F)")
	assert.Contains(t, out, "using Microsoft.Graphics.Canvas.Geometry;")
}

func TestKeyFrameAnimationWithSharedEasing(t *testing.T) {
	g := scene.NewGraph()
	easing := g.Add(scene.KindCubicBezierEasing, &scene.CubicBezierEasing{
		ControlPoint1: scene.Vector2{X: 0.5, Y: 0},
		ControlPoint2: scene.Vector2{X: 1, Y: 1},
	})

	fade := &scene.ScalarKeyFrameAnimation{Target: "Opacity", Frames: []scene.ScalarFrame{
		{Progress: 0, Value: 0, Easing: scene.NilNode},
		{Progress: 1, Value: 1, Easing: easing},
	}}
	slide := &scene.ScalarKeyFrameAnimation{Target: "Offset.X", Frames: []scene.ScalarFrame{
		{Progress: 0, Value: 0, Easing: scene.NilNode},
		{Progress: 1, Value: 50, Easing: easing},
	}}
	fadeID := g.Add(scene.KindScalarKeyFrameAnimation, fade)
	slideID := g.Add(scene.KindScalarKeyFrameAnimation, slide)

	rootPayload := scene.NewContainerVisual()
	rootPayload.Animators = []scene.Animator{
		{TargetProperty: "Opacity", Animation: fadeID},
		{TargetProperty: "Offset.X", Animation: slideID},
	}
	root := g.Add(scene.KindContainerVisual, rootPayload)
	g.SetRoot(root)

	out := bake(t, g, csharp.New())

	// Shared easing is stored and constructed once.
	assert.Contains(t, out, "CubicBezierEasingFunction _cubicBezierEasingFunction;")
	assert.Equal(t, 1, strings.Count(out, "CreateCubicBezierEasingFunction"))

	assert.Contains(t, out, "result.Duration = TimeSpan.FromTicks(c_durationTicks);")
	assert.Contains(t, out, "result.InsertKeyFrame(0F, 0F);")
	assert.Contains(t, out, "result.InsertKeyFrame(1F, 1F, CubicBezierEasingFunction());")
	assert.Contains(t, out, "result.InsertKeyFrame(1F, 50F, _cubicBezierEasingFunction);")
	assert.Contains(t, out, `result.StartAnimation("Opacity", ScalarKeyFrameAnimation_0_to_1());`)
}

func TestControllerBinding(t *testing.T) {
	g := scene.NewGraph()
	progress := g.Add(scene.KindExpressionAnimation, &scene.ExpressionAnimation{Expression: "host.Progress"})

	fade := &scene.ScalarKeyFrameAnimation{Frames: []scene.ScalarFrame{
		{Progress: 0, Value: 0, Easing: scene.NilNode},
		{Progress: 1, Value: 1, Easing: scene.NilNode},
	}}
	fadeID := g.Add(scene.KindScalarKeyFrameAnimation, fade)

	rootPayload := scene.NewContainerVisual()
	rootPayload.Animators = []scene.Animator{{
		TargetProperty: "Opacity",
		Animation:      fadeID,
		Controller: &scene.ControllerBinding{
			Pause: true,
			Animators: []scene.Animator{
				{TargetProperty: "Progress", Animation: progress},
			},
		},
	}}
	root := g.Add(scene.KindContainerVisual, rootPayload)
	g.SetRoot(root)

	out := bake(t, g, csharp.New())

	assert.Contains(t, out, `var controller = result.TryGetAnimationController("Opacity");`)
	assert.Contains(t, out, "controller.Pause();")
	assert.Contains(t, out, `controller.StartAnimation("Progress", _reusableExpressionAnimation);`)
}

func TestExpressionKeyFrames(t *testing.T) {
	g := scene.NewGraph()
	anim := &scene.ScalarKeyFrameAnimation{Target: "Opacity", Frames: []scene.ScalarFrame{
		{Progress: 0, Expression: "this.StartingValue", Easing: scene.NilNode},
		{Progress: 1, Value: 1, Easing: scene.NilNode},
	}}
	animID := g.Add(scene.KindScalarKeyFrameAnimation, anim)

	child := scene.NewContainerVisual()
	child.Opacity = 0.5
	child.Animators = []scene.Animator{{TargetProperty: "Opacity", Animation: animID}}
	childID := g.Add(scene.KindContainerVisual, child)

	rootPayload := scene.NewContainerVisual()
	rootPayload.Children = []scene.NodeID{childID}
	root := g.Add(scene.KindContainerVisual, rootPayload)
	g.SetRoot(root)

	out := bake(t, g, csharp.New())

	assert.Contains(t, out, `result.InsertExpressionKeyFrame(0F, "this.StartingValue");`)
	assert.Contains(t, out, "result.InsertKeyFrame(1F, 1F);")

	// An expression-valued frame keeps the animation from carrying a
	// value-derived name.
	assert.Contains(t, out, "ScalarKeyFrameAnimation ScalarKeyFrameAnimation()")
}

func TestCppTarget(t *testing.T) {
	out := bake(t, sharedBrushScene(), cpp.New())

	assert.Contains(t, out, "_c->CreateColorBrush(ColorHelper::FromArgb(0xFF, 0xFF, 0x00, 0x00))")
	assert.Contains(t, out, "CompositionColorBrush^ _colorBrush_Red{};")
	assert.Contains(t, out, "result->Radius = { 10F, 10F };")
	assert.Contains(t, out, "static constexpr int64_t c_durationTicks{ 10000000L };")
	assert.Contains(t, out, "ref class TestScene sealed")
}

func TestCommentsToggle(t *testing.T) {
	view, err := canonical.Build(sharedBrushScene())
	require.NoError(t, err)
	out, err := codegen.Compile(view, csharp.New(), codegen.Options{
		ClassName: "TestScene",
		Duration:  time.Second,
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "// ShapeVisual")

	withComments := bake(t, sharedBrushScene(), csharp.New())
	assert.Contains(t, withComments, "// CompositionColorBrush (shared by 2 instances)")
}
