package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegen/internal/scene"
)

// twoSpritesOneBrush builds a root container holding two sprite shapes
// that differ in offset but share one fill brush node.
func twoSpritesOneBrush(t *testing.T) (*scene.Graph, scene.NodeID) {
	t.Helper()
	g := scene.NewGraph()

	brush := g.Add(scene.KindColorBrush, scene.NewColorBrush(scene.Color{A: 255, R: 255}))

	geoA := scene.NewEllipseGeometry()
	geoA.Radius = scene.Vector2{X: 10, Y: 10}
	geomA := g.Add(scene.KindEllipseGeometry, geoA)

	geoB := scene.NewEllipseGeometry()
	geoB.Radius = scene.Vector2{X: 20, Y: 20}
	geomB := g.Add(scene.KindEllipseGeometry, geoB)

	spriteA := scene.NewSpriteShape()
	spriteA.Geometry = geomA
	spriteA.FillBrush = brush
	shapeA := g.Add(scene.KindSpriteShape, spriteA)

	spriteB := scene.NewSpriteShape()
	spriteB.Offset = scene.Vector2{X: 50, Y: 0}
	spriteB.Geometry = geomB
	spriteB.FillBrush = brush
	shapeB := g.Add(scene.KindSpriteShape, spriteB)

	visual := scene.NewShapeVisual()
	visual.Shapes = []scene.NodeID{shapeA, shapeB}
	visualID := g.Add(scene.KindShapeVisual, visual)

	rootPayload := scene.NewContainerVisual()
	rootPayload.Children = []scene.NodeID{visualID}
	root := g.Add(scene.KindContainerVisual, rootPayload)
	g.SetRoot(root)
	return g, brush
}

func TestBuildRequiresRoot(t *testing.T) {
	g := scene.NewGraph()
	g.Add(scene.KindColorBrush, scene.NewColorBrush(scene.Color{A: 255}))
	_, err := Build(g)
	require.Error(t, err)
}

func TestGrouping(t *testing.T) {
	t.Run("identical nodes collapse into one group", func(t *testing.T) {
		g := scene.NewGraph()
		brushA := g.Add(scene.KindColorBrush, scene.NewColorBrush(scene.Color{A: 255, G: 128}))
		brushB := g.Add(scene.KindColorBrush, scene.NewColorBrush(scene.Color{A: 255, G: 128}))

		spriteA := scene.NewSpriteShape()
		spriteA.FillBrush = brushA
		shapeA := g.Add(scene.KindSpriteShape, spriteA)

		spriteB := scene.NewSpriteShape()
		spriteB.FillBrush = brushB
		shapeB := g.Add(scene.KindSpriteShape, spriteB)

		visual := scene.NewShapeVisual()
		visual.Shapes = []scene.NodeID{shapeA, shapeB}
		visualID := g.Add(scene.KindShapeVisual, visual)
		g.SetRoot(visualID)

		v, err := Build(g)
		require.NoError(t, err)

		// The sprites only differed in which brush node they pointed at,
		// and the brushes are interchangeable, so both collapse too.
		brush := v.Canonical(brushA)
		require.NotNil(t, brush)
		assert.Same(t, brush, v.Canonical(brushB))
		assert.Equal(t, 2, brush.GroupSize)
		assert.Same(t, v.Canonical(shapeA), v.Canonical(shapeB))
	})

	t.Run("different payloads stay separate", func(t *testing.T) {
		g, _ := twoSpritesOneBrush(t)
		v, err := Build(g)
		require.NoError(t, err)

		// The two sprites reference geometries with different radii.
		kinds := map[scene.Kind]int{}
		for _, c := range v.Nodes() {
			kinds[c.Kind()]++
		}
		assert.Equal(t, 2, kinds[scene.KindEllipseGeometry])
		assert.Equal(t, 2, kinds[scene.KindSpriteShape])
	})

	t.Run("expression animations group by normalized text", func(t *testing.T) {
		g := scene.NewGraph()
		exprA := g.Add(scene.KindExpressionAnimation, &scene.ExpressionAnimation{Expression: "my.Progress * 2"})
		exprB := g.Add(scene.KindExpressionAnimation, &scene.ExpressionAnimation{Expression: "my.Progress * 2", Target: "Offset.X"})

		rootPayload := scene.NewContainerVisual()
		rootPayload.Animators = []scene.Animator{
			{TargetProperty: "Offset.X", Animation: exprA},
			{TargetProperty: "Offset.Y", Animation: exprB},
		}
		root := g.Add(scene.KindContainerVisual, rootPayload)
		g.SetRoot(root)

		v, err := Build(g)
		require.NoError(t, err)
		assert.Same(t, v.Canonical(exprA), v.Canonical(exprB))
		assert.Equal(t, 2, v.Canonical(exprA).GroupSize)
	})
}

func TestPositions(t *testing.T) {
	g, _ := twoSpritesOneBrush(t)
	v, err := Build(g)
	require.NoError(t, err)

	assert.Equal(t, 0, v.Root().Position)
	for i, c := range v.Nodes() {
		assert.Equal(t, i, c.Position)
	}

	// Depth-first from the root: the shape visual precedes its shapes,
	// and each sprite's geometry and brush precede the next sprite.
	for _, c := range v.Nodes() {
		for _, ref := range v.Graph().OutRefs(c.Rep.ID) {
			callee := v.Canonical(ref)
			require.NotNil(t, callee)
			if callee.Position > c.Position {
				continue
			}
			// A back-reference is only possible to a node discovered
			// earlier on another path.
			assert.NotEqual(t, c.Position, callee.Position)
		}
	}
}

func TestInboundEdges(t *testing.T) {
	t.Run("one entry per referencing edge", func(t *testing.T) {
		g, brush := twoSpritesOneBrush(t)
		v, err := Build(g)
		require.NoError(t, err)

		c := v.Canonical(brush)
		require.NotNil(t, c)
		assert.Len(t, c.Inbound, 2)
		assert.Len(t, c.Referrers(), 2)
	})

	t.Run("double reference from one caller appears twice", func(t *testing.T) {
		g := scene.NewGraph()
		brush := g.Add(scene.KindColorBrush, scene.NewColorBrush(scene.Color{A: 255, B: 255}))
		sprite := scene.NewSpriteShape()
		sprite.FillBrush = brush
		sprite.StrokeBrush = brush
		shape := g.Add(scene.KindSpriteShape, sprite)
		visual := scene.NewShapeVisual()
		visual.Shapes = []scene.NodeID{shape}
		root := g.Add(scene.KindShapeVisual, visual)
		g.SetRoot(root)

		v, err := Build(g)
		require.NoError(t, err)
		c := v.Canonical(brush)
		assert.Len(t, c.Inbound, 2)
		assert.Len(t, c.Referrers(), 1)
	})
}

func TestUnreachableNodes(t *testing.T) {
	g := scene.NewGraph()
	orphan := g.Add(scene.KindColorBrush, scene.NewColorBrush(scene.Color{A: 255}))
	root := g.Add(scene.KindContainerVisual, scene.NewContainerVisual())
	g.SetRoot(root)

	v, err := Build(g)
	require.NoError(t, err)
	assert.Nil(t, v.Canonical(orphan))
	assert.Len(t, v.Nodes(), 1)
}

func TestBuildTerminatesOnCycle(t *testing.T) {
	g := scene.NewGraph()
	a := scene.NewContainerVisual()
	b := scene.NewContainerVisual()
	aID := g.Add(scene.KindContainerVisual, a)
	bID := g.Add(scene.KindContainerVisual, b)
	a.Children = []scene.NodeID{bID}
	b.Children = []scene.NodeID{aID}
	g.SetRoot(aID)

	v, err := Build(g)
	require.NoError(t, err)
	assert.Len(t, v.Nodes(), 2)
}
