package loader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegen/internal/scene"
)

const sampleDoc = `
scene:
  name: Spinner
  size: { x: 200, y: 200 }
  duration: 1500ms
root: root
nodes:
  root:
    kind: ShapeVisual
    size: { x: 200, y: 200 }
    viewBox: box
    shapes: [ring]
  box:
    kind: ViewBox
    size: { x: 200, y: 200 }
  ring:
    kind: SpriteShape
    geometry: circle
    stroke: strokeBrush
    strokeThickness: 4
    animators:
      - property: RotationAngleInDegrees
        animation: spin
  circle:
    kind: EllipseGeometry
    center: { x: 100, y: 100 }
    radius: { x: 80, y: 80 }
  strokeBrush:
    kind: ColorBrush
    color: "#FF4080FF"
  spin:
    kind: ScalarKeyFrameAnimation
    target: RotationAngleInDegrees
    frames:
      - progress: 0
        value: 0
      - progress: 1
        value: 360
        easing: ease
  ease:
    kind: LinearEasing
`

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "Spinner", sc.Name)
	assert.Equal(t, scene.Vector2{X: 200, Y: 200}, sc.Size)
	assert.Equal(t, 1500*time.Millisecond, sc.Duration)
	assert.Equal(t, 7, sc.Graph.Len())

	root := sc.Graph.Node(sc.Graph.Root())
	require.Equal(t, scene.KindShapeVisual, root.Kind)
	visual := root.Payload.(*scene.ShapeVisual)
	require.NotNil(t, visual.Size)
	assert.Equal(t, scene.Vector2{X: 200, Y: 200}, *visual.Size)
	require.Len(t, visual.Shapes, 1)

	sprite := sc.Graph.Node(visual.Shapes[0]).Payload.(*scene.SpriteShape)
	assert.Equal(t, 4.0, sprite.StrokeThickness)
	assert.Equal(t, scene.NilNode, sprite.FillBrush)
	require.Len(t, sprite.Animators, 1)

	anim := sc.Graph.Node(sprite.Animators[0].Animation)
	require.Equal(t, scene.KindScalarKeyFrameAnimation, anim.Kind)
	frames := anim.Payload.(*scene.ScalarKeyFrameAnimation).Frames
	require.Len(t, frames, 2)
	assert.Equal(t, scene.NilNode, frames[0].Easing)
	assert.Equal(t, scene.KindLinearEasing, sc.Graph.Node(frames[1].Easing).Kind)

	brush := sc.Graph.Node(sprite.StrokeBrush).Payload.(*scene.ColorBrush)
	assert.Equal(t, scene.Color{A: 0xFF, R: 0x40, G: 0x80, B: 0xFF}, brush.Color)
}

func TestParseDeterministicIDs(t *testing.T) {
	a, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	b, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	require.Equal(t, a.Graph.Len(), b.Graph.Len())
	for id := scene.NodeID(0); int(id) < a.Graph.Len(); id++ {
		assert.Equal(t, a.Graph.Node(id).Kind, b.Graph.Node(id).Kind)
	}
	assert.Equal(t, a.Graph.Root(), b.Graph.Root())
}

func TestParseErrors(t *testing.T) {
	t.Run("schema rejects a node without kind", func(t *testing.T) {
		_, err := Parse([]byte(`
scene: { name: Bad }
root: root
nodes:
  root: { size: { x: 1, y: 1 } }
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema")
	})

	t.Run("unknown reference", func(t *testing.T) {
		_, err := Parse([]byte(`
scene: { name: Bad }
root: root
nodes:
  root:
    kind: ContainerVisual
    children: [missing]
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		_, err := Parse([]byte(`
scene: { name: Bad }
root: root
nodes:
  root:
    kind: ContainerVisual
    opacty: 0.5
`))
		require.Error(t, err)
	})

	t.Run("root must be a visual", func(t *testing.T) {
		_, err := Parse([]byte(`
scene: { name: Bad }
root: root
nodes:
  root:
    kind: ColorBrush
    color: "#FFFFFF"
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a visual")
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := Parse([]byte(`
scene: { name: Bad }
root: root
nodes:
  root:
    kind: ContainerVisual
    animators:
      - property: Opacity
        animation: expr
  expr:
    kind: ExpressionAnimation
    expression: "1 +"
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid animation expression")
	})

	t.Run("malformed color", func(t *testing.T) {
		_, err := Parse([]byte(`
scene: { name: Bad }
root: root
nodes:
  root:
    kind: ShapeVisual
    shapes: [s]
  s:
    kind: SpriteShape
    fill: b
  b:
    kind: ColorBrush
    color: "red"
`))
		require.Error(t, err)
	})
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#FF0000")
	require.NoError(t, err)
	assert.Equal(t, scene.Color{A: 255, R: 255}, c)

	c, err = parseColor("#80102030")
	require.NoError(t, err)
	assert.Equal(t, scene.Color{A: 0x80, R: 0x10, G: 0x20, B: 0x30}, c)

	_, err = parseColor("#123")
	require.Error(t, err)
}

func TestParseDurationDefault(t *testing.T) {
	d, err := parseDuration("")
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)

	_, err = parseDuration("-1s")
	require.Error(t, err)

	_, err = parseDuration("fast")
	require.Error(t, err)
}
