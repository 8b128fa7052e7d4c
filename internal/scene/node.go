package scene

// NodeID addresses a node inside a Graph. References between nodes are
// always IDs, never pointers, so the arena alone owns every node.
type NodeID int

// NilNode is the absent reference.
const NilNode NodeID = -1

// Node is one object instance of the scene graph. Payload holds the
// variant-specific data and its dynamic type must match Kind.
type Node struct {
	ID      NodeID
	Kind    Kind
	Payload any
}

// Animator binds one settable property of its owning node to an
// animation node. Controller, when present, describes the implicit
// animation controller obtained for that property; the controller is
// never a standalone graph node.
type Animator struct {
	TargetProperty string
	Animation      NodeID
	Controller     *ControllerBinding
}

// ControllerBinding is the implicit per-animator controller. Its own
// animators (typically an expression driving Progress) are bound
// recursively against the controller local.
type ControllerBinding struct {
	Pause     bool
	Animators []Animator
}

// Animatable is embedded by every payload whose properties can carry
// custom values or animation bindings.
type Animatable struct {
	Properties []CustomProperty
	Animators  []Animator
}

// VisualBase holds the settable properties common to visuals.
// Defaults: Offset (0,0,0), CenterPoint (0,0,0), RotationAngle 0,
// Opacity 1, Scale (1,1), no clip, no size.
type VisualBase struct {
	Animatable
	Offset         Vector3
	CenterPoint    Vector3
	RotationAngle  float64
	Opacity        float64
	Scale          Vector2
	Size           *Vector2
	Clip           NodeID
}

// ContainerVisual groups child visuals.
type ContainerVisual struct {
	VisualBase
	Children []NodeID
}

// ShapeVisual renders a list of shapes inside a view box.
type ShapeVisual struct {
	VisualBase
	ViewBox NodeID
	Shapes  []NodeID
}

// ShapeBase holds the settable properties common to shapes.
// Defaults: Offset (0,0), CenterPoint (0,0), RotationAngle 0, Scale (1,1).
type ShapeBase struct {
	Animatable
	Offset        Vector2
	CenterPoint   Vector2
	RotationAngle float64
	Scale         Vector2
}

// SpriteShape draws one geometry with fill and stroke.
// Defaults: StrokeThickness 1, StrokeMiterLimit 1, all caps Flat,
// StrokeDashOffset 0, empty dash array.
type SpriteShape struct {
	ShapeBase
	Geometry         NodeID
	FillBrush        NodeID
	StrokeBrush      NodeID
	StrokeThickness  float64
	StrokeMiterLimit float64
	StrokeStartCap   CapKind
	StrokeEndCap     CapKind
	StrokeDashCap    CapKind
	StrokeDashOffset float64
	StrokeDashArray  []float64
}

// ContainerShape groups child shapes.
type ContainerShape struct {
	ShapeBase
	Shapes []NodeID
}

// ColorBrush paints a solid color.
type ColorBrush struct {
	Animatable
	Color Color
}

// LinearGradientBrush paints a gradient between two points.
type LinearGradientBrush struct {
	Animatable
	StartPoint Vector2
	EndPoint   Vector2
	Stops      []NodeID
}

// GradientStop is one color stop of a gradient brush.
type GradientStop struct {
	Animatable
	Offset float64
	Color  Color
}

// GeometryBase holds trim properties shared by composition geometries.
// Defaults: TrimStart 0, TrimEnd 1, TrimOffset 0.
type GeometryBase struct {
	Animatable
	TrimStart  float64
	TrimEnd    float64
	TrimOffset float64
}

// EllipseGeometry is an axis-aligned ellipse.
type EllipseGeometry struct {
	GeometryBase
	Center Vector2
	Radius Vector2
}

// RectangleGeometry is an axis-aligned rectangle.
type RectangleGeometry struct {
	GeometryBase
	Offset Vector2
	Size   Vector2
}

// RoundedRectangleGeometry is a rectangle with rounded corners.
type RoundedRectangleGeometry struct {
	GeometryBase
	Offset       Vector2
	Size         Vector2
	CornerRadius Vector2
}

// PathGeometry renders a path wrapper.
type PathGeometry struct {
	GeometryBase
	Path NodeID
}

// ViewBox frames a shape visual's content.
type ViewBox struct {
	Animatable
	Size Vector2
}

// InsetClip clips a visual by edge insets. All insets default to 0.
type InsetClip struct {
	Animatable
	LeftInset   float64
	TopInset    float64
	RightInset  float64
	BottomInset float64
}

// LinearEasing interpolates at constant speed. No settable properties.
type LinearEasing struct{}

// CubicBezierEasing interpolates along a cubic bezier curve defined by
// its two control points.
type CubicBezierEasing struct {
	ControlPoint1 Vector2
	ControlPoint2 Vector2
}

// StepEasing interpolates in discrete steps. StepCount defaults to 1;
// the final-step flag defaults to false.
type StepEasing struct {
	StepCount               int
	IsFinalStepSingleFrame  bool
}

// ScalarFrame is one keyframe of a scalar animation. If Expression is
// non-empty the frame is expression-valued and Value is ignored.
type ScalarFrame struct {
	Progress   float64
	Value      float64
	Expression string
	Easing     NodeID
}

// Vector2Frame is one keyframe of a 2D vector animation.
type Vector2Frame struct {
	Progress   float64
	Value      Vector2
	Expression string
	Easing     NodeID
}

// Vector3Frame is one keyframe of a 3D vector animation.
type Vector3Frame struct {
	Progress   float64
	Value      Vector3
	Expression string
	Easing     NodeID
}

// ColorFrame is one keyframe of a color animation.
type ColorFrame struct {
	Progress float64
	Value    Color
	Easing   NodeID
}

// PathFrame is one keyframe of a path animation. Value references a
// path wrapper node.
type PathFrame struct {
	Progress float64
	Value    NodeID
	Easing   NodeID
}

// ScalarKeyFrameAnimation animates a scalar property.
type ScalarKeyFrameAnimation struct {
	Target string
	Frames []ScalarFrame
}

// Vector2KeyFrameAnimation animates a 2D vector property.
type Vector2KeyFrameAnimation struct {
	Target string
	Frames []Vector2Frame
}

// Vector3KeyFrameAnimation animates a 3D vector property.
type Vector3KeyFrameAnimation struct {
	Target string
	Frames []Vector3Frame
}

// ColorKeyFrameAnimation animates a color property.
type ColorKeyFrameAnimation struct {
	Target string
	Frames []ColorFrame
}

// PathKeyFrameAnimation animates a path property.
type PathKeyFrameAnimation struct {
	Target string
	Frames []PathFrame
}

// RefParameter maps an identifier inside an expression to the node it
// refers to at runtime.
type RefParameter struct {
	Name string
	Node NodeID
}

// ExpressionAnimation animates a property by evaluating an expression.
// Two expression animations are interchangeable only when their
// normalized expression text coincides.
type ExpressionAnimation struct {
	Expression          string
	Target              string
	ReferenceParameters []RefParameter
}

// Path wraps a drawing-library geometry so composition geometries can
// reference it.
type Path struct {
	Geometry NodeID
}

// CanvasCombination combines two canvas geometries with a boolean op.
type CanvasCombination struct {
	A  NodeID
	B  NodeID
	Op CombineKind
}

// CanvasEllipse is a drawing-library ellipse.
type CanvasEllipse struct {
	Center  Vector2
	RadiusX float64
	RadiusY float64
}

// CanvasPath is a drawing-library path built from explicit commands.
type CanvasPath struct {
	FillRule FillRule
	Commands []PathCommand
}

// CanvasRoundedRectangle is a drawing-library rounded rectangle.
type CanvasRoundedRectangle struct {
	X       float64
	Y       float64
	W       float64
	H       float64
	RadiusX float64
	RadiusY float64
}
