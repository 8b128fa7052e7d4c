package scene

// Kind identifies the concrete variant of a node. The set is closed:
// every kind listed here has a matching emitter in the codegen package,
// and dispatch over an unknown kind is an internal fault.
type Kind string

const (
	// Visual tree.
	KindContainerVisual Kind = "container_visual"
	KindShapeVisual     Kind = "shape_visual"

	// Shapes.
	KindSpriteShape    Kind = "sprite_shape"
	KindContainerShape Kind = "container_shape"

	// Brushes.
	KindColorBrush          Kind = "color_brush"
	KindLinearGradientBrush Kind = "linear_gradient_brush"
	KindGradientStop        Kind = "gradient_stop"

	// Composition geometries.
	KindEllipseGeometry          Kind = "ellipse_geometry"
	KindRectangleGeometry        Kind = "rectangle_geometry"
	KindRoundedRectangleGeometry Kind = "rounded_rectangle_geometry"
	KindPathGeometry             Kind = "path_geometry"

	// Clipping and framing.
	KindViewBox   Kind = "view_box"
	KindInsetClip Kind = "inset_clip"

	// Easing functions.
	KindLinearEasing      Kind = "linear_easing"
	KindCubicBezierEasing Kind = "cubic_bezier_easing"
	KindStepEasing        Kind = "step_easing"

	// Animations.
	KindScalarKeyFrameAnimation  Kind = "scalar_keyframe_animation"
	KindVector2KeyFrameAnimation Kind = "vector2_keyframe_animation"
	KindVector3KeyFrameAnimation Kind = "vector3_keyframe_animation"
	KindColorKeyFrameAnimation   Kind = "color_keyframe_animation"
	KindPathKeyFrameAnimation    Kind = "path_keyframe_animation"
	KindExpressionAnimation      Kind = "expression_animation"

	// Wrapper around a drawing-library geometry. Single-use wrappers are
	// inlined at their use sites rather than getting a factory method.
	KindPath Kind = "path"

	// Drawing-library geometry sources. Their factory bodies are supplied
	// by the language specialization.
	KindCanvasCombination      Kind = "canvas_combination"
	KindCanvasEllipse          Kind = "canvas_ellipse"
	KindCanvasPath             Kind = "canvas_path"
	KindCanvasRoundedRectangle Kind = "canvas_rounded_rectangle"
)

// TypeName returns the target-object type name for a kind, used for
// factory return types and for deriving method names.
func (k Kind) TypeName() string {
	switch k {
	case KindContainerVisual:
		return "ContainerVisual"
	case KindShapeVisual:
		return "ShapeVisual"
	case KindSpriteShape:
		return "CompositionSpriteShape"
	case KindContainerShape:
		return "CompositionContainerShape"
	case KindColorBrush:
		return "CompositionColorBrush"
	case KindLinearGradientBrush:
		return "CompositionLinearGradientBrush"
	case KindGradientStop:
		return "CompositionColorGradientStop"
	case KindEllipseGeometry:
		return "CompositionEllipseGeometry"
	case KindRectangleGeometry:
		return "CompositionRectangleGeometry"
	case KindRoundedRectangleGeometry:
		return "CompositionRoundedRectangleGeometry"
	case KindPathGeometry:
		return "CompositionPathGeometry"
	case KindViewBox:
		return "CompositionViewBox"
	case KindInsetClip:
		return "InsetClip"
	case KindLinearEasing:
		return "LinearEasingFunction"
	case KindCubicBezierEasing:
		return "CubicBezierEasingFunction"
	case KindStepEasing:
		return "StepEasingFunction"
	case KindScalarKeyFrameAnimation:
		return "ScalarKeyFrameAnimation"
	case KindVector2KeyFrameAnimation:
		return "Vector2KeyFrameAnimation"
	case KindVector3KeyFrameAnimation:
		return "Vector3KeyFrameAnimation"
	case KindColorKeyFrameAnimation:
		return "ColorKeyFrameAnimation"
	case KindPathKeyFrameAnimation:
		return "PathKeyFrameAnimation"
	case KindExpressionAnimation:
		return "ExpressionAnimation"
	case KindPath:
		return "CompositionPath"
	case KindCanvasCombination, KindCanvasEllipse, KindCanvasPath, KindCanvasRoundedRectangle:
		return "CanvasGeometry"
	}
	return string(k)
}

// IsCanvasGeometry reports whether the kind is one of the four
// drawing-library geometry sources.
func (k Kind) IsCanvasGeometry() bool {
	switch k {
	case KindCanvasCombination, KindCanvasEllipse, KindCanvasPath, KindCanvasRoundedRectangle:
		return true
	}
	return false
}

// IsKeyFrameAnimation reports whether the kind is one of the typed
// keyframe animation variants.
func (k Kind) IsKeyFrameAnimation() bool {
	switch k {
	case KindScalarKeyFrameAnimation, KindVector2KeyFrameAnimation,
		KindVector3KeyFrameAnimation, KindColorKeyFrameAnimation,
		KindPathKeyFrameAnimation:
		return true
	}
	return false
}

// IsAnimation reports whether the kind is any animation variant.
func (k Kind) IsAnimation() bool {
	return k.IsKeyFrameAnimation() || k == KindExpressionAnimation
}

// IsEasing reports whether the kind is an easing function.
func (k Kind) IsEasing() bool {
	switch k {
	case KindLinearEasing, KindCubicBezierEasing, KindStepEasing:
		return true
	}
	return false
}
