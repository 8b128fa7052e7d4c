package scene

// Constructors below return payloads with every property set to its
// variant default, and every reference field set to NilNode. Emitters
// diff against these defaults, so builders must start from them.

func NewContainerVisual() *ContainerVisual {
	return &ContainerVisual{VisualBase: newVisualBase()}
}

func NewShapeVisual() *ShapeVisual {
	return &ShapeVisual{VisualBase: newVisualBase(), ViewBox: NilNode}
}

func newVisualBase() VisualBase {
	return VisualBase{
		Opacity: 1,
		Scale:   Vector2{X: 1, Y: 1},
		Clip:    NilNode,
	}
}

func newShapeBase() ShapeBase {
	return ShapeBase{Scale: Vector2{X: 1, Y: 1}}
}

func NewSpriteShape() *SpriteShape {
	return &SpriteShape{
		ShapeBase:        newShapeBase(),
		Geometry:         NilNode,
		FillBrush:        NilNode,
		StrokeBrush:      NilNode,
		StrokeThickness:  1,
		StrokeMiterLimit: 1,
		StrokeStartCap:   CapFlat,
		StrokeEndCap:     CapFlat,
		StrokeDashCap:    CapFlat,
	}
}

func NewContainerShape() *ContainerShape {
	return &ContainerShape{ShapeBase: newShapeBase()}
}

func NewColorBrush(c Color) *ColorBrush {
	return &ColorBrush{Color: c}
}

func NewLinearGradientBrush() *LinearGradientBrush {
	return &LinearGradientBrush{EndPoint: Vector2{X: 1, Y: 0}}
}

func NewGradientStop(offset float64, c Color) *GradientStop {
	return &GradientStop{Offset: offset, Color: c}
}

func newGeometryBase() GeometryBase {
	return GeometryBase{TrimEnd: 1}
}

func NewEllipseGeometry() *EllipseGeometry {
	return &EllipseGeometry{GeometryBase: newGeometryBase()}
}

func NewRectangleGeometry() *RectangleGeometry {
	return &RectangleGeometry{GeometryBase: newGeometryBase()}
}

func NewRoundedRectangleGeometry() *RoundedRectangleGeometry {
	return &RoundedRectangleGeometry{GeometryBase: newGeometryBase()}
}

func NewPathGeometry(path NodeID) *PathGeometry {
	return &PathGeometry{GeometryBase: newGeometryBase(), Path: path}
}

func NewViewBox(size Vector2) *ViewBox {
	return &ViewBox{Size: size}
}

func NewInsetClip() *InsetClip {
	return &InsetClip{}
}

func NewStepEasing() *StepEasing {
	return &StepEasing{StepCount: 1}
}

func NewPath(geometry NodeID) *Path {
	return &Path{Geometry: geometry}
}

func NewCanvasCombination(a, b NodeID, op CombineKind) *CanvasCombination {
	return &CanvasCombination{A: a, B: b, Op: op}
}
