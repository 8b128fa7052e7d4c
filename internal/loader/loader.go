package loader

import (
	"fmt"
	"os"
	"sort"
	"time"

	"scenegen/internal/scene"
)

// Scene is a fully built scene ready for canonicalization.
type Scene struct {
	Name     string
	Size     scene.Vector2
	Duration time.Duration
	Graph    *scene.Graph
}

// Load reads and builds one scene document from disk.
func Load(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// docKinds maps document kind names to graph kinds.
var docKinds = map[string]scene.Kind{
	"ContainerVisual":           scene.KindContainerVisual,
	"ShapeVisual":               scene.KindShapeVisual,
	"SpriteShape":               scene.KindSpriteShape,
	"ContainerShape":            scene.KindContainerShape,
	"ColorBrush":                scene.KindColorBrush,
	"LinearGradientBrush":       scene.KindLinearGradientBrush,
	"GradientStop":              scene.KindGradientStop,
	"EllipseGeometry":           scene.KindEllipseGeometry,
	"RectangleGeometry":         scene.KindRectangleGeometry,
	"RoundedRectangleGeometry":  scene.KindRoundedRectangleGeometry,
	"PathGeometry":              scene.KindPathGeometry,
	"ViewBox":                   scene.KindViewBox,
	"InsetClip":                 scene.KindInsetClip,
	"LinearEasing":              scene.KindLinearEasing,
	"CubicBezierEasing":         scene.KindCubicBezierEasing,
	"StepEasing":                scene.KindStepEasing,
	"ScalarKeyFrameAnimation":   scene.KindScalarKeyFrameAnimation,
	"Vector2KeyFrameAnimation":  scene.KindVector2KeyFrameAnimation,
	"Vector3KeyFrameAnimation":  scene.KindVector3KeyFrameAnimation,
	"ColorKeyFrameAnimation":    scene.KindColorKeyFrameAnimation,
	"PathKeyFrameAnimation":     scene.KindPathKeyFrameAnimation,
	"ExpressionAnimation":       scene.KindExpressionAnimation,
	"Path":                      scene.KindPath,
	"CanvasCombination":         scene.KindCanvasCombination,
	"CanvasEllipse":             scene.KindCanvasEllipse,
	"CanvasPath":                scene.KindCanvasPath,
	"CanvasRoundedRectangle":    scene.KindCanvasRoundedRectangle,
}

// Parse validates and builds one scene document.
func Parse(raw []byte) (*Scene, error) {
	// 1. Validate the raw document against the schema.
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	// 2. Decode into the typed document.
	var doc document
	if err := yamlUnmarshalStrict(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode scene document: %w", err)
	}

	duration, err := parseDuration(doc.Scene.Duration)
	if err != nil {
		return nil, err
	}

	// 3. Allocate a graph node per document node, in sorted name order so
	// repeated loads of the same document produce identical IDs.
	b := &builder{
		doc: &doc,
		g:   scene.NewGraph(),
		ids: make(map[string]scene.NodeID, len(doc.Nodes)),
	}
	names := make([]string, 0, len(doc.Nodes))
	for name := range doc.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		dn := doc.Nodes[name]
		kind, ok := docKinds[dn.Kind]
		if !ok {
			return nil, fmt.Errorf("node %q: unknown kind %q", name, dn.Kind)
		}
		b.ids[name] = b.g.Add(kind, nil)
	}

	// 4. Build every payload, rewriting name references to IDs.
	for _, name := range names {
		dn := doc.Nodes[name]
		payload, err := b.buildPayload(name, &dn)
		if err != nil {
			return nil, err
		}
		b.g.Node(b.ids[name]).Payload = payload
	}

	// 5. Wire the root.
	rootID, ok := b.ids[doc.Root]
	if !ok {
		return nil, fmt.Errorf("root %q: no such node", doc.Root)
	}
	rootKind := b.g.Node(rootID).Kind
	if rootKind != scene.KindContainerVisual && rootKind != scene.KindShapeVisual {
		return nil, fmt.Errorf("root %q: kind %q is not a visual", doc.Root, rootKind)
	}
	b.g.SetRoot(rootID)

	return &Scene{
		Name:     doc.Scene.Name,
		Size:     doc.Scene.Size.vec(),
		Duration: duration,
		Graph:    b.g,
	}, nil
}

type builder struct {
	doc *document
	g   *scene.Graph
	ids map[string]scene.NodeID
}

// ref resolves a required node reference.
func (b *builder) ref(owner, field, name string) (scene.NodeID, error) {
	if name == "" {
		return scene.NilNode, fmt.Errorf("node %q: %s is required", owner, field)
	}
	id, ok := b.ids[name]
	if !ok {
		return scene.NilNode, fmt.Errorf("node %q: %s references unknown node %q", owner, field, name)
	}
	return id, nil
}

// optRef resolves an optional node reference, NilNode when absent.
func (b *builder) optRef(owner, field, name string) (scene.NodeID, error) {
	if name == "" {
		return scene.NilNode, nil
	}
	return b.ref(owner, field, name)
}

func (b *builder) refs(owner, field string, names []string) ([]scene.NodeID, error) {
	var out []scene.NodeID
	for _, n := range names {
		id, err := b.ref(owner, field, n)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (b *builder) buildPayload(name string, dn *docNode) (any, error) {
	switch docKinds[dn.Kind] {
	case scene.KindContainerVisual:
		return b.buildContainerVisual(name, dn)
	case scene.KindShapeVisual:
		return b.buildShapeVisual(name, dn)
	case scene.KindSpriteShape:
		return b.buildSpriteShape(name, dn)
	case scene.KindContainerShape:
		return b.buildContainerShape(name, dn)
	case scene.KindColorBrush:
		return b.buildColorBrush(name, dn)
	case scene.KindLinearGradientBrush:
		return b.buildLinearGradientBrush(name, dn)
	case scene.KindGradientStop:
		return b.buildGradientStop(name, dn)
	case scene.KindEllipseGeometry:
		return b.buildEllipseGeometry(name, dn)
	case scene.KindRectangleGeometry:
		return b.buildRectangleGeometry(name, dn)
	case scene.KindRoundedRectangleGeometry:
		return b.buildRoundedRectangleGeometry(name, dn)
	case scene.KindPathGeometry:
		return b.buildPathGeometry(name, dn)
	case scene.KindViewBox:
		return b.buildViewBox(name, dn)
	case scene.KindInsetClip:
		return b.buildInsetClip(name, dn)
	case scene.KindLinearEasing:
		return &scene.LinearEasing{}, nil
	case scene.KindCubicBezierEasing:
		return b.buildCubicBezierEasing(dn), nil
	case scene.KindStepEasing:
		return b.buildStepEasing(dn), nil
	case scene.KindScalarKeyFrameAnimation:
		return b.buildScalarAnimation(name, dn)
	case scene.KindVector2KeyFrameAnimation:
		return b.buildVector2Animation(name, dn)
	case scene.KindVector3KeyFrameAnimation:
		return b.buildVector3Animation(name, dn)
	case scene.KindColorKeyFrameAnimation:
		return b.buildColorAnimation(name, dn)
	case scene.KindPathKeyFrameAnimation:
		return b.buildPathAnimation(name, dn)
	case scene.KindExpressionAnimation:
		return b.buildExpressionAnimation(name, dn)
	case scene.KindPath:
		return b.buildPath(name, dn)
	case scene.KindCanvasCombination:
		return b.buildCanvasCombination(name, dn)
	case scene.KindCanvasEllipse:
		return b.buildCanvasEllipse(dn), nil
	case scene.KindCanvasPath:
		return b.buildCanvasPath(name, dn)
	case scene.KindCanvasRoundedRectangle:
		return b.buildCanvasRoundedRectangle(dn), nil
	}
	return nil, fmt.Errorf("node %q: unknown kind %q", name, dn.Kind)
}

func (b *builder) buildAnimatable(owner string, dn *docNode, a *scene.Animatable) error {
	for _, p := range dn.Properties {
		cp := scene.CustomProperty{Name: p.Name}
		switch {
		case p.Scalar != nil:
			cp.Kind = scene.PropertyScalar
			cp.Scalar = *p.Scalar
		case p.Vector2 != nil:
			cp.Kind = scene.PropertyVector2
			cp.Vector2 = p.Vector2.vec()
		default:
			return fmt.Errorf("node %q: property %q has no value", owner, p.Name)
		}
		a.Properties = append(a.Properties, cp)
	}
	animators, err := b.buildAnimators(owner, dn.Animators)
	if err != nil {
		return err
	}
	a.Animators = animators
	return nil
}

func (b *builder) buildAnimators(owner string, docs []docAnimator) ([]scene.Animator, error) {
	var out []scene.Animator
	for _, da := range docs {
		anim, err := b.ref(owner, "animator", da.Animation)
		if err != nil {
			return nil, err
		}
		if !b.g.Node(anim).Kind.IsAnimation() {
			return nil, fmt.Errorf("node %q: animator for %q references non-animation node %q", owner, da.Property, da.Animation)
		}
		a := scene.Animator{TargetProperty: da.Property, Animation: anim}
		if da.Controller != nil {
			nested, err := b.buildAnimators(owner, da.Controller.Animators)
			if err != nil {
				return nil, err
			}
			a.Controller = &scene.ControllerBinding{
				Pause:     da.Controller.Pause,
				Animators: nested,
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func (b *builder) buildVisualBase(owner string, dn *docNode, v *scene.VisualBase) error {
	if dn.Offset3 != nil {
		v.Offset = dn.Offset3.vec()
	}
	if dn.CenterPoint != nil {
		v.CenterPoint = dn.CenterPoint.vec()
	}
	if dn.Rotation != nil {
		v.RotationAngle = *dn.Rotation
	}
	if dn.Opacity != nil {
		v.Opacity = *dn.Opacity
	}
	if dn.Scale != nil {
		v.Scale = dn.Scale.vec()
	}
	if dn.Size != nil {
		size := dn.Size.vec()
		v.Size = &size
	}
	clip, err := b.optRef(owner, "clip", dn.Clip)
	if err != nil {
		return err
	}
	v.Clip = clip
	return b.buildAnimatable(owner, dn, &v.Animatable)
}

func (b *builder) buildShapeBase(owner string, dn *docNode, s *scene.ShapeBase) error {
	if dn.Offset != nil {
		s.Offset = dn.Offset.vec()
	}
	if dn.Center2 != nil {
		s.CenterPoint = dn.Center2.vec()
	}
	if dn.Rotation != nil {
		s.RotationAngle = *dn.Rotation
	}
	if dn.Scale != nil {
		s.Scale = dn.Scale.vec()
	}
	return b.buildAnimatable(owner, dn, &s.Animatable)
}

func (b *builder) buildContainerVisual(name string, dn *docNode) (any, error) {
	p := scene.NewContainerVisual()
	if err := b.buildVisualBase(name, dn, &p.VisualBase); err != nil {
		return nil, err
	}
	children, err := b.refs(name, "children", dn.Children)
	if err != nil {
		return nil, err
	}
	p.Children = children
	return p, nil
}

func (b *builder) buildShapeVisual(name string, dn *docNode) (any, error) {
	p := scene.NewShapeVisual()
	if err := b.buildVisualBase(name, dn, &p.VisualBase); err != nil {
		return nil, err
	}
	viewBox, err := b.optRef(name, "viewBox", dn.ViewBox)
	if err != nil {
		return nil, err
	}
	p.ViewBox = viewBox
	shapes, err := b.refs(name, "shapes", dn.Shapes)
	if err != nil {
		return nil, err
	}
	p.Shapes = shapes
	return p, nil
}

func (b *builder) buildSpriteShape(name string, dn *docNode) (any, error) {
	p := scene.NewSpriteShape()
	if err := b.buildShapeBase(name, dn, &p.ShapeBase); err != nil {
		return nil, err
	}
	var err error
	if p.Geometry, err = b.optRef(name, "geometry", dn.Geometry); err != nil {
		return nil, err
	}
	if p.FillBrush, err = b.optRef(name, "fill", dn.Fill); err != nil {
		return nil, err
	}
	if p.StrokeBrush, err = b.optRef(name, "stroke", dn.Stroke); err != nil {
		return nil, err
	}
	if dn.StrokeThickness != nil {
		p.StrokeThickness = *dn.StrokeThickness
	}
	if dn.StrokeMiterLimit != nil {
		p.StrokeMiterLimit = *dn.StrokeMiterLimit
	}
	if dn.StrokeStartCap != "" {
		p.StrokeStartCap = scene.CapKind(dn.StrokeStartCap)
	}
	if dn.StrokeEndCap != "" {
		p.StrokeEndCap = scene.CapKind(dn.StrokeEndCap)
	}
	if dn.StrokeDashCap != "" {
		p.StrokeDashCap = scene.CapKind(dn.StrokeDashCap)
	}
	if dn.StrokeDashOffset != nil {
		p.StrokeDashOffset = *dn.StrokeDashOffset
	}
	p.StrokeDashArray = dn.StrokeDashArray
	return p, nil
}

func (b *builder) buildContainerShape(name string, dn *docNode) (any, error) {
	p := scene.NewContainerShape()
	if err := b.buildShapeBase(name, dn, &p.ShapeBase); err != nil {
		return nil, err
	}
	shapes, err := b.refs(name, "shapes", dn.Shapes)
	if err != nil {
		return nil, err
	}
	p.Shapes = shapes
	return p, nil
}

func (b *builder) buildColorBrush(name string, dn *docNode) (any, error) {
	c, err := parseColor(dn.Color)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", name, err)
	}
	p := scene.NewColorBrush(c)
	if err := b.buildAnimatable(name, dn, &p.Animatable); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *builder) buildLinearGradientBrush(name string, dn *docNode) (any, error) {
	p := scene.NewLinearGradientBrush()
	if dn.StartPoint != nil {
		p.StartPoint = dn.StartPoint.vec()
	}
	if dn.EndPoint != nil {
		p.EndPoint = dn.EndPoint.vec()
	}
	stops, err := b.refs(name, "stops", dn.Stops)
	if err != nil {
		return nil, err
	}
	p.Stops = stops
	if err := b.buildAnimatable(name, dn, &p.Animatable); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *builder) buildGradientStop(name string, dn *docNode) (any, error) {
	c, err := parseColor(dn.Color)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", name, err)
	}
	offset := 0.0
	if dn.StopOffset != nil {
		offset = *dn.StopOffset
	}
	p := scene.NewGradientStop(offset, c)
	if err := b.buildAnimatable(name, dn, &p.Animatable); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *builder) buildGeometryBase(owner string, dn *docNode, g *scene.GeometryBase) error {
	if dn.TrimStart != nil {
		g.TrimStart = *dn.TrimStart
	}
	if dn.TrimEnd != nil {
		g.TrimEnd = *dn.TrimEnd
	}
	if dn.TrimOffset != nil {
		g.TrimOffset = *dn.TrimOffset
	}
	return b.buildAnimatable(owner, dn, &g.Animatable)
}

func (b *builder) buildEllipseGeometry(name string, dn *docNode) (any, error) {
	p := scene.NewEllipseGeometry()
	if dn.Center != nil {
		p.Center = dn.Center.vec()
	}
	if dn.Radius != nil {
		p.Radius = dn.Radius.vec()
	}
	if err := b.buildGeometryBase(name, dn, &p.GeometryBase); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *builder) buildRectangleGeometry(name string, dn *docNode) (any, error) {
	p := scene.NewRectangleGeometry()
	if dn.Offset != nil {
		p.Offset = dn.Offset.vec()
	}
	if dn.Size != nil {
		p.Size = dn.Size.vec()
	}
	if err := b.buildGeometryBase(name, dn, &p.GeometryBase); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *builder) buildRoundedRectangleGeometry(name string, dn *docNode) (any, error) {
	p := scene.NewRoundedRectangleGeometry()
	if dn.Offset != nil {
		p.Offset = dn.Offset.vec()
	}
	if dn.Size != nil {
		p.Size = dn.Size.vec()
	}
	if dn.CornerRadius != nil {
		p.CornerRadius = dn.CornerRadius.vec()
	}
	if err := b.buildGeometryBase(name, dn, &p.GeometryBase); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *builder) buildPathGeometry(name string, dn *docNode) (any, error) {
	path, err := b.ref(name, "path", dn.Path)
	if err != nil {
		return nil, err
	}
	if b.g.Node(path).Kind != scene.KindPath {
		return nil, fmt.Errorf("node %q: path must reference a Path node", name)
	}
	p := scene.NewPathGeometry(path)
	if err := b.buildGeometryBase(name, dn, &p.GeometryBase); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *builder) buildViewBox(name string, dn *docNode) (any, error) {
	size := scene.Vector2{}
	if dn.Size != nil {
		size = dn.Size.vec()
	}
	p := scene.NewViewBox(size)
	if err := b.buildAnimatable(name, dn, &p.Animatable); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *builder) buildInsetClip(name string, dn *docNode) (any, error) {
	p := scene.NewInsetClip()
	if dn.LeftInset != nil {
		p.LeftInset = *dn.LeftInset
	}
	if dn.TopInset != nil {
		p.TopInset = *dn.TopInset
	}
	if dn.RightInset != nil {
		p.RightInset = *dn.RightInset
	}
	if dn.BottomInset != nil {
		p.BottomInset = *dn.BottomInset
	}
	if err := b.buildAnimatable(name, dn, &p.Animatable); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *builder) buildCubicBezierEasing(dn *docNode) *scene.CubicBezierEasing {
	p := &scene.CubicBezierEasing{}
	if dn.ControlPoint1 != nil {
		p.ControlPoint1 = dn.ControlPoint1.vec()
	}
	if dn.ControlPoint2 != nil {
		p.ControlPoint2 = dn.ControlPoint2.vec()
	}
	return p
}

func (b *builder) buildStepEasing(dn *docNode) *scene.StepEasing {
	p := scene.NewStepEasing()
	if dn.StepCount != nil {
		p.StepCount = *dn.StepCount
	}
	p.IsFinalStepSingleFrame = dn.IsFinalStepSingleFrame
	return p
}

// frameEasing resolves a frame's optional easing reference and checks
// its kind.
func (b *builder) frameEasing(owner, name string) (scene.NodeID, error) {
	id, err := b.optRef(owner, "easing", name)
	if err != nil {
		return scene.NilNode, err
	}
	if id != scene.NilNode && !b.g.Node(id).Kind.IsEasing() {
		return scene.NilNode, fmt.Errorf("node %q: easing %q is not an easing function", owner, name)
	}
	return id, nil
}

func (b *builder) buildScalarAnimation(name string, dn *docNode) (any, error) {
	p := &scene.ScalarKeyFrameAnimation{Target: dn.Target}
	for _, f := range dn.Frames {
		easing, err := b.frameEasing(name, f.Easing)
		if err != nil {
			return nil, err
		}
		p.Frames = append(p.Frames, scene.ScalarFrame{
			Progress:   f.Progress,
			Value:      f.Value,
			Expression: f.Expression,
			Easing:     easing,
		})
	}
	return p, nil
}

func (b *builder) buildVector2Animation(name string, dn *docNode) (any, error) {
	p := &scene.Vector2KeyFrameAnimation{Target: dn.Target}
	for _, f := range dn.Frames {
		easing, err := b.frameEasing(name, f.Easing)
		if err != nil {
			return nil, err
		}
		frame := scene.Vector2Frame{Progress: f.Progress, Expression: f.Expression, Easing: easing}
		if f.Vector2 != nil {
			frame.Value = f.Vector2.vec()
		}
		p.Frames = append(p.Frames, frame)
	}
	return p, nil
}

func (b *builder) buildVector3Animation(name string, dn *docNode) (any, error) {
	p := &scene.Vector3KeyFrameAnimation{Target: dn.Target}
	for _, f := range dn.Frames {
		easing, err := b.frameEasing(name, f.Easing)
		if err != nil {
			return nil, err
		}
		frame := scene.Vector3Frame{Progress: f.Progress, Expression: f.Expression, Easing: easing}
		if f.Vector3 != nil {
			frame.Value = f.Vector3.vec()
		}
		p.Frames = append(p.Frames, frame)
	}
	return p, nil
}

func (b *builder) buildColorAnimation(name string, dn *docNode) (any, error) {
	p := &scene.ColorKeyFrameAnimation{Target: dn.Target}
	for _, f := range dn.Frames {
		easing, err := b.frameEasing(name, f.Easing)
		if err != nil {
			return nil, err
		}
		c, err := parseColor(f.Color)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", name, err)
		}
		p.Frames = append(p.Frames, scene.ColorFrame{Progress: f.Progress, Value: c, Easing: easing})
	}
	return p, nil
}

func (b *builder) buildPathAnimation(name string, dn *docNode) (any, error) {
	p := &scene.PathKeyFrameAnimation{Target: dn.Target}
	for _, f := range dn.Frames {
		easing, err := b.frameEasing(name, f.Easing)
		if err != nil {
			return nil, err
		}
		value, err := b.ref(name, "frame node", f.Node)
		if err != nil {
			return nil, err
		}
		if b.g.Node(value).Kind != scene.KindPath {
			return nil, fmt.Errorf("node %q: path frame must reference a Path node", name)
		}
		p.Frames = append(p.Frames, scene.PathFrame{Progress: f.Progress, Value: value, Easing: easing})
	}
	return p, nil
}

func (b *builder) buildExpressionAnimation(name string, dn *docNode) (any, error) {
	expr, err := scene.ParseExpression(dn.Expression)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", name, err)
	}
	p := &scene.ExpressionAnimation{Expression: expr.Text, Target: dn.Target}
	for _, param := range dn.Parameters {
		node, err := b.ref(name, "parameter "+param.Name, param.Node)
		if err != nil {
			return nil, err
		}
		p.ReferenceParameters = append(p.ReferenceParameters, scene.RefParameter{Name: param.Name, Node: node})
	}
	return p, nil
}

func (b *builder) buildPath(name string, dn *docNode) (any, error) {
	geo, err := b.ref(name, "geometry", dn.Geometry)
	if err != nil {
		return nil, err
	}
	if !b.g.Node(geo).Kind.IsCanvasGeometry() {
		return nil, fmt.Errorf("node %q: geometry must reference a canvas geometry", name)
	}
	return scene.NewPath(geo), nil
}

func (b *builder) buildCanvasCombination(name string, dn *docNode) (any, error) {
	a, err := b.ref(name, "a", dn.A)
	if err != nil {
		return nil, err
	}
	bb, err := b.ref(name, "b", dn.B)
	if err != nil {
		return nil, err
	}
	for _, operand := range []scene.NodeID{a, bb} {
		if !b.g.Node(operand).Kind.IsCanvasGeometry() {
			return nil, fmt.Errorf("node %q: combination operands must be canvas geometries", name)
		}
	}
	op := scene.CombineUnion
	if dn.Op != "" {
		op = scene.CombineKind(dn.Op)
	}
	switch op {
	case scene.CombineUnion, scene.CombineIntersect, scene.CombineXor, scene.CombineExclude:
	default:
		return nil, fmt.Errorf("node %q: unknown combine op %q", name, dn.Op)
	}
	return scene.NewCanvasCombination(a, bb, op), nil
}

func (b *builder) buildCanvasEllipse(dn *docNode) *scene.CanvasEllipse {
	p := &scene.CanvasEllipse{}
	if dn.Center != nil {
		p.Center = dn.Center.vec()
	}
	if dn.RadiusX != nil {
		p.RadiusX = *dn.RadiusX
	}
	if dn.RadiusY != nil {
		p.RadiusY = *dn.RadiusY
	}
	return p
}

func (b *builder) buildCanvasPath(name string, dn *docNode) (any, error) {
	p := &scene.CanvasPath{FillRule: scene.FillAlternate}
	if dn.FillRule != "" {
		switch fr := scene.FillRule(dn.FillRule); fr {
		case scene.FillAlternate, scene.FillWinding:
			p.FillRule = fr
		default:
			return nil, fmt.Errorf("node %q: unknown fill rule %q", name, dn.FillRule)
		}
	}
	for i, cmd := range dn.Commands {
		verb := scene.PathVerb(cmd.Verb)
		var want int
		switch verb {
		case scene.VerbMove, scene.VerbLine:
			want = 1
		case scene.VerbCubic:
			want = 3
		case scene.VerbClose:
			want = 0
		default:
			return nil, fmt.Errorf("node %q: command %d: unknown verb %q", name, i, cmd.Verb)
		}
		if len(cmd.Points) != want {
			return nil, fmt.Errorf("node %q: command %d: verb %q wants %d points, got %d", name, i, cmd.Verb, want, len(cmd.Points))
		}
		points := make([]scene.Vector2, len(cmd.Points))
		for j, pt := range cmd.Points {
			points[j] = pt.vec()
		}
		p.Commands = append(p.Commands, scene.PathCommand{Verb: verb, Points: points})
	}
	return p, nil
}

func (b *builder) buildCanvasRoundedRectangle(dn *docNode) *scene.CanvasRoundedRectangle {
	p := &scene.CanvasRoundedRectangle{}
	if dn.X != nil {
		p.X = *dn.X
	}
	if dn.Y != nil {
		p.Y = *dn.Y
	}
	if dn.W != nil {
		p.W = *dn.W
	}
	if dn.H != nil {
		p.H = *dn.H
	}
	if dn.RadiusX != nil {
		p.RadiusX = *dn.RadiusX
	}
	if dn.RadiusY != nil {
		p.RadiusY = *dn.RadiusY
	}
	return p
}
