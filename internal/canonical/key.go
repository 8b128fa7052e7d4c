package canonical

import (
	"fmt"
	"strings"

	"scenegen/internal/scene"
)

// keyer computes structural content keys. Two nodes share a key iff
// substituting one for the other anywhere preserves scene semantics, so
// a key covers the node's own data plus, recursively, the keys of every
// node it references. Expression animations are the exception: they are
// keyed by normalized expression text alone.
type keyer struct {
	graph      *scene.Graph
	memo       map[scene.NodeID]string
	inProgress map[scene.NodeID]bool
}

func newKeyer(g *scene.Graph) *keyer {
	return &keyer{
		graph:      g,
		memo:       make(map[scene.NodeID]string),
		inProgress: make(map[scene.NodeID]bool),
	}
}

func (k *keyer) key(id scene.NodeID) string {
	if id == scene.NilNode {
		return "-"
	}
	if s, ok := k.memo[id]; ok {
		return s
	}
	if k.inProgress[id] {
		// The scene is assumed acyclic; if a cycle slips through, fall
		// back to identity so key computation still terminates.
		return fmt.Sprintf("@cycle:%d", id)
	}
	k.inProgress[id] = true
	s := k.compute(k.graph.Node(id))
	delete(k.inProgress, id)
	k.memo[id] = s
	return s
}

func (k *keyer) compute(n *scene.Node) string {
	var sb strings.Builder
	sb.WriteString(string(n.Kind))
	sb.WriteByte('|')

	switch p := n.Payload.(type) {
	case *scene.ContainerVisual:
		k.writeVisualBase(&sb, &p.VisualBase)
		k.writeRefList(&sb, "children", p.Children)
	case *scene.ShapeVisual:
		k.writeVisualBase(&sb, &p.VisualBase)
		fmt.Fprintf(&sb, "viewbox=%s;", k.key(p.ViewBox))
		k.writeRefList(&sb, "shapes", p.Shapes)
	case *scene.SpriteShape:
		k.writeShapeBase(&sb, &p.ShapeBase)
		fmt.Fprintf(&sb, "geo=%s;fill=%s;stroke=%s;", k.key(p.Geometry), k.key(p.FillBrush), k.key(p.StrokeBrush))
		fmt.Fprintf(&sb, "st=%v;ml=%v;caps=%s/%s/%s;do=%v;dash=%v;",
			p.StrokeThickness, p.StrokeMiterLimit,
			p.StrokeStartCap, p.StrokeEndCap, p.StrokeDashCap,
			p.StrokeDashOffset, p.StrokeDashArray)
	case *scene.ContainerShape:
		k.writeShapeBase(&sb, &p.ShapeBase)
		k.writeRefList(&sb, "shapes", p.Shapes)
	case *scene.ColorBrush:
		fmt.Fprintf(&sb, "color=%s;", p.Color.Hex())
		k.writeAnimatable(&sb, &p.Animatable)
	case *scene.LinearGradientBrush:
		fmt.Fprintf(&sb, "start=%v;end=%v;", p.StartPoint, p.EndPoint)
		k.writeRefList(&sb, "stops", p.Stops)
		k.writeAnimatable(&sb, &p.Animatable)
	case *scene.GradientStop:
		fmt.Fprintf(&sb, "offset=%v;color=%s;", p.Offset, p.Color.Hex())
		k.writeAnimatable(&sb, &p.Animatable)
	case *scene.EllipseGeometry:
		k.writeGeometryBase(&sb, &p.GeometryBase)
		fmt.Fprintf(&sb, "center=%v;radius=%v;", p.Center, p.Radius)
	case *scene.RectangleGeometry:
		k.writeGeometryBase(&sb, &p.GeometryBase)
		fmt.Fprintf(&sb, "offset=%v;size=%v;", p.Offset, p.Size)
	case *scene.RoundedRectangleGeometry:
		k.writeGeometryBase(&sb, &p.GeometryBase)
		fmt.Fprintf(&sb, "offset=%v;size=%v;corner=%v;", p.Offset, p.Size, p.CornerRadius)
	case *scene.PathGeometry:
		k.writeGeometryBase(&sb, &p.GeometryBase)
		fmt.Fprintf(&sb, "path=%s;", k.key(p.Path))
	case *scene.ViewBox:
		fmt.Fprintf(&sb, "size=%v;", p.Size)
		k.writeAnimatable(&sb, &p.Animatable)
	case *scene.InsetClip:
		fmt.Fprintf(&sb, "insets=%v/%v/%v/%v;", p.LeftInset, p.TopInset, p.RightInset, p.BottomInset)
		k.writeAnimatable(&sb, &p.Animatable)
	case *scene.LinearEasing:
	case *scene.CubicBezierEasing:
		fmt.Fprintf(&sb, "cp1=%v;cp2=%v;", p.ControlPoint1, p.ControlPoint2)
	case *scene.StepEasing:
		fmt.Fprintf(&sb, "steps=%d;final=%v;", p.StepCount, p.IsFinalStepSingleFrame)
	case *scene.ScalarKeyFrameAnimation:
		fmt.Fprintf(&sb, "target=%s;", p.Target)
		for _, f := range p.Frames {
			fmt.Fprintf(&sb, "kf(%v,%v,%q,%s);", f.Progress, f.Value, f.Expression, k.key(f.Easing))
		}
	case *scene.Vector2KeyFrameAnimation:
		fmt.Fprintf(&sb, "target=%s;", p.Target)
		for _, f := range p.Frames {
			fmt.Fprintf(&sb, "kf(%v,%v,%q,%s);", f.Progress, f.Value, f.Expression, k.key(f.Easing))
		}
	case *scene.Vector3KeyFrameAnimation:
		fmt.Fprintf(&sb, "target=%s;", p.Target)
		for _, f := range p.Frames {
			fmt.Fprintf(&sb, "kf(%v,%v,%q,%s);", f.Progress, f.Value, f.Expression, k.key(f.Easing))
		}
	case *scene.ColorKeyFrameAnimation:
		fmt.Fprintf(&sb, "target=%s;", p.Target)
		for _, f := range p.Frames {
			fmt.Fprintf(&sb, "kf(%v,%s,%s);", f.Progress, f.Value.Hex(), k.key(f.Easing))
		}
	case *scene.PathKeyFrameAnimation:
		fmt.Fprintf(&sb, "target=%s;", p.Target)
		for _, f := range p.Frames {
			fmt.Fprintf(&sb, "kf(%v,%s,%s);", f.Progress, k.key(f.Value), k.key(f.Easing))
		}
	case *scene.ExpressionAnimation:
		// Keyed by normalized expression text only.
		fmt.Fprintf(&sb, "expr=%s;", p.Expression)
	case *scene.Path:
		fmt.Fprintf(&sb, "geo=%s;", k.key(p.Geometry))
	case *scene.CanvasCombination:
		fmt.Fprintf(&sb, "a=%s;b=%s;op=%s;", k.key(p.A), k.key(p.B), p.Op)
	case *scene.CanvasEllipse:
		fmt.Fprintf(&sb, "center=%v;rx=%v;ry=%v;", p.Center, p.RadiusX, p.RadiusY)
	case *scene.CanvasPath:
		fmt.Fprintf(&sb, "fill=%s;", p.FillRule)
		for _, c := range p.Commands {
			fmt.Fprintf(&sb, "%s%v;", c.Verb, c.Points)
		}
	case *scene.CanvasRoundedRectangle:
		fmt.Fprintf(&sb, "rect=%v/%v/%v/%v;rx=%v;ry=%v;", p.X, p.Y, p.W, p.H, p.RadiusX, p.RadiusY)
	default:
		panic(fmt.Sprintf("canonical: unknown payload %T for kind %q", n.Payload, n.Kind))
	}

	return sb.String()
}

func (k *keyer) writeRefList(sb *strings.Builder, label string, ids []scene.NodeID) {
	fmt.Fprintf(sb, "%s[", label)
	for _, id := range ids {
		sb.WriteString(k.key(id))
		sb.WriteByte(',')
	}
	sb.WriteString("];")
}

func (k *keyer) writeVisualBase(sb *strings.Builder, b *scene.VisualBase) {
	fmt.Fprintf(sb, "offset=%v;center=%v;rot=%v;opacity=%v;scale=%v;", b.Offset, b.CenterPoint, b.RotationAngle, b.Opacity, b.Scale)
	if b.Size != nil {
		fmt.Fprintf(sb, "size=%v;", *b.Size)
	}
	fmt.Fprintf(sb, "clip=%s;", k.key(b.Clip))
	k.writeAnimatable(sb, &b.Animatable)
}

func (k *keyer) writeShapeBase(sb *strings.Builder, b *scene.ShapeBase) {
	fmt.Fprintf(sb, "offset=%v;center=%v;rot=%v;scale=%v;", b.Offset, b.CenterPoint, b.RotationAngle, b.Scale)
	k.writeAnimatable(sb, &b.Animatable)
}

func (k *keyer) writeGeometryBase(sb *strings.Builder, b *scene.GeometryBase) {
	fmt.Fprintf(sb, "trim=%v/%v/%v;", b.TrimStart, b.TrimEnd, b.TrimOffset)
	k.writeAnimatable(sb, &b.Animatable)
}

func (k *keyer) writeAnimatable(sb *strings.Builder, a *scene.Animatable) {
	for _, p := range a.Properties {
		fmt.Fprintf(sb, "prop(%s,%s,%v,%v);", p.Name, p.Kind, p.Scalar, p.Vector2)
	}
	k.writeAnimators(sb, a.Animators)
}

func (k *keyer) writeAnimators(sb *strings.Builder, animators []scene.Animator) {
	for _, a := range animators {
		fmt.Fprintf(sb, "anim(%s,%s", a.TargetProperty, k.key(a.Animation))
		if a.Controller != nil {
			fmt.Fprintf(sb, ",ctrl(pause=%v", a.Controller.Pause)
			k.writeAnimators(sb, a.Controller.Animators)
			sb.WriteString(")")
		}
		sb.WriteString(");")
	}
}
