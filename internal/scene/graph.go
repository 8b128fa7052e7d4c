package scene

import "fmt"

// Graph is the arena owning every node of one scene. Nodes are addressed
// by NodeID; the graph's edges are ID values held inside payloads.
type Graph struct {
	nodes []*Node
	root  NodeID
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{root: NilNode}
}

// Add appends a node and returns its ID. The payload's dynamic type must
// match the kind; emitters dispatch on Kind and assert the payload.
func (g *Graph) Add(kind Kind, payload any) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &Node{ID: id, Kind: kind, Payload: payload})
	return id
}

// Node returns the node for an ID.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// Len returns the number of nodes in the arena.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// SetRoot marks the root visual of the scene.
func (g *Graph) SetRoot(id NodeID) {
	g.root = id
}

// Root returns the root visual's ID, or NilNode if unset.
func (g *Graph) Root() NodeID {
	return g.root
}

// AnimatorsOf returns a node's animation bindings in declaration order,
// or nil for kinds that cannot be animated.
func AnimatorsOf(n *Node) []Animator {
	switch p := n.Payload.(type) {
	case *ContainerVisual:
		return p.Animators
	case *ShapeVisual:
		return p.Animators
	case *SpriteShape:
		return p.Animators
	case *ContainerShape:
		return p.Animators
	case *ColorBrush:
		return p.Animators
	case *LinearGradientBrush:
		return p.Animators
	case *GradientStop:
		return p.Animators
	case *EllipseGeometry:
		return p.Animators
	case *RectangleGeometry:
		return p.Animators
	case *RoundedRectangleGeometry:
		return p.Animators
	case *PathGeometry:
		return p.Animators
	case *ViewBox:
		return p.Animators
	case *InsetClip:
		return p.Animators
	}
	return nil
}

// PropertiesOf returns a node's implicit property-bag entries in
// declaration order, or nil for kinds without a bag.
func PropertiesOf(n *Node) []CustomProperty {
	switch p := n.Payload.(type) {
	case *ContainerVisual:
		return p.Properties
	case *ShapeVisual:
		return p.Properties
	case *SpriteShape:
		return p.Properties
	case *ContainerShape:
		return p.Properties
	case *ColorBrush:
		return p.Properties
	case *LinearGradientBrush:
		return p.Properties
	case *GradientStop:
		return p.Properties
	case *EllipseGeometry:
		return p.Properties
	case *RectangleGeometry:
		return p.Properties
	case *RoundedRectangleGeometry:
		return p.Properties
	case *PathGeometry:
		return p.Properties
	case *ViewBox:
		return p.Properties
	case *InsetClip:
		return p.Properties
	}
	return nil
}

// OutRefs returns the IDs a node references, in the order the node's
// factory will touch them at runtime. Canonicalization relies on this
// order for the depth-first construction-order index, so it must stay
// aligned with the emitters.
func (g *Graph) OutRefs(id NodeID) []NodeID {
	n := g.Node(id)
	var out []NodeID
	add := func(ids ...NodeID) {
		for _, r := range ids {
			if r != NilNode {
				out = append(out, r)
			}
		}
	}

	switch p := n.Payload.(type) {
	case *ContainerVisual:
		add(p.Clip)
		add(p.Children...)
	case *ShapeVisual:
		add(p.Clip)
		add(p.ViewBox)
		add(p.Shapes...)
	case *SpriteShape:
		add(p.Geometry, p.FillBrush, p.StrokeBrush)
	case *ContainerShape:
		add(p.Shapes...)
	case *ColorBrush:
		// No object references beyond animators.
	case *LinearGradientBrush:
		add(p.Stops...)
	case *GradientStop:
	case *EllipseGeometry:
	case *RectangleGeometry:
	case *RoundedRectangleGeometry:
	case *PathGeometry:
		add(p.Path)
	case *ViewBox:
	case *InsetClip:
	case *LinearEasing:
	case *CubicBezierEasing:
	case *StepEasing:
	case *ScalarKeyFrameAnimation:
		for _, f := range p.Frames {
			add(f.Easing)
		}
	case *Vector2KeyFrameAnimation:
		for _, f := range p.Frames {
			add(f.Easing)
		}
	case *Vector3KeyFrameAnimation:
		for _, f := range p.Frames {
			add(f.Easing)
		}
	case *ColorKeyFrameAnimation:
		for _, f := range p.Frames {
			add(f.Easing)
		}
	case *PathKeyFrameAnimation:
		for _, f := range p.Frames {
			add(f.Value, f.Easing)
		}
	case *ExpressionAnimation:
		for _, rp := range p.ReferenceParameters {
			add(rp.Node)
		}
	case *Path:
		add(p.Geometry)
	case *CanvasCombination:
		add(p.A, p.B)
	case *CanvasEllipse:
	case *CanvasPath:
	case *CanvasRoundedRectangle:
	default:
		panic(fmt.Sprintf("scene: unknown payload %T for kind %q", n.Payload, n.Kind))
	}

	out = appendAnimatorRefs(out, AnimatorsOf(n))
	return out
}

func appendAnimatorRefs(out []NodeID, animators []Animator) []NodeID {
	for _, a := range animators {
		if a.Animation != NilNode {
			out = append(out, a.Animation)
		}
		if a.Controller != nil {
			out = appendAnimatorRefs(out, a.Controller.Animators)
		}
	}
	return out
}
