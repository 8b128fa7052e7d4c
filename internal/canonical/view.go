package canonical

import (
	"fmt"

	"scenegen/internal/scene"
)

// CanonicalNode is one canonical representative of a group of
// structurally-interchangeable scene nodes, together with everything the
// code generator needs to know about it: group size, the depth-first
// construction-order index, and its inbound references.
type CanonicalNode struct {
	// Rep is the node chosen to stand for the whole group: the member
	// first seen in document order.
	Rep *scene.Node

	// GroupSize is the number of scene nodes collapsed into this one.
	GroupSize int

	// Position is the construction-order index: the sequence in which
	// canonical nodes are first constructed by a depth-first build from
	// the root at runtime. The root is always position 0.
	Position int

	// Inbound lists the canonical nodes that reference this one, one
	// entry per referencing edge. A node referencing this one twice
	// appears twice.
	Inbound []*CanonicalNode
}

// Kind returns the representative's variant.
func (c *CanonicalNode) Kind() scene.Kind {
	return c.Rep.Kind
}

// Referrers returns the distinct inbound nodes in position order.
func (c *CanonicalNode) Referrers() []*CanonicalNode {
	var out []*CanonicalNode
	seen := make(map[*CanonicalNode]bool, len(c.Inbound))
	for _, in := range c.Inbound {
		if !seen[in] {
			seen[in] = true
			out = append(out, in)
		}
	}
	return out
}

// View is the read-only canonical graph consumed by the code generator.
// It covers the nodes reachable from the root, collapsed into canonical
// groups, ordered by construction-order index.
type View struct {
	graph *scene.Graph
	nodes []*CanonicalNode
	byID  map[scene.NodeID]*CanonicalNode
	root  *CanonicalNode
}

// Build computes the canonical view of a scene graph.
func Build(g *scene.Graph) (*View, error) {
	if g.Root() == scene.NilNode {
		return nil, fmt.Errorf("scene has no root visual")
	}

	// 1. Compute structural keys and group members by key.
	ker := newKeyer(g)
	groupOf := make(map[string]*CanonicalNode)
	byID := make(map[scene.NodeID]*CanonicalNode)
	for id := scene.NodeID(0); int(id) < g.Len(); id++ {
		key := ker.key(id)
		grp, ok := groupOf[key]
		if !ok {
			grp = &CanonicalNode{Rep: g.Node(id), Position: -1}
			groupOf[key] = grp
		}
		grp.GroupSize++
		byID[id] = grp
	}

	v := &View{graph: g, byID: byID, root: byID[g.Root()]}

	// 2. Assign construction-order indices by pre-order depth-first walk
	// from the root over canonical representatives.
	v.assignPositions(v.root)

	// 3. Record inbound reference edges between reachable canonical
	// nodes, one entry per referencing occurrence.
	for _, c := range v.nodes {
		for _, ref := range g.OutRefs(c.Rep.ID) {
			callee := byID[ref]
			if callee.Position < 0 {
				continue
			}
			callee.Inbound = append(callee.Inbound, c)
		}
	}

	return v, nil
}

func (v *View) assignPositions(c *CanonicalNode) {
	if c.Position >= 0 {
		return
	}
	c.Position = len(v.nodes)
	v.nodes = append(v.nodes, c)
	for _, ref := range v.graph.OutRefs(c.Rep.ID) {
		v.assignPositions(v.byID[ref])
	}
}

// Nodes returns every reachable canonical node in ascending
// construction-order index.
func (v *View) Nodes() []*CanonicalNode {
	return v.nodes
}

// Canonical maps any scene node to its canonical node, or nil when the
// node is unreachable from the root.
func (v *View) Canonical(id scene.NodeID) *CanonicalNode {
	c := v.byID[id]
	if c == nil || c.Position < 0 {
		return nil
	}
	return c
}

// Root returns the canonical root visual.
func (v *View) Root() *CanonicalNode {
	return v.root
}

// Graph returns the underlying scene arena.
func (v *View) Graph() *scene.Graph {
	return v.graph
}
