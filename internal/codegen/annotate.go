package codegen

import (
	"fmt"
	"sort"
	"strings"

	"scenegen/internal/canonical"
	"scenegen/internal/scene"
)

// CompiledNode is the annotator's output for one retained canonical
// node. Fields are assigned once, before any text is emitted, and are
// scoped to a single compilation run.
type CompiledNode struct {
	Canonical *canonical.CanonicalNode

	// Name is the globally unique identifier used for the factory
	// method; the cache field name is derived from it.
	Name string

	// RequiresStorage is true when more than one filtered use site
	// needs the same instance, or when the root is referenced anywhere.
	RequiresStorage bool

	// InlineExpression, when non-empty, is the construction expression
	// substituted at every use site. Such a node never gets a factory
	// method and never requires storage.
	InlineExpression string
}

// FieldName returns the cache field identifier for a stored node.
func (c *CompiledNode) FieldName() string {
	return "_" + strings.ToLower(c.Name[:1]) + c.Name[1:]
}

// RootName is the fixed name of the graph root across all runs.
const RootName = "Root"

// annotate reduces the canonical view to the set of retained compiled
// nodes. This phase is pure data reduction: it cannot fail on a valid
// canonical graph, and an unknown variant is an internal fault caught
// later at dispatch.
func (ctx *context) annotate() error {
	// 1. Identify animation binding sites: how often each canonical
	// animation is bound, and the node each unique expression animation
	// is declared on.
	ctx.bindingCount = make(map[*canonical.CanonicalNode]int)
	ctx.bindingOwner = make(map[*canonical.CanonicalNode]*canonical.CanonicalNode)
	for _, c := range ctx.view.Nodes() {
		ctx.countBindings(c, scene.AnimatorsOf(c.Rep))
	}

	// 2. Build compiled nodes for every canonical node except unique
	// expression animations, whose construction is folded into their
	// owner's initialization by the binder.
	for _, c := range ctx.view.Nodes() {
		if ctx.isUniqueExpression(c) {
			continue
		}
		ctx.nodes[c] = &CompiledNode{Canonical: c}
	}

	// 3. Storage policy. The root's implicit use by the entry point does
	// not count, but any real inbound reference forces root storage.
	root := ctx.view.Root()
	for c, cn := range ctx.nodes {
		filtered := ctx.filteredInboundCount(c)
		if c == root {
			cn.RequiresStorage = filtered >= 1
		} else {
			cn.RequiresStorage = filtered > 1
		}
	}

	// 4. Names.
	ctx.assignNames()

	// 5. Inline single-use path wrappers. The wrapper is compiled right
	// now: its geometry reference is resolved immediately, which may
	// record the (wrapper, geometry) pair in the resolver memo.
	for _, c := range ctx.view.Nodes() {
		cn := ctx.nodes[c]
		if cn == nil || c.Kind() != scene.KindPath {
			continue
		}
		if ctx.filteredInboundCount(c) > 1 {
			continue
		}
		p := c.Rep.Payload.(*scene.Path)
		geoRef, err := ctx.resolveReference(cn, ctx.compiledFor(p.Geometry))
		if err != nil {
			return err
		}
		s := ctx.target.Strings
		cn.RequiresStorage = false
		cn.InlineExpression = fmt.Sprintf("%sCompositionPath(%s)", s.New(), geoRef)
	}

	// 6. Emission order: every retained node that gets a factory method,
	// in ascending lexicographic name order.
	for _, c := range ctx.view.Nodes() {
		cn := ctx.nodes[c]
		if cn == nil || cn.InlineExpression != "" {
			continue
		}
		ctx.retained = append(ctx.retained, cn)
	}
	sort.Slice(ctx.retained, func(i, j int) bool {
		return ctx.retained[i].Name < ctx.retained[j].Name
	})
	return nil
}

func (ctx *context) countBindings(owner *canonical.CanonicalNode, animators []scene.Animator) {
	for _, a := range animators {
		if anim := ctx.view.Canonical(a.Animation); anim != nil {
			ctx.bindingCount[anim]++
			ctx.bindingOwner[anim] = owner
		}
		if a.Controller != nil {
			ctx.countBindings(owner, a.Controller.Animators)
		}
	}
}

// isUniqueExpression reports whether the animation is an expression
// animation with exactly one binding site in the whole graph. Such
// animations are emitted through the reusable singleton field instead
// of a standalone factory.
func (ctx *context) isUniqueExpression(c *canonical.CanonicalNode) bool {
	return c.Kind() == scene.KindExpressionAnimation && ctx.bindingCount[c] <= 1
}

// filteredInboundCount counts inbound references, excluding a unique
// expression animation's reference back to the node it is declared on:
// that reference is part of the owner's own initialization, not a
// shared use.
func (ctx *context) filteredInboundCount(c *canonical.CanonicalNode) int {
	n := 0
	for _, from := range c.Inbound {
		if ctx.isUniqueExpression(from) && ctx.bindingOwner[from] == c {
			continue
		}
		n++
	}
	return n
}

func (ctx *context) compiledFor(id scene.NodeID) *CompiledNode {
	return ctx.nodes[ctx.view.Canonical(id)]
}

// assignNames derives a base name per retained node, then disambiguates
// clashes with zero-padded ordinals in construction order.
func (ctx *context) assignNames() {
	root := ctx.view.Root()
	byBase := make(map[string][]*CompiledNode)
	var bases []string
	for _, c := range ctx.view.Nodes() {
		cn := ctx.nodes[c]
		if cn == nil {
			continue
		}
		if c == root {
			cn.Name = RootName
			continue
		}
		base := baseName(c)
		if len(byBase[base]) == 0 {
			bases = append(bases, base)
		}
		byBase[base] = append(byBase[base], cn)
	}
	for _, base := range bases {
		group := byBase[base]
		if len(group) == 1 {
			group[0].Name = base
			continue
		}
		for i, cn := range group {
			cn.Name = fmt.Sprintf("%s_%03d", base, i)
		}
	}
}

// baseName derives a readable name from the variant and its salient
// content. The common "Composition" type-name prefix is stripped.
func baseName(c *canonical.CanonicalNode) string {
	typeName := strings.TrimPrefix(c.Kind().TypeName(), "Composition")
	switch p := c.Rep.Payload.(type) {
	case *scene.ColorBrush:
		return typeName + "_" + p.Color.Name()
	case *scene.GradientStop:
		return "GradientStop_" + p.Color.Name()
	case *scene.ScalarKeyFrameAnimation:
		if len(p.Frames) > 0 {
			first := p.Frames[0]
			last := p.Frames[len(p.Frames)-1]
			if first.Expression == "" && last.Expression == "" {
				return typeName + "_" + numberToken(first.Value) + "_to_" + numberToken(last.Value)
			}
		}
		return typeName
	case *scene.CanvasCombination, *scene.CanvasEllipse, *scene.CanvasPath, *scene.CanvasRoundedRectangle:
		return "Geometry"
	}
	return typeName
}

// numberToken formats a decimal for use inside an identifier: "p" for
// the decimal point and "m" for a minus sign, so 0.5 becomes 0p5 and
// -1.5 becomes m1p5.
func numberToken(v float64) string {
	s := fmt.Sprintf("%g", v)
	s = strings.ReplaceAll(s, "-", "m")
	s = strings.ReplaceAll(s, ".", "p")
	s = strings.ReplaceAll(s, "+", "")
	return s
}
