package codegen

import (
	"fmt"

	"scenegen/internal/scene"
)

// emitScope tracks per-scope emission state: whether the controller
// local has been declared yet in the current method body.
type emitScope struct {
	controllerDeclared bool
}

// writeAnimationBindings emits property-animation start code for every
// binding of the node being compiled, in declaration order. cn is the
// node whose factory method is being emitted (the resolver caller);
// localName is the binding target, "result" at the top and the
// controller local inside controller recursion.
func (ctx *context) writeAnimationBindings(cn *CompiledNode, localName string, animators []scene.Animator, sc *emitScope) error {
	s := ctx.target.Strings
	d := s.Deref()
	for _, a := range animators {
		anim := ctx.view.Canonical(a.Animation)
		if anim == nil {
			return faultf("animator on %s binds an animation outside the canonical graph", cn.Name)
		}

		if ctx.isUniqueExpression(anim) {
			// A singly-used expression animation has no factory of its
			// own: reset the process-wide singleton, rebind it, start it.
			p := anim.Rep.Payload.(*scene.ExpressionAnimation)
			ctx.b.WriteLine(fmt.Sprintf("%s%sClearAllParameters();", singletonField, d))
			ctx.setProp(singletonField, "Expression", s.String(p.Expression))
			if p.Target != "" {
				ctx.setProp(singletonField, "Target", s.String(p.Target))
			}
			for _, rp := range p.ReferenceParameters {
				ref := localName
				if ctx.view.Canonical(rp.Node) != cn.Canonical {
					resolved, err := ctx.resolveReference(cn, ctx.compiledFor(rp.Node))
					if err != nil {
						return err
					}
					ref = resolved
				}
				ctx.callOn(singletonField, "SetReferenceParameter", s.String(rp.Name), ref)
			}
			ctx.callOn(localName, "StartAnimation", s.String(a.TargetProperty), singletonField)
		} else {
			ref, err := ctx.resolveReference(cn, ctx.nodes[anim])
			if err != nil {
				return err
			}
			ctx.callOn(localName, "StartAnimation", s.String(a.TargetProperty), ref)
		}

		if a.Controller != nil {
			// One controller local per emitting scope, reused across
			// bindings within the same method body.
			decl := "controller"
			if !sc.controllerDeclared {
				decl = s.Var() + "controller"
				sc.controllerDeclared = true
			}
			ctx.b.WriteLine(fmt.Sprintf("%s = %s%sTryGetAnimationController(%s);", decl, localName, d, s.String(a.TargetProperty)))
			if a.Controller.Pause {
				ctx.callOn("controller", "Pause")
			}
			// Controllers are never controlled themselves in current
			// data, but the contract does not forbid deeper nesting, so
			// recurse rather than assume depth 1.
			if err := ctx.writeAnimationBindings(cn, "controller", a.Controller.Animators, sc); err != nil {
				return err
			}
		}
	}
	return nil
}
