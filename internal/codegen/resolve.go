package codegen

// resolveReference compiles a reference from caller to callee into the
// expression text the caller's method body uses.
//
// Factory methods are emitted in name order, not construction order, so
// a caller may textually precede or follow a callee it references. The
// decision therefore exploits runtime build order: construction
// proceeds depth-first from the root, and a callee whose
// construction-order index is at or before the caller's has
// unconditionally finished constructing (and populated its cache field)
// by the time the caller's body runs, regardless of where either method
// appears in the source text.
func (ctx *context) resolveReference(caller, callee *CompiledNode) (string, error) {
	if callee == nil {
		return "", faultf("reference to a node outside the canonical graph")
	}

	// 1. Inline nodes substitute their construction expression at every
	// use site; any ordering is legal.
	if callee.InlineExpression != "" {
		return callee.InlineExpression, nil
	}

	// 2. Callee already constructed at runtime: read the cache field.
	if caller.Canonical.Position >= callee.Canonical.Position {
		if !callee.RequiresStorage {
			return "", faultf("cached-field read of %s from %s but the target has no storage", callee.Name, caller.Name)
		}
		return callee.FieldName(), nil
	}

	pair := resolvedPair{caller: caller, callee: callee}

	// 3. A previous resolution of this pair already executed the nested
	// call and populated storage.
	if callee.RequiresStorage && ctx.resolved[pair] {
		return callee.FieldName(), nil
	}

	// 4. Single occurrence: invoke the factory directly. A duplicate
	// non-cached resolution would construct a side-effecting object
	// twice and must abort the run.
	if ctx.resolved[pair] {
		return "", faultf("duplicate non-cached resolution of %s from %s", callee.Name, caller.Name)
	}
	ctx.resolved[pair] = true
	return callee.Name + "()", nil
}
