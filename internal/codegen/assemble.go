package codegen

import "scenegen/internal/scene"

// assemble writes the complete compilation unit: delegated preamble and
// class opening, the duration constant, cache fields, the reusable
// expression-animation field, every factory method in ascending name
// order, and the delegated closing boilerplate.
func (ctx *context) assemble() error {
	s := ctx.target.Strings

	requiresCanvas := false
	for _, c := range ctx.view.Nodes() {
		if c.Kind().IsCanvasGeometry() || c.Kind() == scene.KindPath {
			requiresCanvas = true
			break
		}
	}

	ctx.target.Shell.WritePreamble(ctx.b, requiresCanvas)
	ctx.target.Shell.WriteClassStart(ctx.b, ctx.opts.ClassName, ctx.opts.Size, ctx.opts.Duration)

	// Duration is shared by every animation, expressed once in ticks.
	ctx.b.WriteLine(s.ConstInt64(durationConst, ctx.opts.Duration.Nanoseconds()/100))
	ctx.b.BlankLine()

	for _, cn := range ctx.retained {
		if cn.RequiresStorage {
			ctx.b.WriteLine(s.FieldDecl(cn.Canonical.Kind().TypeName(), cn.FieldName()))
		}
	}
	ctx.b.WriteLine(s.FieldDecl("ExpressionAnimation", singletonField))
	ctx.b.BlankLine()

	for _, cn := range ctx.retained {
		if err := ctx.writeFactory(cn); err != nil {
			return err
		}
		ctx.b.BlankLine()
	}

	ctx.target.Shell.WriteClassEnd(ctx.b, RootName+"()", singletonField)
	return nil
}
