package codegen

import (
	"time"

	"scenegen/internal/canonical"
	"scenegen/internal/scene"
)

// Options control one compilation run.
type Options struct {
	// ClassName is the name of the generated class.
	ClassName string

	// Size is the scene's nominal size, forwarded to the class shell.
	Size scene.Vector2

	// Duration is the shared animation duration. It is emitted once as
	// a tick constant and referenced by every animation.
	Duration time.Duration

	// Comments enables the descriptive ancestor-chain comments above
	// factory methods. Purely cosmetic; never affects behavior.
	Comments bool
}

// singletonField is the one process-wide expression-animation field
// reused by every unique expression animation.
const singletonField = "_reusableExpressionAnimation"

// durationConst names the shared duration tick constant.
const durationConst = "c_durationTicks"

// context carries all per-run mutable state. Nothing is stored on the
// shared scene or canonical structures, so repeated or concurrent runs
// over the same graph cannot interfere.
type context struct {
	view   *canonical.View
	target Target
	opts   Options

	nodes    map[*canonical.CanonicalNode]*CompiledNode
	retained []*CompiledNode

	bindingCount map[*canonical.CanonicalNode]int
	bindingOwner map[*canonical.CanonicalNode]*canonical.CanonicalNode

	// resolved memoizes (caller, callee) pairs that already produced a
	// non-cached resolution. It grows monotonically during the single
	// emission pass.
	resolved map[resolvedPair]bool

	b *Builder
}

type resolvedPair struct {
	caller *CompiledNode
	callee *CompiledNode
}

// Compile bakes one canonical scene graph into one self-contained unit
// of source text for the target language. Output is deterministic:
// identical inputs and options produce byte-identical text. On any
// internal fault the whole run is aborted and no partial output is
// returned.
func Compile(view *canonical.View, target Target, opts Options) (string, error) {
	if opts.ClassName == "" {
		opts.ClassName = "AnimatedVisual"
	}
	ctx := &context{
		view:     view,
		target:   target,
		opts:     opts,
		nodes:    make(map[*canonical.CanonicalNode]*CompiledNode),
		resolved: make(map[resolvedPair]bool),
		b:        NewBuilder(),
	}
	if err := ctx.annotate(); err != nil {
		return "", err
	}
	if err := ctx.assemble(); err != nil {
		return "", err
	}
	return ctx.b.String(), nil
}
