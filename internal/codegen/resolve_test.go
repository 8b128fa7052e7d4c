package codegen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegen/internal/canonical"
)

func resolverContext() *context {
	return &context{
		target:   fakeTarget(),
		resolved: make(map[resolvedPair]bool),
		b:        NewBuilder(),
	}
}

func compiledAt(name string, position int, storage bool) *CompiledNode {
	return &CompiledNode{
		Canonical:       &canonical.CanonicalNode{Position: position},
		Name:            name,
		RequiresStorage: storage,
	}
}

func TestResolveReference(t *testing.T) {
	t.Run("missing callee is a fault", func(t *testing.T) {
		ctx := resolverContext()
		caller := compiledAt("Caller", 1, false)
		_, err := ctx.resolveReference(caller, nil)
		var fault *Fault
		require.ErrorAs(t, err, &fault)
	})

	t.Run("inline expression wins over everything", func(t *testing.T) {
		ctx := resolverContext()
		caller := compiledAt("Caller", 5, false)
		callee := compiledAt("Wrapper", 1, false)
		callee.InlineExpression = "new CompositionPath(Geometry())"

		got, err := ctx.resolveReference(caller, callee)
		require.NoError(t, err)
		assert.Equal(t, "new CompositionPath(Geometry())", got)
	})

	t.Run("already constructed callee reads the field", func(t *testing.T) {
		ctx := resolverContext()
		caller := compiledAt("Caller", 5, false)
		callee := compiledAt("Brush", 2, true)

		got, err := ctx.resolveReference(caller, callee)
		require.NoError(t, err)
		assert.Equal(t, "_brush", got)
	})

	t.Run("field read without storage is a fault", func(t *testing.T) {
		ctx := resolverContext()
		caller := compiledAt("Caller", 5, false)
		callee := compiledAt("Brush", 2, false)

		_, err := ctx.resolveReference(caller, callee)
		var fault *Fault
		require.ErrorAs(t, err, &fault)
		assert.Contains(t, err.Error(), "no storage")
	})

	t.Run("first forward resolution calls the factory, repeats read the field", func(t *testing.T) {
		ctx := resolverContext()
		caller := compiledAt("Caller", 1, false)
		callee := compiledAt("Brush", 4, true)

		first, err := ctx.resolveReference(caller, callee)
		require.NoError(t, err)
		assert.Equal(t, "Brush()", first)

		second, err := ctx.resolveReference(caller, callee)
		require.NoError(t, err)
		assert.Equal(t, "_brush", second)
	})

	t.Run("duplicate resolution of an unstored callee is a fault", func(t *testing.T) {
		ctx := resolverContext()
		caller := compiledAt("Caller", 1, false)
		callee := compiledAt("Geometry", 4, false)

		first, err := ctx.resolveReference(caller, callee)
		require.NoError(t, err)
		assert.Equal(t, "Geometry()", first)

		_, err = ctx.resolveReference(caller, callee)
		var fault *Fault
		require.ErrorAs(t, err, &fault)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("distinct callers resolve the same stored callee independently", func(t *testing.T) {
		ctx := resolverContext()
		callerA := compiledAt("CallerA", 1, false)
		callerB := compiledAt("CallerB", 6, false)
		callee := compiledAt("Brush", 4, true)

		first, err := ctx.resolveReference(callerA, callee)
		require.NoError(t, err)
		assert.Equal(t, "Brush()", first)

		// B is constructed after the callee, so it reads the field even
		// though its own pair was never recorded.
		second, err := ctx.resolveReference(callerB, callee)
		require.NoError(t, err)
		assert.Equal(t, "_brush", second)
	})
}

func TestFaultError(t *testing.T) {
	err := faultf("bad variant %q", "x")
	var fault *Fault
	require.True(t, errors.As(err, &fault))
	assert.Contains(t, err.Error(), "bad variant")
}
