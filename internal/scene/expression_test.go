package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression(t *testing.T) {
	t.Run("normalizes equivalent spellings", func(t *testing.T) {
		a, err := ParseExpression("my.Position.X   +  10")
		require.NoError(t, err)
		b, err := ParseExpression("my.Position.X + 10")
		require.NoError(t, err)
		assert.Equal(t, a.Text, b.Text)
	})

	t.Run("collects identifiers sorted and deduplicated", func(t *testing.T) {
		e, err := ParseExpression("visual.Offset.X * progress + visual.Offset.Y")
		require.NoError(t, err)
		assert.Equal(t, []string{"progress", "visual"}, e.Identifiers)
	})

	t.Run("rejects malformed expressions", func(t *testing.T) {
		_, err := ParseExpression("1 +")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid animation expression")
	})
}

func TestColorName(t *testing.T) {
	assert.Equal(t, "Red", Color{255, 255, 0, 0}.Name())
	assert.Equal(t, "Transparent", Color{}.Name())
	assert.Equal(t, "FF102030", Color{255, 16, 32, 48}.Name())
}
