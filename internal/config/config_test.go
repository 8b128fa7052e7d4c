package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults when no file is given", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "csharp", cfg.Output.Language)
		assert.True(t, cfg.Output.Comments)
		assert.True(t, cfg.Cache.Enabled)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
output:
  language: cpp
  class_name: MyScene
cache:
  enabled: false
`), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "cpp", cfg.Output.Language)
		assert.Equal(t, "MyScene", cfg.Output.ClassName)
		assert.False(t, cfg.Cache.Enabled)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("SCENEGEN_LANGUAGE", "cpp")
		t.Setenv("SCENEGEN_CACHE", "/tmp/custom.db")

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "cpp", cfg.Output.Language)
		assert.Equal(t, "/tmp/custom.db", cfg.Cache.Path)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
