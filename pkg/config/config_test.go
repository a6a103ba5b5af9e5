package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithNoPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clapval.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
test_timeout: 30s
parallelism: 4
extra_search_paths:
  - /opt/clap
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.TestTimeout)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.Equal(t, []string{"/opt/clap"}, cfg.ExtraSearchPaths)
	assert.Equal(t, Default().BlockSize, cfg.BlockSize)
}

func TestLoadRejectsNonPositiveOverridesByFallingBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clapval.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
parallelism: 0
block_size: -1
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Default().Parallelism, cfg.Parallelism)
	assert.Equal(t, Default().BlockSize, cfg.BlockSize)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/path/clapval.yaml")
	assert.Error(t, err)
}
