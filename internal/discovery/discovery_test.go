package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFindsBundlesInExtraPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "synth.clap"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.clap"), 0o755))

	d := New([]string{dir})
	bundles, err := d.Discover()
	require.NoError(t, err)

	require.Len(t, bundles, 1)
	assert.Equal(t, filepath.Join(dir, "synth.clap"), bundles[0].Path)
}

func TestDiscoverDeduplicatesOverlappingPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "synth.clap"), []byte("x"), 0o644))

	d := New([]string{dir, dir})
	bundles, err := d.Discover()
	require.NoError(t, err)

	assert.Len(t, bundles, 1)
}

func TestDiscoverIgnoresMissingDirectories(t *testing.T) {
	d := New([]string{filepath.Join(t.TempDir(), "does-not-exist")})
	bundles, err := d.Discover()
	require.NoError(t, err)
	assert.Empty(t, bundles)
}
