// Package discovery resolves the set of installed CLAP bundle paths the
// `list` subcommand enumerates, via an injectable interface so a fake can
// stand in for filesystem scanning.
package discovery

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Bundle is one discovered plugin binary on disk, prior to being loaded.
type Bundle struct {
	Path string
}

// Discoverer resolves the plugin bundles a `list` call should consider. Kept as an interface so the default OS-scanning
// implementation below is swappable in tests.
type Discoverer interface {
	Discover() ([]Bundle, error)
}

// OSDiscoverer scans the platform's conventional CLAP search directories
// plus any caller-supplied extra paths and the CLAP_PATH environment
// variable (colon-separated, matching the ABI's own convention).
type OSDiscoverer struct {
	ExtraPaths []string
}

// New builds the default discoverer, folding in config-supplied extra
// search paths.
func New(extraPaths []string) *OSDiscoverer {
	return &OSDiscoverer{ExtraPaths: extraPaths}
}

// Discover walks every search directory non-recursively and returns every
// file with the platform's CLAP bundle extension.
func (d *OSDiscoverer) Discover() ([]Bundle, error) {
	var bundles []Bundle
	seen := make(map[string]bool)

	for _, dir := range d.searchDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), bundleExtension) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if seen[path] {
				continue
			}
			seen[path] = true
			bundles = append(bundles, Bundle{Path: path})
		}
	}
	return bundles, nil
}

func (d *OSDiscoverer) searchDirs() []string {
	dirs := append([]string{}, standardSearchDirs()...)
	dirs = append(dirs, d.ExtraPaths...)
	if env := os.Getenv("CLAP_PATH"); env != "" {
		dirs = append(dirs, strings.Split(env, string(os.PathListSeparator))...)
	}
	return dirs
}

// standardSearchDirs returns the plugin ABI's conventional per-platform
// install locations.
func standardSearchDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return []string{
			filepath.Join(home, "Library/Audio/Plug-Ins/CLAP"),
			"/Library/Audio/Plug-Ins/CLAP",
		}
	case "windows":
		return []string{
			filepath.Join(os.Getenv("COMMONPROGRAMFILES"), "CLAP"),
			filepath.Join(os.Getenv("LOCALAPPDATA"), "Programs", "Common", "CLAP"),
		}
	default:
		return []string{
			filepath.Join(home, ".clap"),
			"/usr/lib/clap",
			"/usr/local/lib/clap",
		}
	}
}

// bundleExtension is the CLAP bundle's file extension, the same on every
// platform the ABI targets.
const bundleExtension = ".clap"
