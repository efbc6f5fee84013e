// Package tilesets bundles the default tileset definitions so the editor
// works out of the box. A definition on disk under tilesets/ shadows its
// embedded copy, which keeps hot reload usable during tileset authoring.
package tilesets

import (
	"embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/tileforge/tileset"
)

//go:embed *.yaml
var DefsFS embed.FS

// Load reads one definition by name, preferring the on-disk copy.
func Load(name string) ([]byte, error) {
	clean := cleanDefPath(name)
	if data, err := os.ReadFile(diskDefPath(clean)); err == nil {
		return data, nil
	}
	return DefsFS.ReadFile(clean)
}

// Defaults parses every embedded definition into a collection.
func Defaults() (tileset.Collection, error) {
	return tileset.LoadDir(DefsFS, ".")
}

func cleanDefPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "tilesets/") {
		return strings.TrimPrefix(s, "tilesets/")
	}
	return s
}

func diskDefPath(clean string) string {
	return filepath.Join("tilesets", filepath.FromSlash(clean))
}
