// Package levels bundles sample levels in the chunked format. They serve
// as starting points in the editor and as decode fixtures.
package levels

import (
	"embed"

	"github.com/milk9111/tileforge/level"
)

//go:embed *.json
var LevelsFS embed.FS

// Load decodes an embedded level by file name.
func Load(name string) (*level.Level, error) {
	return level.LoadFS(LevelsFS, name)
}
