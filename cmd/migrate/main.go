// Command migrate converts legacy flat-array level files to the chunked
// format. It reads one or more level JSON files, rewrites any legacy ones
// in place (or to -out for a single input), and leaves current-format
// files untouched.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/tileforge/level"
)

func main() {
	var (
		out        = flag.String("out", "", "output path (single input only; default: rewrite in place)")
		columns    = flag.Int("columns", 8, "implicit tileset width in tiles for legacy cell values")
		order      = flag.Int("order", 1, "tileset order assigned to migrated tiles")
		tileWidth  = flag.Int("tile-width", 32, "tile width in pixels")
		tileHeight = flag.Int("tile-height", 32, "tile height in pixels")
		dryRun     = flag.Bool("dry-run", false, "report what would change without writing")
	)
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: migrate [flags] level.json [more.json ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *out != "" && len(paths) > 1 {
		log.Fatal("-out only applies to a single input file")
	}

	opt := level.MigrateOptions{
		Columns:    *columns,
		Order:      *order,
		TileWidth:  *tileWidth,
		TileHeight: *tileHeight,
	}

	migrated := 0
	for _, path := range paths {
		changed, err := migrateFile(path, *out, opt, *dryRun)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}
		if changed {
			migrated++
		}
	}
	log.Printf("migrated %d of %d file(s)", migrated, len(paths))
}

func migrateFile(path, out string, opt level.MigrateOptions, dryRun bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if !level.IsLegacy(data) {
		log.Printf("%s: already chunked, skipping", path)
		return false, nil
	}

	lvl, err := level.DecodeLegacy(data, opt)
	if err != nil {
		return false, fmt.Errorf("decode legacy: %w", err)
	}

	target := path
	if out != "" {
		target = out
	}
	if dryRun {
		log.Printf("%s: would migrate %d layer(s) to %s", path, len(lvl.Layers), target)
		return true, nil
	}
	if err := lvl.Save(target); err != nil {
		return false, fmt.Errorf("save: %w", err)
	}
	log.Printf("%s: migrated %d layer(s) to %s", path, len(lvl.Layers), target)
	return true, nil
}
