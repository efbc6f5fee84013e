// Command editor is the tile map editor. It paints terrain onto a chunked,
// unbounded level, resolves sprites through the autotiler, and saves the
// chunked level format.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"github.com/milk9111/tileforge/tileset"
	"github.com/milk9111/tileforge/tilesets"
)

func main() {
	var (
		levelPath  = flag.String("level", "", "level file to open")
		defsDir    = flag.String("tilesets", "tilesets", "directory of tileset definitions")
		scriptPath = flag.String("script", "", "generation script to run against the active layer on startup")
	)
	flag.Parse()

	defs, err := loadTilesets(*defsDir)
	if err != nil {
		log.Fatalf("load tilesets: %v", err)
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	}

	ed, err := NewEditor(defs, *defsDir)
	if err != nil {
		log.Fatal(err)
	}
	if *levelPath != "" {
		if err := ed.Open(*levelPath); err != nil {
			log.Fatalf("open %s: %v", *levelPath, err)
		}
	}
	if *scriptPath != "" {
		if err := ed.RunScript(*scriptPath); err != nil {
			log.Fatalf("run script %s: %v", *scriptPath, err)
		}
	}
	defer ed.Close()

	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("tileforge editor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(ed); err != nil {
		log.Fatal(err)
	}
}

// loadTilesets reads definitions from the given directory, falling back to
// the embedded defaults when the directory is missing or empty.
func loadTilesets(dir string) (tileset.Collection, error) {
	if dir != "" {
		if _, err := os.Stat(dir); err == nil {
			defs, err := tileset.LoadDir(os.DirFS(dir), ".")
			if err != nil {
				return nil, err
			}
			if len(defs) > 0 {
				return defs, nil
			}
		}
	}
	return tilesets.Defaults()
}
