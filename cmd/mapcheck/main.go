// Command mapcheck validates map files and prints a short summary of each.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/veldtgames/mapwright/collision"
	"github.com/veldtgames/mapwright/level"
)

func main() {
	verbose := flag.Bool("v", false, "print per-layer detail")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: mapcheck [-v] <map.json>...")
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		m, err := level.LoadFile(path)
		if err != nil {
			log.Printf("%s: %v", path, err)
			failed = true
			continue
		}
		spans := collision.Spans(m)
		fmt.Printf("%s: %dx%d grid, %d layers, %d tilesets, %d spawn points, %d collision spans\n",
			path, m.Grid.Cols, m.Grid.Rows, len(m.Layers), len(m.Tilesets), len(m.SpawnPoints), len(spans))
		if *verbose {
			for _, l := range m.LayersInDrawOrder() {
				switch l.Kind {
				case level.TileLayer:
					fmt.Printf("  %s: tile layer, %d tiles set, collision=%v, visible=%v\n",
						l.ID, countTiles(l), l.HasCollision, l.Visible)
				case level.ObjectLayer:
					fmt.Printf("  %s: object layer, %d objects, visible=%v\n",
						l.ID, len(l.Objects), l.Visible)
				}
			}
		}
	}
	if failed {
		os.Exit(1)
	}
}

func countTiles(l *level.Layer) int {
	n := 0
	for _, t := range l.Tiles {
		if !t.IsEmpty() {
			n++
		}
	}
	return n
}
