package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/veldtgames/mapwright/level"
)

// fileSaver writes the map back to the path it was opened from.
type fileSaver struct {
	path string
}

func (s fileSaver) Save(m *level.Map) error {
	if s.path == "" {
		return fmt.Errorf("no save path set")
	}
	return level.SaveFile(s.path, m)
}

// openMap loads the map at path, falling back to the embedded default map
// when the file does not exist yet, and to a blank map when cols/rows were
// given.
func openMap(path string, cols, rows, cell int) *level.Map {
	if path != "" {
		m, err := level.LoadFile(path)
		if err == nil {
			return m
		}
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("load %s: %v", path, err)
		}
		log.Printf("%s does not exist yet, starting fresh", path)
	}
	if cols > 0 && rows > 0 {
		return level.NewMap(
			level.Vec2{X: float64(cell), Y: float64(cell)},
			level.GridSize{Cols: cols, Rows: rows},
		)
	}
	m, err := level.LoadFromFS("default.json")
	if err != nil {
		log.Fatalf("load embedded default map: %v", err)
	}
	return m
}
