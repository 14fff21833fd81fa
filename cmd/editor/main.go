package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/veldtgames/mapwright/catalog"
	"github.com/veldtgames/mapwright/editor"
	"github.com/veldtgames/mapwright/level"
	"github.com/veldtgames/mapwright/macro"
)

func main() {
	levelPath := flag.String("level", "level/maps/default.json", "map file to open")
	cols := flag.Int("cols", 0, "grid columns for a new map")
	rows := flag.Int("rows", 0, "grid rows for a new map")
	cell := flag.Int("cell", 32, "tile size in pixels for a new map")
	macroPath := flag.String("macro", "", "run a tengo macro against the map on startup")
	flag.Parse()

	m := openMap(*levelPath, *cols, *rows, *cell)

	cat, err := catalog.LoadCatalog()
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	var watcher *catalog.Watcher
	objectsDir := filepath.Join("catalog", "objects")
	if info, err := os.Stat(objectsDir); err == nil && info.IsDir() {
		watcher, err = catalog.NewWatcher(objectsDir)
		if err != nil {
			log.Printf("catalog watch disabled: %v", err)
		}
	}

	session := editor.NewSession(m, fileSaver{path: *levelPath})

	game := &editorGame{
		session: session,
		catalog: cat,
		watcher: watcher,
		zoom:    1,
	}

	if *macroPath != "" {
		intents, err := macro.RunFile(*macroPath, m)
		if err != nil {
			log.Fatalf("macro: %v", err)
		}
		game.pendingMacro = intents
		log.Printf("macro %s recorded %d edits", *macroPath, len(intents))
	}

	ui, toolBar, leftPanel := BuildEditorUI(uiCallbacks{
		onToolSelected: func(tool editor.Tool) {
			if tool != game.session.Tool() {
				game.dispatch(editor.SelectTool{Tool: tool})
			}
		},
		onLayerSelected: func(id string) {
			game.dispatch(editor.SelectLayer{ID: id})
		},
		onNewLayer: func() {
			game.dispatch(editor.CreateLayer{
				ID:    nextLayerID(game.session.Doc()),
				Kind:  level.TileLayer,
				Index: len(game.session.Doc().DrawOrder),
			})
		},
		onDeleteLayer: func(id string) {
			game.dispatch(editor.DeleteLayer{ID: id})
		},
		onMoveLayerUp: func(id string) {
			if idx, ok := game.session.Doc().DrawOrderIndex(id); ok {
				game.dispatch(editor.SetLayerDrawOrderIndex{ID: id, Index: idx + 1})
			}
		},
		onMoveLayerDown: func(id string) {
			if idx, ok := game.session.Doc().DrawOrderIndex(id); ok {
				game.dispatch(editor.SetLayerDrawOrderIndex{ID: id, Index: idx - 1})
			}
		},
		onToggleVisible: func(id string, visible bool) {
			game.dispatch(editor.UpdateLayerVisibility{ID: id, Visible: visible})
		},
		onTilesetSelected: func(id string) {
			game.dispatch(editor.SelectTileset{ID: id})
			game.brushIndex = 0
			game.dispatch(editor.SelectTile{TilesetID: id, Index: 0})
		},
		onObjectSelected: func(row ObjectRow) {
			if game.session.Placement() != nil {
				game.dispatch(editor.UpdateObjectPlacement{Kind: row.Kind, ContentID: row.ID})
			}
		},
	}, session.Tool())

	game.ui = ui
	game.toolBar = toolBar
	game.leftPanel = leftPanel
	game.syncUI()

	ebiten.SetWindowSize(leftPanelWidth+m.Grid.Cols*int(m.TileSize.X), m.Grid.Rows*int(m.TileSize.Y))
	ebiten.SetWindowTitle("Mapwright")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
	if watcher != nil {
		_ = watcher.Close()
	}
}

// nextLayerID finds the first free "layer N" id.
func nextLayerID(m *level.Map) string {
	for i := 1; ; i++ {
		id := "layer " + strconv.Itoa(i)
		if _, ok := m.Layers[id]; !ok {
			return id
		}
	}
}

func sortedStrings(ids []string) []string {
	sort.Strings(ids)
	return ids
}
