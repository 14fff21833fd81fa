package main

import (
	"fmt"
	"hash/fnv"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/veldtgames/mapwright/catalog"
	"github.com/veldtgames/mapwright/collision"
	"github.com/veldtgames/mapwright/editor"
	"github.com/veldtgames/mapwright/level"
)

const leftPanelWidth = 230

// editorGame is the Ebiten game driving the map editor. All document and
// selection state lives in the session; this struct only holds rendering
// and input plumbing.
type editorGame struct {
	session *editor.Session
	catalog *catalog.Catalog
	watcher *catalog.Watcher

	ui        *ebitenui.UI
	toolBar   *ToolBar
	leftPanel *LeftPanel

	gridPixel  *ebiten.Image
	zoom       float64
	panX, panY float64
	isPanning  bool
	lastPanX   int
	lastPanY   int

	brushIndex     int
	isPainting     bool
	lastPaintX     int
	lastPaintY     int
	dragging       bool
	showCollision  bool
	statusText     string
	pendingMacro   []editor.Intent
	screenW        int
	screenH        int
	syncUINextTick bool
}

func (g *editorGame) dispatch(in editor.Intent) {
	if err := g.session.Dispatch(in); err != nil {
		log.Printf("editor: %v", err)
		g.statusText = err.Error()
		return
	}
	g.statusText = ""
	g.syncUINextTick = true
}

// syncUI pushes session state back into the widgets after anything that
// could have changed the document.
func (g *editorGame) syncUI() {
	m := g.session.Doc()

	rows := make([]LayerRow, 0, len(m.DrawOrder))
	for i := len(m.DrawOrder) - 1; i >= 0; i-- {
		l, ok := m.Layers[m.DrawOrder[i]]
		if !ok {
			continue
		}
		rows = append(rows, LayerRow{ID: l.ID, Kind: string(l.Kind), Visible: l.Visible})
	}
	g.leftPanel.LayerPanel.SetLayers(rows)
	if id := g.session.ActiveLayer(); id != "" {
		g.leftPanel.LayerPanel.SetSelected(id)
	}

	ids := make([]string, 0, len(m.Tilesets))
	for id := range m.Tilesets {
		ids = append(ids, id)
	}
	g.leftPanel.TilesetPanel.SetTilesets(sortedStrings(ids))
	g.leftPanel.ObjectPanel.SetCatalog(g.catalog)
	g.toolBar.SetActive(g.session.Tool())
}

func (g *editorGame) Update() error {
	g.ui.Update()

	if g.watcher != nil {
		g.drainWatcher()
	}

	if len(g.pendingMacro) > 0 {
		g.dispatch(editor.Batch{Intents: g.pendingMacro})
		g.pendingMacro = nil
	}

	g.handleKeyboard()
	g.handleMouse()

	if g.syncUINextTick {
		g.syncUI()
		g.syncUINextTick = false
	}
	return nil
}

func (g *editorGame) drainWatcher() {
	reload := false
	for {
		select {
		case _, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			reload = true
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("catalog watch: %v", err)
			}
		default:
			if reload {
				c, err := catalog.LoadCatalog()
				if err != nil {
					log.Printf("catalog reload: %v", err)
					return
				}
				g.catalog = c
				g.leftPanel.ObjectPanel.SetCatalog(c)
				log.Printf("catalog reloaded (%d objects)", c.Len())
			}
			return
		}
	}
}

func (g *editorGame) handleKeyboard() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)

	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		g.dispatch(editor.Undo{})
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyY) {
		g.dispatch(editor.Redo{})
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.dispatch(editor.Save{})
	}

	if !ctrl {
		if inpututil.IsKeyJustPressed(ebiten.Key1) {
			g.dispatch(editor.SelectTool{Tool: editor.ToolCursor})
		}
		if inpututil.IsKeyJustPressed(ebiten.Key2) {
			g.dispatch(editor.SelectTool{Tool: editor.ToolTilePlacer})
		}
		if inpututil.IsKeyJustPressed(ebiten.Key3) {
			g.dispatch(editor.SelectTool{Tool: editor.ToolObjectPlacer})
		}
		if inpututil.IsKeyJustPressed(ebiten.Key4) {
			g.dispatch(editor.SelectTool{Tool: editor.ToolSpawnPointPlacer})
		}
		if inpututil.IsKeyJustPressed(ebiten.Key5) {
			g.dispatch(editor.SelectTool{Tool: editor.ToolEraser})
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyH) {
			g.showCollision = !g.showCollision
		}
	}

	// Brush tile index cycles with the bracket keys.
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.brushIndex++
		g.applyBrush()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) && g.brushIndex > 0 {
		g.brushIndex--
		g.applyBrush()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.session.Placement() != nil {
			g.dispatch(editor.CancelObjectPlacement{})
		} else {
			g.dispatch(editor.Deselect{})
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && g.session.Placement() != nil {
		g.commitPlacement()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if ref, ok := g.session.Selection(); ok {
			switch ref.Kind {
			case editor.EntityObject:
				g.dispatch(editor.DeleteObject{LayerID: ref.LayerID, Index: ref.Index})
			case editor.EntitySpawnPoint:
				g.dispatch(editor.DeleteSpawnPoint{Index: ref.Index})
			}
		}
	}
}

func (g *editorGame) applyBrush() {
	ts := g.session.ActiveTileset()
	if ts == "" {
		return
	}
	g.dispatch(editor.SelectTile{TilesetID: ts, Index: g.brushIndex})
}

func (g *editorGame) commitPlacement() {
	p := g.session.Placement()
	if p == nil {
		return
	}
	layerID, ok := g.activeObjectLayer()
	if !ok {
		g.statusText = "no object layer to place on"
		return
	}
	g.dispatch(editor.CreateObject{
		LayerID: layerID,
		Object: level.Object{
			Position:  p.Position,
			Kind:      p.Kind,
			ContentID: p.ContentID,
		},
	})
}

// activeObjectLayer resolves the layer object edits should target: the
// active layer if it is an object layer, else the topmost object layer.
func (g *editorGame) activeObjectLayer() (string, bool) {
	m := g.session.Doc()
	if l, ok := m.Layers[g.session.ActiveLayer()]; ok && l.Kind == level.ObjectLayer {
		return l.ID, true
	}
	for i := len(m.DrawOrder) - 1; i >= 0; i-- {
		if l, ok := m.Layers[m.DrawOrder[i]]; ok && l.Kind == level.ObjectLayer {
			return l.ID, true
		}
	}
	return "", false
}

func (g *editorGame) handleMouse() {
	mx, my := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.isPanning = true
		g.lastPanX, g.lastPanY = mx, my
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		g.isPanning = false
	}
	if g.isPanning {
		g.panX += float64(mx - g.lastPanX)
		g.panY += float64(my - g.lastPanY)
		g.lastPanX, g.lastPanY = mx, my
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		g.zoom += wheelY * 0.1
		if g.zoom < 0.25 {
			g.zoom = 0.25
		}
		if g.zoom > 4 {
			g.zoom = 4
		}
	}

	// Clicks over the side panel or toolbar belong to the widgets.
	if mx < leftPanelWidth || my < 56 {
		return
	}

	cellX, cellY, inGrid := g.cellAt(mx, my)

	switch g.session.Tool() {
	case editor.ToolTilePlacer:
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && inGrid {
			g.paintTile(cellX, cellY)
		} else {
			g.isPainting = false
		}
	case editor.ToolEraser:
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && inGrid {
			g.eraseTile(cellX, cellY)
		} else {
			g.isPainting = false
		}
	case editor.ToolSpawnPointPlacer:
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inGrid {
			g.dispatch(editor.CreateSpawnPoint{Position: g.worldPos(mx, my)})
		}
	case editor.ToolObjectPlacer:
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inGrid {
			g.beginPlacement(mx, my)
		}
	case editor.ToolCursor:
		g.handleCursorTool(mx, my)
	}
}

func (g *editorGame) beginPlacement(mx, my int) {
	pos := g.worldPos(mx, my)
	row, hasRow := g.leftPanel.ObjectPanel.Selected()
	kind := level.Decoration
	if hasRow {
		kind = row.Kind
	}
	g.dispatch(editor.BeginObjectPlacement{Position: pos, Kind: kind})
	if hasRow {
		g.dispatch(editor.UpdateObjectPlacement{Kind: row.Kind, ContentID: row.ID})
	}
}

func (g *editorGame) handleCursorTool(mx, my int) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ref, ok := g.entityAt(mx, my); ok {
			g.dispatch(editor.SelectEntity{Ref: ref})
			g.dragging = true
		} else {
			g.dispatch(editor.Deselect{})
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.dragging {
		g.dragging = false
		if ref, ok := g.session.Selection(); ok && ref.Kind == editor.EntityObject {
			g.dispatch(editor.MoveObject{
				LayerID:  ref.LayerID,
				Index:    ref.Index,
				Position: g.worldPos(mx, my),
			})
		}
	}
}

// entityAt finds the closest object or spawn point within half a tile of
// the cursor, objects first.
func (g *editorGame) entityAt(mx, my int) (editor.EntityRef, bool) {
	m := g.session.Doc()
	pos := g.worldPos(mx, my)
	reach := m.TileSize.X / 2

	for i := len(m.DrawOrder) - 1; i >= 0; i-- {
		l, ok := m.Layers[m.DrawOrder[i]]
		if !ok || l.Kind != level.ObjectLayer {
			continue
		}
		for idx := len(l.Objects) - 1; idx >= 0; idx-- {
			if near(l.Objects[idx].Position, pos, reach) {
				return editor.EntityRef{Kind: editor.EntityObject, LayerID: l.ID, Index: idx}, true
			}
		}
	}
	for idx := len(m.SpawnPoints) - 1; idx >= 0; idx-- {
		if near(m.SpawnPoints[idx], pos, reach) {
			return editor.EntityRef{Kind: editor.EntitySpawnPoint, Index: idx}, true
		}
	}
	return editor.EntityRef{}, false
}

func near(a, b level.Vec2, reach float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx+dy*dy <= reach*reach
}

func (g *editorGame) paintTile(cellX, cellY int) {
	brush, ok := g.session.Brush()
	if !ok {
		g.statusText = "select a tileset first"
		return
	}
	layerID := g.session.ActiveLayer()
	if g.isPainting && g.lastPaintX == cellX && g.lastPaintY == cellY {
		return
	}
	g.isPainting = true
	g.lastPaintX, g.lastPaintY = cellX, cellY
	g.dispatch(editor.PlaceTile{
		LayerID: layerID,
		X:       cellX,
		Y:       cellY,
		Tile:    level.Tile{TilesetID: brush.TilesetID, Index: brush.Index},
	})
}

func (g *editorGame) eraseTile(cellX, cellY int) {
	if g.isPainting && g.lastPaintX == cellX && g.lastPaintY == cellY {
		return
	}
	g.isPainting = true
	g.lastPaintX, g.lastPaintY = cellX, cellY
	g.dispatch(editor.RemoveTile{LayerID: g.session.ActiveLayer(), X: cellX, Y: cellY})
}

// worldPos converts a screen position to map pixel coordinates.
func (g *editorGame) worldPos(mx, my int) level.Vec2 {
	return level.Vec2{
		X: (float64(mx-leftPanelWidth) - g.panX) / g.zoom,
		Y: (float64(my) - g.panY) / g.zoom,
	}
}

// cellAt converts a screen position to a grid cell.
func (g *editorGame) cellAt(mx, my int) (int, int, bool) {
	m := g.session.Doc()
	pos := g.worldPos(mx, my)
	if pos.X < 0 || pos.Y < 0 {
		return 0, 0, false
	}
	cellX := int(pos.X / m.TileSize.X)
	cellY := int(pos.Y / m.TileSize.Y)
	if cellX >= m.Grid.Cols || cellY >= m.Grid.Rows {
		return 0, 0, false
	}
	return cellX, cellY, true
}

func (g *editorGame) Draw(screen *ebiten.Image) {
	if g.gridPixel == nil {
		g.gridPixel = ebiten.NewImage(1, 1)
		g.gridPixel.Fill(color.White)
	}
	screen.Fill(color.RGBA{24, 24, 28, 255})

	m := g.session.Doc()
	cw := m.TileSize.X * g.zoom
	ch := m.TileSize.Y * g.zoom

	for _, l := range m.LayersInDrawOrder() {
		if !l.Visible {
			continue
		}
		switch l.Kind {
		case level.TileLayer:
			g.drawTileLayer(screen, m, l, cw, ch)
		case level.ObjectLayer:
			g.drawObjectLayer(screen, l, cw)
		}
	}

	g.drawGridLines(screen, m, cw, ch)
	g.drawSpawnPoints(screen, m)
	if g.showCollision {
		g.drawCollision(screen, m, cw, ch)
	}
	g.drawPlacementGhost(screen, cw)

	g.ui.Draw(screen)
	ebitenutil.DebugPrintAt(screen, g.statusLine(), leftPanelWidth+8, g.screenH-18)
}

func (g *editorGame) drawTileLayer(screen *ebiten.Image, m *level.Map, l *level.Layer, cw, ch float64) {
	for y := 0; y < m.Grid.Rows; y++ {
		for x := 0; x < m.Grid.Cols; x++ {
			t := l.Tiles[y*m.Grid.Cols+x]
			if t.IsEmpty() {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(cw, ch)
			op.GeoM.Translate(float64(x)*cw+g.panX+leftPanelWidth, float64(y)*ch+g.panY)
			r, gr, b := tileColor(t)
			op.ColorScale.Scale(r, gr, b, 1)
			screen.DrawImage(g.gridPixel, op)
		}
	}
}

func (g *editorGame) drawObjectLayer(screen *ebiten.Image, l *level.Layer, cw float64) {
	sel, hasSel := g.session.Selection()
	for idx, obj := range l.Objects {
		x, y := g.screenXY(obj.Position)
		size := float32(cw * 0.6)
		c := objectColor(obj.Kind)
		vector.FillRect(screen, x-size/2, y-size/2, size, size, c, false)
		if hasSel && sel.IsObject(l.ID, idx) {
			vector.StrokeRect(screen, x-size/2, y-size/2, size, size, 2, color.RGBA{255, 255, 0, 255}, false)
		}
	}
}

func (g *editorGame) drawSpawnPoints(screen *ebiten.Image, m *level.Map) {
	sel, hasSel := g.session.Selection()
	for idx, sp := range m.SpawnPoints {
		x, y := g.screenXY(sp)
		r := float32(8 * g.zoom)
		vector.FillCircle(screen, x, y, r, color.RGBA{80, 220, 120, 200}, true)
		if hasSel && sel.Kind == editor.EntitySpawnPoint && sel.Index == idx {
			vector.StrokeCircle(screen, x, y, r+2, 2, color.RGBA{255, 255, 0, 255}, true)
		}
	}
}

func (g *editorGame) drawCollision(screen *ebiten.Image, m *level.Map, cw, ch float64) {
	for _, s := range collision.Spans(m) {
		x := float32(float64(s.X0)*cw + g.panX + leftPanelWidth)
		y := float32(float64(s.Y)*ch + g.panY)
		w := float32(float64(s.X1-s.X0+1) * cw)
		h := float32(ch)
		vector.FillRect(screen, x, y, w, h, color.RGBA{255, 0, 0, 48}, false)
		vector.StrokeRect(screen, x, y, w, h, 1, color.RGBA{255, 0, 0, 200}, false)
	}
}

func (g *editorGame) drawGridLines(screen *ebiten.Image, m *level.Map, cw, ch float64) {
	lineColor := color.RGBA{60, 60, 70, 255}
	for x := 0; x <= m.Grid.Cols; x++ {
		sx := float32(float64(x)*cw + g.panX + leftPanelWidth)
		vector.StrokeLine(screen, sx, float32(g.panY), sx, float32(float64(m.Grid.Rows)*ch+g.panY), 1, lineColor, false)
	}
	for y := 0; y <= m.Grid.Rows; y++ {
		sy := float32(float64(y)*ch + g.panY)
		vector.StrokeLine(screen, float32(g.panX+leftPanelWidth), sy, float32(float64(m.Grid.Cols)*cw+g.panX+leftPanelWidth), sy, 1, lineColor, false)
	}
}

func (g *editorGame) drawPlacementGhost(screen *ebiten.Image, cw float64) {
	p := g.session.Placement()
	if p == nil {
		return
	}
	x, y := g.screenXY(p.Position)
	size := float32(cw * 0.6)
	vector.StrokeRect(screen, x-size/2, y-size/2, size, size, 2, color.RGBA{200, 200, 255, 255}, false)
}

func (g *editorGame) screenXY(pos level.Vec2) (float32, float32) {
	return float32(pos.X*g.zoom + g.panX + leftPanelWidth), float32(pos.Y*g.zoom + g.panY)
}

func (g *editorGame) statusLine() string {
	if g.statusText != "" {
		return g.statusText
	}
	line := fmt.Sprintf("tool: %s  layer: %s", g.session.Tool(), g.session.ActiveLayer())
	if brush, ok := g.session.Brush(); ok {
		line += fmt.Sprintf("  brush: %s:%d", brush.TilesetID, brush.Index)
	}
	if label, ok := g.session.UndoLabel(); ok {
		line += "  undo: " + label
	}
	return line
}

func (g *editorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// tileColor derives a stable tint per tileset and index so tiles stay
// tellable apart without loading textures.
func tileColor(t level.Tile) (float32, float32, float32) {
	h := fnv.New32a()
	h.Write([]byte(t.TilesetID))
	h.Write([]byte{byte(t.Index), byte(t.Index >> 8)})
	v := h.Sum32()
	r := 0.35 + float32(v&0xff)/512
	g := 0.35 + float32((v>>8)&0xff)/512
	b := 0.35 + float32((v>>16)&0xff)/512
	return r, g, b
}

func objectColor(kind level.ObjectKind) color.RGBA {
	switch kind {
	case level.Environment:
		return color.RGBA{220, 140, 60, 255}
	case level.Item:
		return color.RGBA{90, 160, 240, 255}
	default:
		return color.RGBA{160, 160, 160, 255}
	}
}
