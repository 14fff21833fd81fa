// Package macro runs Tengo scripts that record batches of editor intents.
// A script calls edit builtins (place_tile, create_layer, ...) against the
// open map; the recorded intents come back as one batch for the session to
// dispatch, so a scripted edit lands in the undo history like any other.
package macro

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/veldtgames/mapwright/editor"
	"github.com/veldtgames/mapwright/level"
)

// Run executes a script against a read-only view of m and returns the
// intents it recorded, in call order. The script never mutates m itself.
func Run(src []byte, m *level.Map) ([]editor.Intent, error) {
	rec := &recorder{}

	script := tengo.NewScript(src)
	for name, fn := range rec.builtins(m) {
		if err := script.Add(name, fn); err != nil {
			return nil, fmt.Errorf("macro: add builtin %s: %w", name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	if _, err := script.Run(); err != nil {
		return nil, fmt.Errorf("macro: run: %w", err)
	}
	return rec.intents, nil
}

// RunFile reads and runs a script from disk.
func RunFile(path string, m *level.Map) ([]editor.Intent, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("macro: read %s: %w", path, err)
	}
	return Run(src, m)
}

type recorder struct {
	intents []editor.Intent
}

func (r *recorder) record(in editor.Intent) {
	r.intents = append(r.intents, in)
}

func (r *recorder) builtins(m *level.Map) map[string]tengo.Object {
	fns := map[string]tengo.Object{}

	fns["cols"] = &tengo.UserFunction{Name: "cols", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(m.Grid.Cols)}, nil
	}}

	fns["rows"] = &tengo.UserFunction{Name: "rows", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(m.Grid.Rows)}, nil
	}}

	fns["layers"] = &tengo.UserFunction{Name: "layers", Value: func(args ...tengo.Object) (tengo.Object, error) {
		arr := &tengo.Array{}
		for _, id := range m.DrawOrder {
			arr.Value = append(arr.Value, &tengo.String{Value: id})
		}
		return arr, nil
	}}

	fns["place_tile"] = &tengo.UserFunction{Name: "place_tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 5 {
			return nil, fmt.Errorf("place_tile(layer, x, y, tileset, index): got %d args", len(args))
		}
		layer, err := argString(args[0], "layer")
		if err != nil {
			return nil, err
		}
		x, err := argInt(args[1], "x")
		if err != nil {
			return nil, err
		}
		y, err := argInt(args[2], "y")
		if err != nil {
			return nil, err
		}
		tileset, err := argString(args[3], "tileset")
		if err != nil {
			return nil, err
		}
		index, err := argInt(args[4], "index")
		if err != nil {
			return nil, err
		}
		r.record(editor.PlaceTile{
			LayerID: layer,
			X:       x,
			Y:       y,
			Tile:    level.Tile{TilesetID: tileset, Index: index},
		})
		return tengo.UndefinedValue, nil
	}}

	fns["remove_tile"] = &tengo.UserFunction{Name: "remove_tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, fmt.Errorf("remove_tile(layer, x, y): got %d args", len(args))
		}
		layer, err := argString(args[0], "layer")
		if err != nil {
			return nil, err
		}
		x, err := argInt(args[1], "x")
		if err != nil {
			return nil, err
		}
		y, err := argInt(args[2], "y")
		if err != nil {
			return nil, err
		}
		r.record(editor.RemoveTile{LayerID: layer, X: x, Y: y})
		return tengo.UndefinedValue, nil
	}}

	fns["create_layer"] = &tengo.UserFunction{Name: "create_layer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 4 {
			return nil, fmt.Errorf("create_layer(id, kind, has_collision, index): got %d args", len(args))
		}
		id, err := argString(args[0], "id")
		if err != nil {
			return nil, err
		}
		kind, err := argString(args[1], "kind")
		if err != nil {
			return nil, err
		}
		hasCollision, err := argBool(args[2], "has_collision")
		if err != nil {
			return nil, err
		}
		index, err := argInt(args[3], "index")
		if err != nil {
			return nil, err
		}
		r.record(editor.CreateLayer{
			ID:           id,
			Kind:         level.LayerKind(kind),
			HasCollision: hasCollision,
			Index:        index,
		})
		return tengo.UndefinedValue, nil
	}}

	fns["delete_layer"] = &tengo.UserFunction{Name: "delete_layer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("delete_layer(id): got %d args", len(args))
		}
		id, err := argString(args[0], "id")
		if err != nil {
			return nil, err
		}
		r.record(editor.DeleteLayer{ID: id})
		return tengo.UndefinedValue, nil
	}}

	fns["set_visible"] = &tengo.UserFunction{Name: "set_visible", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("set_visible(id, visible): got %d args", len(args))
		}
		id, err := argString(args[0], "id")
		if err != nil {
			return nil, err
		}
		visible, err := argBool(args[1], "visible")
		if err != nil {
			return nil, err
		}
		r.record(editor.UpdateLayerVisibility{ID: id, Visible: visible})
		return tengo.UndefinedValue, nil
	}}

	fns["move_layer"] = &tengo.UserFunction{Name: "move_layer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("move_layer(id, index): got %d args", len(args))
		}
		id, err := argString(args[0], "id")
		if err != nil {
			return nil, err
		}
		index, err := argInt(args[1], "index")
		if err != nil {
			return nil, err
		}
		r.record(editor.SetLayerDrawOrderIndex{ID: id, Index: index})
		return tengo.UndefinedValue, nil
	}}

	fns["create_object"] = &tengo.UserFunction{Name: "create_object", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 5 {
			return nil, fmt.Errorf("create_object(layer, kind, content, x, y): got %d args", len(args))
		}
		layer, err := argString(args[0], "layer")
		if err != nil {
			return nil, err
		}
		kind, err := argString(args[1], "kind")
		if err != nil {
			return nil, err
		}
		content, err := argString(args[2], "content")
		if err != nil {
			return nil, err
		}
		x, err := argFloat(args[3], "x")
		if err != nil {
			return nil, err
		}
		y, err := argFloat(args[4], "y")
		if err != nil {
			return nil, err
		}
		r.record(editor.CreateObject{
			LayerID: layer,
			Object: level.Object{
				Position:  level.Vec2{X: x, Y: y},
				Kind:      level.ObjectKind(kind),
				ContentID: content,
			},
		})
		return tengo.UndefinedValue, nil
	}}

	fns["delete_object"] = &tengo.UserFunction{Name: "delete_object", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("delete_object(layer, index): got %d args", len(args))
		}
		layer, err := argString(args[0], "layer")
		if err != nil {
			return nil, err
		}
		index, err := argInt(args[1], "index")
		if err != nil {
			return nil, err
		}
		r.record(editor.DeleteObject{LayerID: layer, Index: index})
		return tengo.UndefinedValue, nil
	}}

	fns["create_spawn_point"] = &tengo.UserFunction{Name: "create_spawn_point", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("create_spawn_point(x, y): got %d args", len(args))
		}
		x, err := argFloat(args[0], "x")
		if err != nil {
			return nil, err
		}
		y, err := argFloat(args[1], "y")
		if err != nil {
			return nil, err
		}
		r.record(editor.CreateSpawnPoint{Position: level.Vec2{X: x, Y: y}})
		return tengo.UndefinedValue, nil
	}}

	fns["create_tileset"] = &tengo.UserFunction{Name: "create_tileset", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 5 {
			return nil, fmt.Errorf("create_tileset(id, texture, tile_w, tile_h, columns): got %d args", len(args))
		}
		id, err := argString(args[0], "id")
		if err != nil {
			return nil, err
		}
		texture, err := argString(args[1], "texture")
		if err != nil {
			return nil, err
		}
		tileW, err := argInt(args[2], "tile_w")
		if err != nil {
			return nil, err
		}
		tileH, err := argInt(args[3], "tile_h")
		if err != nil {
			return nil, err
		}
		columns, err := argInt(args[4], "columns")
		if err != nil {
			return nil, err
		}
		r.record(editor.CreateTileset{Tileset: level.Tileset{
			ID:          id,
			TexturePath: texture,
			TileW:       tileW,
			TileH:       tileH,
			Columns:     columns,
		}})
		return tengo.UndefinedValue, nil
	}}

	return fns
}

func argString(obj tengo.Object, name string) (string, error) {
	s, ok := tengo.ToString(obj)
	if !ok {
		return "", fmt.Errorf("%s: want string, got %s", name, obj.TypeName())
	}
	return s, nil
}

func argInt(obj tengo.Object, name string) (int, error) {
	v, ok := tengo.ToInt(obj)
	if !ok {
		return 0, fmt.Errorf("%s: want int, got %s", name, obj.TypeName())
	}
	return v, nil
}

func argFloat(obj tengo.Object, name string) (float64, error) {
	v, ok := tengo.ToFloat64(obj)
	if !ok {
		return 0, fmt.Errorf("%s: want number, got %s", name, obj.TypeName())
	}
	return v, nil
}

func argBool(obj tengo.Object, name string) (bool, error) {
	return !obj.IsFalsy(), nil
}
