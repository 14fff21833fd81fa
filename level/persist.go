package level

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed maps/*.json
var MapsFS embed.FS

// Load decodes a map from r and validates it.
func Load(r io.Reader) (*Map, error) {
	var m Map
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("level: decode map: %w", err)
	}
	if m.Layers == nil {
		m.Layers = make(map[string]*Layer)
	}
	if m.Tilesets == nil {
		m.Tilesets = make(map[string]*Tileset)
	}
	m.normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Save encodes the map to w as indented JSON.
func Save(w io.Writer, m *Map) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("level: encode map: %w", err)
	}
	return nil
}

// LoadFile loads a map from a file on disk.
func LoadFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("level: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// SaveFile writes the map to path, creating parent directories as needed.
func SaveFile(path string, m *Map) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("level: mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("level: create %s: %w", path, err)
	}
	defer f.Close()
	return Save(f, m)
}

// LoadFromFS loads an embedded starter map by name, e.g. "default.json".
func LoadFromFS(name string) (*Map, error) {
	if !strings.HasPrefix(name, "maps/") {
		name = "maps/" + name
	}
	data, err := fs.ReadFile(MapsFS, name)
	if err != nil {
		return nil, fmt.Errorf("level: read embedded map %s: %w", name, err)
	}
	return Load(bytes.NewReader(data))
}
