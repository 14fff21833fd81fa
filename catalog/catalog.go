// Package catalog holds the library of placeable object definitions. Each
// object is one YAML file; the editor's placement wizard reads its choices
// from here rather than hard-coding content ids.
package catalog

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/veldtgames/mapwright/level"
)

// ObjectMeta describes one placeable object.
type ObjectMeta struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Kind        level.ObjectKind `yaml:"kind"`
	Texture     string           `yaml:"texture"`
	Description string           `yaml:"description"`
}

// Catalog is an immutable snapshot of the object library. Reload by
// building a new one.
type Catalog struct {
	byID map[string]ObjectMeta
}

// LoadCatalog reads every object file, embedded entries first and disk
// overrides on top.
func LoadCatalog() (*Catalog, error) {
	c := &Catalog{byID: make(map[string]ObjectMeta)}
	names, err := listObjectFiles()
	if err != nil {
		return nil, fmt.Errorf("catalog: list objects: %w", err)
	}
	for _, name := range names {
		meta, err := loadMeta(name)
		if err != nil {
			return nil, err
		}
		if _, ok := c.byID[meta.ID]; ok {
			return nil, fmt.Errorf("catalog: %s: duplicate object id %q", name, meta.ID)
		}
		c.byID[meta.ID] = meta
	}
	return c, nil
}

// LoadCatalogFS reads the object library from an arbitrary fs, for tests.
func LoadCatalogFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]ObjectMeta)}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("catalog: list objects: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !isObjectFile(e.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("catalog: load %s: %w", e.Name(), err)
		}
		meta, err := parseMeta(e.Name(), data)
		if err != nil {
			return nil, err
		}
		if _, ok := c.byID[meta.ID]; ok {
			return nil, fmt.Errorf("catalog: %s: duplicate object id %q", e.Name(), meta.ID)
		}
		c.byID[meta.ID] = meta
	}
	return c, nil
}

func loadMeta(name string) (ObjectMeta, error) {
	data, err := Load(name)
	if err != nil {
		return ObjectMeta{}, fmt.Errorf("catalog: load %s: %w", name, err)
	}
	return parseMeta(name, data)
}

func parseMeta(name string, data []byte) (ObjectMeta, error) {
	var meta ObjectMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return ObjectMeta{}, fmt.Errorf("catalog: unmarshal %s: %w", name, err)
	}
	if meta.ID == "" {
		return ObjectMeta{}, fmt.Errorf("catalog: %s: missing id", name)
	}
	switch meta.Kind {
	case level.Decoration, level.Environment, level.Item:
	default:
		return ObjectMeta{}, fmt.Errorf("catalog: %s: unknown kind %q", name, meta.Kind)
	}
	return meta, nil
}

// Lookup returns the object with the given id.
func (c *Catalog) Lookup(id string) (ObjectMeta, bool) {
	meta, ok := c.byID[id]
	return meta, ok
}

// IDs returns the ids of every object of a kind, sorted.
func (c *Catalog) IDs(kind level.ObjectKind) []string {
	var ids []string
	for id, meta := range c.byID {
		if meta.Kind == kind {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of objects in the library.
func (c *Catalog) Len() int { return len(c.byID) }

func isObjectFile(name string) bool {
	ext := strings.ToLower(name)
	return strings.HasSuffix(ext, ".yaml") || strings.HasSuffix(ext, ".yml")
}
