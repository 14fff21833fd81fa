package catalog

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed objects/*.yaml
var ObjectsFS embed.FS

// Load reads one object file, preferring a disk copy under catalog/objects/
// so edits show up without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanObjectPath(name)
	if data, err := os.ReadFile(diskObjectPath(clean)); err == nil {
		return data, nil
	}
	return ObjectsFS.ReadFile(clean)
}

// listObjectFiles merges embedded and on-disk object file names.
func listObjectFiles() ([]string, error) {
	seen := make(map[string]bool)
	entries, err := fs.ReadDir(ObjectsFS, "objects")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.IsDir() && isObjectFile(e.Name()) {
			seen[e.Name()] = true
		}
	}
	if disk, err := os.ReadDir(filepath.Join("catalog", "objects")); err == nil {
		for _, e := range disk {
			if !e.IsDir() && isObjectFile(e.Name()) {
				seen[e.Name()] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func cleanObjectPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "catalog/objects/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "objects/"); ok {
		s = after
	}
	return "objects/" + s
}

func diskObjectPath(clean string) string {
	return filepath.Join("catalog", filepath.FromSlash(clean))
}
