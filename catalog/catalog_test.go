package catalog

import (
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/veldtgames/mapwright/level"
)

func TestLoadCatalogFS(t *testing.T) {
	fsys := fstest.MapFS{
		"crab.yaml": {Data: []byte(
			"id: crab\nname: Crab\nkind: environment\ntexture: objects/crab.png\n",
		)},
		"sword.yaml": {Data: []byte(
			"id: sword\nname: Sword\nkind: item\n",
		)},
		"seaweed.yaml": {Data: []byte(
			"id: seaweed\nname: Seaweed\nkind: decoration\n",
		)},
		"anchor.yaml": {Data: []byte(
			"id: anchor\nname: Anchor\nkind: decoration\n",
		)},
		"notes.txt": {Data: []byte("ignored")},
	}

	c, err := LoadCatalogFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Len() != 4 {
		t.Fatalf("loaded %d objects, want 4", c.Len())
	}

	meta, ok := c.Lookup("crab")
	if !ok || meta.Kind != level.Environment || meta.Name != "Crab" {
		t.Fatalf("crab = %+v, %v", meta, ok)
	}
	if _, ok := c.Lookup("nope"); ok {
		t.Fatalf("lookup of unknown id succeeded")
	}

	if got, want := c.IDs(level.Decoration), []string{"anchor", "seaweed"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("decoration ids = %v, want %v", got, want)
	}
	if got := c.IDs(level.Item); !reflect.DeepEqual(got, []string{"sword"}) {
		t.Fatalf("item ids = %v", got)
	}
}

func TestLoadCatalogFSRejectsBadEntries(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing_id", "name: Nameless\nkind: item\n"},
		{"unknown_kind", "id: ghost\nname: Ghost\nkind: spooky\n"},
		{"bad_yaml", "id: [\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fsys := fstest.MapFS{"bad.yaml": {Data: []byte(c.data)}}
			if _, err := LoadCatalogFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadCatalogFSRejectsDuplicateIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("id: crab\nname: A\nkind: item\n")},
		"b.yaml": {Data: []byte("id: crab\nname: B\nkind: item\n")},
	}
	if _, err := LoadCatalogFS(fsys); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestEmbeddedCatalogLoads(t *testing.T) {
	c, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load embedded catalog: %v", err)
	}
	if c.Len() == 0 {
		t.Fatalf("embedded catalog is empty")
	}
	if _, ok := c.Lookup("sproinger"); !ok {
		t.Fatalf("embedded catalog missing sproinger")
	}
}
