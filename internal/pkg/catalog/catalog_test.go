package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmbeddedDefault(t *testing.T) {
	entries, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Fatal("embedded catalog is empty")
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].ID <= entries[i-1].ID {
			t.Fatalf("catalog not sorted/deduped at %d: %d, %d", i, entries[i-1].ID, entries[i].ID)
		}
	}
	idx := Index(entries)
	if len(idx) != len(entries) {
		t.Fatalf("index size %d != %d", len(idx), len(entries))
	}
}

func TestLoad_FileOverride_DedupesAndSorts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	body := `[
		{"id": 3, "displayName": "C"},
		{"id": 1, "displayName": "A"},
		{"id": 3, "displayName": "C again"},
		{"id": 0, "displayName": "invalid"},
		{"id": 2, "displayName": "B"}
	]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].ID != 1 || entries[1].ID != 2 || entries[2].ID != 3 {
		t.Fatalf("bad order: %+v", entries)
	}
	if entries[2].DisplayName != "C" {
		t.Fatalf("duplicate should keep first entry, got %q", entries[2].DisplayName)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for a missing catalog file")
	}
}

func TestIDs(t *testing.T) {
	entries, _ := Load("")
	ids := IDs(entries)
	if len(ids) != len(entries) || ids[0] != entries[0].ID {
		t.Fatalf("ids=%v", ids)
	}
}
