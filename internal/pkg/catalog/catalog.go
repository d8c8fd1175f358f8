package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"marketwatch/internal/domain/items"
)

//go:embed default_catalog.json
var defaultCatalog []byte

// Load reads the item catalog from path, or the embedded default when path
// is empty. Entries are sorted by id; on duplicate ids the first entry wins.
func Load(path string) ([]items.CatalogEntry, error) {
	raw := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		raw = b
	}

	var entries []items.CatalogEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	seen := make(map[int64]struct{}, len(entries))
	out := make([]items.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID <= 0 {
			continue
		}
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Index builds an id lookup over the loaded entries.
func Index(entries []items.CatalogEntry) map[int64]items.CatalogEntry {
	idx := make(map[int64]items.CatalogEntry, len(entries))
	for _, e := range entries {
		idx[e.ID] = e
	}
	return idx
}

func IDs(entries []items.CatalogEntry) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
