package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"marketwatch/internal/domain/items"
)

// Repo keeps item records in a guarded map behind the same query surface as
// the SQL repos. It backs the `memory` store driver and the unit tests.
type Repo struct {
	mu   sync.RWMutex
	recs map[int64]items.ItemRecord
}

var _ items.Repo = (*Repo)(nil)

func New() *Repo {
	return &Repo{recs: make(map[int64]items.ItemRecord)}
}

func (r *Repo) Get(_ context.Context, id int64) (*items.ItemRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *Repo) Upsert(_ context.Context, rec items.ItemRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs[rec.ID] = rec
	return nil
}

func (r *Repo) IDs(_ context.Context) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int64, 0, len(r.recs))
	for id := range r.recs {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *Repo) All(_ context.Context) ([]items.ItemRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]items.ItemRecord, 0, len(r.recs))
	for _, rec := range r.recs {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repo) QueryByTier(_ context.Context, tier items.Tier) ([]items.ItemRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []items.ItemRecord
	for _, rec := range r.recs {
		if rec.Classification == tier {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repo) QueryDue(_ context.Context, now time.Time) ([]items.ItemRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []items.ItemRecord
	for _, rec := range r.recs {
		if rec.NextUpdate == nil || !rec.NextUpdate.After(now) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repo) CountByTier(_ context.Context) (map[items.Tier]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[items.Tier]int, 3)
	for _, rec := range r.recs {
		out[rec.Classification]++
	}
	return out, nil
}
