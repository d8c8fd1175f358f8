package refresh

import (
	"context"
	"log/slog"
	"time"

	"marketwatch/internal/domain/items"
	"marketwatch/internal/pkg/catalog"
	"marketwatch/internal/usecase/classify"
)

// Caller is the serialized gateway to the upstream. Do blocks until the
// queued call has run and returns that call's own error.
type Caller interface {
	Do(ctx context.Context, batchSize int, fn func(context.Context) error) error
}

// Due groups the ids that need a fetch, keyed by their current tier. Catalog
// ids with no record yet always land under Cold: their first fetch is due
// immediately.
type Due struct {
	Hot  []int64
	Mild []int64
	Cold []int64
}

func (d Due) Union() []int64 {
	out := make([]int64, 0, len(d.Hot)+len(d.Mild)+len(d.Cold))
	out = append(out, d.Hot...)
	out = append(out, d.Mild...)
	out = append(out, d.Cold...)
	return out
}

type Summary struct {
	Due     int
	Batches int
	Failed  int // batches abandoned whole
	Updated int
	Skipped int // ids missing from an otherwise good response
	Took    time.Duration
}

// Orchestrator decides which items are stale, drives rate-limited batch
// fetches, reclassifies and writes through to the store. Per item the state
// machine is never-fetched -> {cold|mild|hot} with a self-transition on every
// refresh; there is no persisted "fetching" state, the prior record stays
// untouched until the new one is ready.
type Orchestrator struct {
	Repo       items.Repo
	Fetcher    items.Fetcher
	Queue      Caller
	Classifier *classify.Classifier
	Catalog    []items.CatalogEntry
	Clock      func() time.Time
	Logger     *slog.Logger
}

func (o *Orchestrator) log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o *Orchestrator) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}

// DueForRefresh queries the store for records at or past their NextUpdate,
// grouped by current tier, plus every catalog id that has no record yet.
func (o *Orchestrator) DueForRefresh(ctx context.Context, now time.Time) (Due, error) {
	var d Due

	recs, err := o.Repo.QueryDue(ctx, now)
	if err != nil {
		return Due{}, err
	}
	for _, r := range recs {
		switch r.Classification {
		case items.TierHot:
			d.Hot = append(d.Hot, r.ID)
		case items.TierMild:
			d.Mild = append(d.Mild, r.ID)
		default:
			d.Cold = append(d.Cold, r.ID)
		}
	}

	known, err := o.Repo.IDs(ctx)
	if err != nil {
		return Due{}, err
	}
	have := make(map[int64]struct{}, len(known))
	for _, id := range known {
		have[id] = struct{}{}
	}
	for _, e := range o.Catalog {
		if _, ok := have[e.ID]; !ok {
			d.Cold = append(d.Cold, e.ID)
		}
	}
	return d, nil
}

// Refresh fetches ids in batches no larger than the upstream maximum,
// sequentially through the shared queue. A failed batch is logged and
// skipped whole: its records keep their stale data and past-due NextUpdate,
// so the next pass retries them. Successful batches are classified and
// upserted before the next batch is issued.
func (o *Orchestrator) Refresh(ctx context.Context, ids []int64) Summary {
	start := o.now()
	sum := Summary{Due: len(ids)}
	names := o.nameIndex()

	for bi, batch := range chunk(ids, o.Fetcher.MaxBatchSize()) {
		sum.Batches++

		var got map[int64]items.MarketSnapshot
		err := o.Queue.Do(ctx, len(batch), func(cctx context.Context) error {
			var ferr error
			got, ferr = o.Fetcher.FetchBatch(cctx, batch)
			return ferr
		})
		if err != nil {
			sum.Failed++
			o.log().Warn("batch fetch failed", "batch", bi, "size", len(batch), "err", err)
			continue
		}

		fetchedAt := o.now()
		for _, id := range batch {
			snap, ok := got[id]
			if !ok {
				sum.Skipped++
				o.log().Warn("id missing from upstream response", "id", id)
				continue
			}
			if !snap.HasData {
				snap = items.Placeholder()
			}

			tier := o.Classifier.Classify(snap)
			last := fetchedAt
			next := fetchedAt.Add(o.Classifier.IntervalFor(tier))
			rec := items.ItemRecord{
				ID:             id,
				Name:           names[id],
				MarketData:     snap,
				Classification: tier,
				LastUpdate:     &last,
				NextUpdate:     &next,
			}
			if err := o.Repo.Upsert(ctx, rec); err != nil {
				// best effort: a write failure must not take the pass down
				o.log().Warn("upsert failed", "id", id, "err", err)
				continue
			}
			sum.Updated++
		}
	}

	sum.Took = o.now().Sub(start)
	return sum
}

// RunScheduledPass unions all due tiers into one list and refreshes it.
// Tier membership only affects when an item becomes due, not how it is
// fetched.
func (o *Orchestrator) RunScheduledPass(ctx context.Context) (Summary, error) {
	due, err := o.DueForRefresh(ctx, o.now())
	if err != nil {
		return Summary{}, err
	}
	sum := o.Refresh(ctx, due.Union())
	o.log().Info("scheduled pass done\n" + FormatSummary(due, sum))
	return sum, nil
}

// Bootstrap runs the cold-start population over the full catalog. Callers
// run it in a goroutine: the serving API stays up and returns placeholder
// records for items that have not landed yet.
func (o *Orchestrator) Bootstrap(ctx context.Context) Summary {
	ids := catalog.IDs(o.Catalog)
	o.log().Info("bootstrap pass start", "catalog", len(ids))
	sum := o.Refresh(ctx, ids)
	o.log().Info("bootstrap pass done",
		"updated", sum.Updated, "failedBatches", sum.Failed, "skipped", sum.Skipped, "took", sum.Took)
	return sum
}

func (o *Orchestrator) nameIndex() map[int64]string {
	idx := make(map[int64]string, len(o.Catalog))
	for _, e := range o.Catalog {
		idx[e.ID] = e.DisplayName
	}
	return idx
}

func chunk(ids []int64, size int) [][]int64 {
	if size <= 0 {
		if len(ids) == 0 {
			return nil
		}
		return [][]int64{ids}
	}
	var out [][]int64
	for len(ids) > size {
		out = append(out, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}
