package items

import "context"

// Fetcher retrieves current market snapshots for a batch of catalog ids.
// Ids missing from the returned map were not present in the upstream
// response; the caller decides what to do with them.
type Fetcher interface {
	Name() string
	// MaxBatchSize is the upstream's documented maximum ids per call.
	MaxBatchSize() int
	FetchBatch(ctx context.Context, ids []int64) (map[int64]MarketSnapshot, error)
}
