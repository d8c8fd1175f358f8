package items

import (
	"context"
	"time"
)

// Repo is the durable keyed store for item records. Implementations must
// make Upsert atomic per id; readers tolerate eventual staleness.
type Repo interface {
	// Get returns nil, nil when no record exists for id.
	Get(ctx context.Context, id int64) (*ItemRecord, error)
	Upsert(ctx context.Context, rec ItemRecord) error
	IDs(ctx context.Context) ([]int64, error)
	All(ctx context.Context) ([]ItemRecord, error)
	QueryByTier(ctx context.Context, tier Tier) ([]ItemRecord, error)
	// QueryDue returns records whose NextUpdate is at or before now.
	QueryDue(ctx context.Context, now time.Time) ([]ItemRecord, error)
	CountByTier(ctx context.Context) (map[Tier]int, error)
}
