package stats

import (
	"context"
	"log/slog"
	"time"

	"marketwatch/internal/domain/items"
	"marketwatch/internal/usecase/classify"
)

type Output struct {
	WorldName  string
	TotalItems int
	PerTier    map[items.Tier]int
	Intervals  map[items.Tier]time.Duration
}

// Interactor computes per-tier item counts. Catalog entries without a
// persisted record count as cold, matching the placeholder-on-read rule.
// Store failures degrade to counting the whole catalog as cold rather than
// erroring: stats are advisory.
type Interactor struct {
	Repo        items.Repo
	Classifier  *classify.Classifier
	WorldName   string
	CatalogSize int
	Logger      *slog.Logger
}

func (uc *Interactor) log() *slog.Logger {
	if uc.Logger != nil {
		return uc.Logger
	}
	return slog.Default()
}

func (uc *Interactor) Execute(ctx context.Context) Output {
	counts, err := uc.Repo.CountByTier(ctx)
	if err != nil {
		uc.log().Warn("stats: count by tier failed", "err", err)
		counts = map[items.Tier]int{}
	}

	perTier := map[items.Tier]int{
		items.TierHot:  counts[items.TierHot],
		items.TierMild: counts[items.TierMild],
		items.TierCold: counts[items.TierCold],
	}
	fetched := perTier[items.TierHot] + perTier[items.TierMild] + perTier[items.TierCold]
	if unfetched := uc.CatalogSize - fetched; unfetched > 0 {
		perTier[items.TierCold] += unfetched
	}

	return Output{
		WorldName:  uc.WorldName,
		TotalItems: uc.CatalogSize,
		PerTier:    perTier,
		Intervals: map[items.Tier]time.Duration{
			items.TierHot:  uc.Classifier.IntervalFor(items.TierHot),
			items.TierMild: uc.Classifier.IntervalFor(items.TierMild),
			items.TierCold: uc.Classifier.IntervalFor(items.TierCold),
		},
	}
}
