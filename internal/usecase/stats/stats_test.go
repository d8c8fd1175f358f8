package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketwatch/internal/adapter/gateway/memstore"
	"marketwatch/internal/domain/items"
	"marketwatch/internal/usecase/classify"
)

type brokenRepo struct {
	items.Repo
}

var errDown = errors.New("store unavailable")

func (brokenRepo) CountByTier(context.Context) (map[items.Tier]int, error) {
	return nil, errDown
}

func seed(t *testing.T, repo items.Repo, id int64, tier items.Tier) {
	t.Helper()
	now := time.Now()
	err := repo.Upsert(context.Background(), items.ItemRecord{
		ID:             id,
		MarketData:     items.MarketSnapshot{HasData: true},
		Classification: tier,
		LastUpdate:     &now,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestExecute_UnfetchedRemainderCountsAsCold(t *testing.T) {
	repo := memstore.New()
	seed(t, repo, 1, items.TierHot)
	seed(t, repo, 2, items.TierMild)
	seed(t, repo, 3, items.TierCold)

	uc := &Interactor{
		Repo:        repo,
		Classifier:  classify.New(classify.DefaultConfig()),
		WorldName:   "Phoenix",
		CatalogSize: 10,
	}
	out := uc.Execute(context.Background())

	if out.WorldName != "Phoenix" || out.TotalItems != 10 {
		t.Fatalf("out: %+v", out)
	}
	if out.PerTier[items.TierHot] != 1 || out.PerTier[items.TierMild] != 1 {
		t.Fatalf("per tier: %+v", out.PerTier)
	}
	// 1 persisted cold + 7 catalog entries never fetched
	if out.PerTier[items.TierCold] != 8 {
		t.Fatalf("cold=%d, want persisted plus unfetched remainder", out.PerTier[items.TierCold])
	}
}

func TestExecute_StoreFailure_WholeCatalogCold(t *testing.T) {
	uc := &Interactor{
		Repo:        brokenRepo{},
		Classifier:  classify.New(classify.DefaultConfig()),
		WorldName:   "Phoenix",
		CatalogSize: 5,
	}
	out := uc.Execute(context.Background())

	if out.TotalItems != 5 || out.PerTier[items.TierCold] != 5 {
		t.Fatalf("out: %+v", out)
	}
	if out.PerTier[items.TierHot] != 0 || out.PerTier[items.TierMild] != 0 {
		t.Fatalf("per tier: %+v", out.PerTier)
	}
}

func TestExecute_IntervalsMatchClassifier(t *testing.T) {
	cl := classify.New(classify.DefaultConfig())
	uc := &Interactor{
		Repo:        memstore.New(),
		Classifier:  cl,
		CatalogSize: 1,
	}
	out := uc.Execute(context.Background())

	for _, tier := range []items.Tier{items.TierHot, items.TierMild, items.TierCold} {
		if out.Intervals[tier] != cl.IntervalFor(tier) {
			t.Fatalf("%s: interval %v", tier, out.Intervals[tier])
		}
	}
}
