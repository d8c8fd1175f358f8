package sqlite_test

import (
	"context"
	"testing"
	"time"

	"marketwatch/internal/adapter/gateway/sqlite"
	"marketwatch/internal/domain/items"
	"marketwatch/internal/infra/store"
)

func newRepo(t *testing.T) *sqlite.ItemsRepo {
	t.Helper()
	db, err := store.OpenSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	repo, err := sqlite.NewItemsRepo(context.Background(), db, nil)
	if err != nil {
		t.Fatal(err)
	}
	return repo
}

func record(id int64, tier items.Tier, next time.Time) items.ItemRecord {
	last := next.Add(-time.Hour).UTC().Truncate(time.Second)
	next = next.UTC().Truncate(time.Second)
	upload := int64(1720000123456)
	return items.ItemRecord{
		ID:   id,
		Name: "Iron Ore",
		MarketData: items.MarketSnapshot{
			HasData:       true,
			Listings:      []items.Listing{{PricePerUnit: 120, Quantity: 99, Total: 11880}},
			ListingsCount: 1,
			UnitsForSale:  99,
			RecentSales:   []items.Sale{{PricePerUnit: 118, Quantity: 50, Total: 5900, Timestamp: 1720000000}},
			UnitsSold:     1500,
			Prices:        items.Prices{CurrentAverage: 119.5, Min: 110, Max: 130},
			LastUploadTime: &upload,
		},
		Classification: tier,
		LastUpdate:     &last,
		NextUpdate:     &next,
	}
}

func TestUpsert_RoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	want := record(5106, items.TierHot, time.Now())

	if err := repo.Upsert(ctx, want); err != nil {
		t.Fatal(err)
	}
	got, err := repo.Get(ctx, 5106)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("record not found after upsert")
	}
	if got.Name != want.Name || got.Classification != want.Classification {
		t.Fatalf("got %+v", got)
	}
	if got.MarketData.UnitsSold != 1500 || got.MarketData.Prices != want.MarketData.Prices {
		t.Fatalf("market data mangled: %+v", got.MarketData)
	}
	if !got.LastUpdate.Equal(*want.LastUpdate) || !got.NextUpdate.Equal(*want.NextUpdate) {
		t.Fatalf("timestamps mangled: %v %v", got.LastUpdate, got.NextUpdate)
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	rec := record(1, items.TierMild, time.Now())

	_ = repo.Upsert(ctx, rec)
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatal(err)
	}
	ids, err := repo.IDs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 {
		t.Fatalf("double upsert produced %d rows", len(ids))
	}
}

func TestGet_Missing(t *testing.T) {
	repo := newRepo(t)
	got, err := repo.Get(context.Background(), 404)
	if err != nil || got != nil {
		t.Fatalf("got %v, %v; want nil, nil", got, err)
	}
}

func TestQueryDue_And_Tiers(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	now := time.Now()

	_ = repo.Upsert(ctx, record(1, items.TierHot, now.Add(-time.Minute)))
	_ = repo.Upsert(ctx, record(2, items.TierMild, now.Add(-time.Second)))
	_ = repo.Upsert(ctx, record(3, items.TierCold, now.Add(time.Hour)))

	due, err := repo.QueryDue(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 2 || due[0].ID != 1 || due[1].ID != 2 {
		t.Fatalf("due=%+v", due)
	}

	hot, err := repo.QueryByTier(ctx, items.TierHot)
	if err != nil {
		t.Fatal(err)
	}
	if len(hot) != 1 || hot[0].ID != 1 {
		t.Fatalf("hot=%+v", hot)
	}

	counts, err := repo.CountByTier(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts[items.TierHot] != 1 || counts[items.TierMild] != 1 || counts[items.TierCold] != 1 {
		t.Fatalf("counts=%v", counts)
	}
}

func TestAll_SortedByID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	for _, id := range []int64{30, 10, 20} {
		_ = repo.Upsert(ctx, record(id, items.TierCold, time.Now()))
	}
	all, err := repo.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != 10 || all[1].ID != 20 || all[2].ID != 30 {
		t.Fatalf("all=%+v", all)
	}
}
