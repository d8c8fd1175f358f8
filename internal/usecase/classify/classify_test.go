package classify

import (
	"math/rand"
	"testing"

	"marketwatch/internal/domain/items"
)

func withSales(n int) items.MarketSnapshot {
	return items.MarketSnapshot{HasData: true, UnitsSold: n}
}

func TestClassify_NoData_AlwaysCold(t *testing.T) {
	c := New(Config{})
	for _, n := range []int{0, 50, 100000} {
		s := withSales(n)
		s.HasData = false
		if got := c.Classify(s); got != items.TierCold {
			t.Fatalf("hasData=false unitsSold=%d: got %s, want cold", n, got)
		}
	}
	if got := c.Classify(items.Placeholder()); got != items.TierCold {
		t.Fatalf("placeholder: got %s, want cold", got)
	}
}

func TestClassify_Boundaries(t *testing.T) {
	c := New(Config{ColdMax: 100, MildMax: 1000})
	cases := []struct {
		sold int
		want items.Tier
	}{
		{0, items.TierCold},
		{99, items.TierCold},
		{100, items.TierMild},
		{999, items.TierMild},
		{1000, items.TierHot},
		{1500, items.TierHot},
	}
	for _, tc := range cases {
		if got := c.Classify(withSales(tc.sold)); got != tc.want {
			t.Fatalf("unitsSold=%d: got %s, want %s", tc.sold, got, tc.want)
		}
	}
}

func TestClassify_NegativeSentinel_TreatedAsZero(t *testing.T) {
	c := New(Config{})
	s := withSales(items.NotAvailable)
	if got := c.Classify(s); got != items.TierCold {
		t.Fatalf("sentinel velocity: got %s, want cold", got)
	}
}

func TestClassify_RandomizedVelocityProperty(t *testing.T) {
	cfg := Config{ColdMax: 100, MildMax: 1000}
	c := New(cfg)
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		v := r.Intn(5000)
		got := c.Classify(withSales(v))
		var want items.Tier
		switch {
		case float64(v) < cfg.ColdMax:
			want = items.TierCold
		case float64(v) < cfg.MildMax:
			want = items.TierMild
		default:
			want = items.TierHot
		}
		if got != want {
			t.Fatalf("v=%d: got %s, want %s", v, got, want)
		}
	}
}

func TestIntervalFor_MonotoneWithVelocity(t *testing.T) {
	c := New(Config{})
	prev := c.IntervalFor(c.Classify(withSales(0)))
	for v := 1; v <= 2000; v += 7 {
		cur := c.IntervalFor(c.Classify(withSales(v)))
		if cur > prev {
			t.Fatalf("interval grew with velocity: v=%d %v > %v", v, cur, prev)
		}
		prev = cur
	}
}

func TestIntervalFor_UnknownTierDefaultsToCold(t *testing.T) {
	c := New(Config{})
	if c.IntervalFor(items.Tier("warm")) != c.IntervalFor(items.TierCold) {
		t.Fatal("unknown tier must fall back to the cold interval")
	}
}
