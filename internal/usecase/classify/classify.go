package classify

import (
	"time"

	"marketwatch/internal/domain/items"
)

// Velocity policy: the units-sold counter over the recent-history window is
// the trading-activity metric. An item below ColdMax is cold, below MildMax
// mild, everything else hot.

type Config struct {
	ColdMax float64
	MildMax float64

	ColdInterval time.Duration
	MildInterval time.Duration
	HotInterval  time.Duration
}

func DefaultConfig() Config {
	return Config{
		ColdMax:      100,
		MildMax:      1000,
		ColdInterval: 2 * time.Hour,
		MildInterval: 30 * time.Minute,
		HotInterval:  5 * time.Minute,
	}
}

// Classifier maps market snapshots to tiers. Pure and deterministic, safe
// for concurrent use.
type Classifier struct {
	cfg Config
}

func New(cfg Config) *Classifier {
	def := DefaultConfig()
	if cfg.ColdMax <= 0 {
		cfg.ColdMax = def.ColdMax
	}
	if cfg.MildMax <= cfg.ColdMax {
		cfg.MildMax = def.MildMax
	}
	if cfg.ColdInterval <= 0 {
		cfg.ColdInterval = def.ColdInterval
	}
	if cfg.MildInterval <= 0 {
		cfg.MildInterval = def.MildInterval
	}
	if cfg.HotInterval <= 0 {
		cfg.HotInterval = def.HotInterval
	}
	return &Classifier{cfg: cfg}
}

func (c *Classifier) Classify(s items.MarketSnapshot) items.Tier {
	if !s.HasData {
		return items.TierCold
	}
	switch v := velocity(s); {
	case v < c.cfg.ColdMax:
		return items.TierCold
	case v < c.cfg.MildMax:
		return items.TierMild
	default:
		return items.TierHot
	}
}

// velocity coerces the units-sold counter to a number; the not-available
// sentinel and anything else negative count as zero.
func velocity(s items.MarketSnapshot) float64 {
	if s.UnitsSold < 0 {
		return 0
	}
	return float64(s.UnitsSold)
}

// IntervalFor is total over tiers; anything unrecognized refreshes at the
// cold cadence.
func (c *Classifier) IntervalFor(t items.Tier) time.Duration {
	switch t {
	case items.TierHot:
		return c.cfg.HotInterval
	case items.TierMild:
		return c.cfg.MildInterval
	default:
		return c.cfg.ColdInterval
	}
}
