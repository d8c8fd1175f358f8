package items

import "time"

// Tier describes refresh urgency derived from trading activity.
type Tier string

const (
	TierCold Tier = "cold"
	TierMild Tier = "mild"
	TierHot  Tier = "hot"
)

func ValidTier(s string) bool {
	switch Tier(s) {
	case TierCold, TierMild, TierHot:
		return true
	}
	return false
}

// NotAvailable marks counters and prices of a snapshot that holds no
// published market data yet.
const NotAvailable = -1

// CatalogEntry is a tracked item. The catalog is loaded once at process
// start and never mutated.
type CatalogEntry struct {
	ID          int64    `json:"id"`
	DisplayName string   `json:"displayName"`
	Tags        []string `json:"tags,omitempty"`
}

type Listing struct {
	PricePerUnit int64 `json:"pricePerUnit"`
	Quantity     int64 `json:"quantity"`
	Total        int64 `json:"total"`
	HQ           bool  `json:"hq"`
}

type Sale struct {
	PricePerUnit int64 `json:"pricePerUnit"`
	Quantity     int64 `json:"quantity"`
	Total        int64 `json:"total"`
	HQ           bool  `json:"hq"`
	Timestamp    int64 `json:"timestamp"` // unix seconds
}

type Prices struct {
	CurrentAverage float64 `json:"currentAverage"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
}

// MarketSnapshot is the parsed state of one item's market board.
// HasData=false is a valid terminal state ("nothing published"), not an error.
type MarketSnapshot struct {
	HasData        bool      `json:"hasData"`
	Listings       []Listing `json:"listings"`
	ListingsCount  int       `json:"listingsCount"`
	UnitsForSale   int       `json:"unitsForSale"`
	RecentSales    []Sale    `json:"recentSales"`
	UnitsSold      int       `json:"unitsSold"`
	Prices         Prices    `json:"prices"`
	LastUploadTime *int64    `json:"lastUploadTime"` // ms since epoch, nil until first upload
}

// Placeholder is the snapshot served for an item with no published data.
func Placeholder() MarketSnapshot {
	return MarketSnapshot{
		HasData:       false,
		Listings:      []Listing{},
		ListingsCount: NotAvailable,
		UnitsForSale:  NotAvailable,
		RecentSales:   []Sale{},
		UnitsSold:     NotAvailable,
		Prices:        Prices{CurrentAverage: NotAvailable, Min: NotAvailable, Max: NotAvailable},
	}
}

// ItemRecord is the persisted unit, one per catalog id. NextUpdate is always
// LastUpdate plus the interval of Classification, recomputed on every write.
type ItemRecord struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	MarketData     MarketSnapshot `json:"marketData"`
	Classification Tier           `json:"classification"`
	LastUpdate     *time.Time     `json:"lastUpdate"`
	NextUpdate     *time.Time     `json:"nextUpdate"`
}

// PlaceholderRecord synthesizes the "cold, never fetched" record for a
// catalog entry that has no persisted record yet.
func PlaceholderRecord(e CatalogEntry) ItemRecord {
	return ItemRecord{
		ID:             e.ID,
		Name:           e.DisplayName,
		MarketData:     Placeholder(),
		Classification: TierCold,
	}
}
