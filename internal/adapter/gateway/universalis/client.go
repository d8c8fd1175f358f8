package universalis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"marketwatch/internal/domain/items"
)

// Client talks to a Universalis-style market board API: one GET per batch of
// ids under /{world}/{id1,id2,...}. The response shape differs between
// single-id and multi-id calls; both are accepted.
//
// There is deliberately no retry here: failed batches are picked up again by
// the next scheduled pass.

const (
	DefaultBaseURL  = "https://universalis.app/api/v2"
	DefaultMaxBatch = 100
)

var ErrUnexpectedShape = errors.New("universalis: unrecognized response shape")

type Options struct {
	BaseURL       string
	World         string
	Timeout       time.Duration
	ListingsLimit int           // `listings` query cap
	EntriesLimit  int           // `entries` query cap
	EntriesWithin time.Duration // sale-history age bound; 0 omits the parameter
	MaxBatch      int
	UserAgent     string
}

type Client struct {
	rc  *resty.Client
	opt Options
}

var _ items.Fetcher = (*Client)(nil)

func New(opt Options) *Client {
	if opt.BaseURL == "" {
		opt.BaseURL = DefaultBaseURL
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 15 * time.Second
	}
	if opt.MaxBatch <= 0 {
		opt.MaxBatch = DefaultMaxBatch
	}
	if opt.ListingsLimit <= 0 {
		opt.ListingsLimit = 10
	}
	if opt.EntriesLimit <= 0 {
		opt.EntriesLimit = 25
	}
	rc := resty.New().
		SetBaseURL(opt.BaseURL).
		SetTimeout(opt.Timeout)
	if opt.UserAgent != "" {
		rc.SetHeader("User-Agent", opt.UserAgent)
	}
	return &Client{rc: rc, opt: opt}
}

func (c *Client) Name() string      { return "universalis" }
func (c *Client) World() string     { return c.opt.World }
func (c *Client) MaxBatchSize() int { return c.opt.MaxBatch }

func (c *Client) FetchBatch(ctx context.Context, ids []int64) (map[int64]items.MarketSnapshot, error) {
	if len(ids) == 0 {
		return map[int64]items.MarketSnapshot{}, nil
	}

	q := map[string]string{
		"listings": strconv.Itoa(c.opt.ListingsLimit),
		"entries":  strconv.Itoa(c.opt.EntriesLimit),
	}
	if c.opt.EntriesWithin > 0 {
		q["entriesWithin"] = strconv.Itoa(int(c.opt.EntriesWithin / time.Second))
	}

	res, err := c.rc.R().
		SetContext(ctx).
		SetQueryParams(q).
		Get("/" + url.PathEscape(c.opt.World) + "/" + joinIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("universalis: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("universalis: http %d: %s", res.StatusCode(), strings.TrimSpace(res.String()))
	}
	return parseBody(res.Body())
}

// wire shapes

type wireListing struct {
	PricePerUnit int64 `json:"pricePerUnit"`
	Quantity     int64 `json:"quantity"`
	Total        int64 `json:"total"`
	HQ           bool  `json:"hq"`
}

type wireSale struct {
	PricePerUnit int64 `json:"pricePerUnit"`
	Quantity     int64 `json:"quantity"`
	Total        int64 `json:"total"`
	HQ           bool  `json:"hq"`
	Timestamp    int64 `json:"timestamp"`
}

type wireItem struct {
	ItemID              int64         `json:"itemID"`
	HasData             bool          `json:"hasData"`
	Listings            []wireListing `json:"listings"`
	ListingsCount       int           `json:"listingsCount"`
	UnitsForSale        int           `json:"unitsForSale"`
	RecentHistory       []wireSale    `json:"recentHistory"`
	UnitsSold           int           `json:"unitsSold"`
	CurrentAveragePrice float64       `json:"currentAveragePrice"`
	MinPrice            float64       `json:"minPrice"`
	MaxPrice            float64       `json:"maxPrice"`
	LastUploadTime      *int64        `json:"lastUploadTime"`
}

type wireMulti struct {
	ItemIDs []int64             `json:"itemIDs"`
	Items   map[string]wireItem `json:"items"`
}

// parseBody accepts both upstream shapes: the {itemIDs, items} envelope for
// multi-id calls and a bare item object for single-id calls. An envelope
// whose items map is empty (every requested id unknown upstream) is valid
// and yields an empty result. Anything else fails the whole batch.
func parseBody(body []byte) (map[int64]items.MarketSnapshot, error) {
	var multi wireMulti
	if err := json.Unmarshal(body, &multi); err == nil && (len(multi.Items) > 0 || len(multi.ItemIDs) > 0) {
		out := make(map[int64]items.MarketSnapshot, len(multi.Items))
		for key, wi := range multi.Items {
			id := wi.ItemID
			if id == 0 {
				n, err := strconv.ParseInt(key, 10, 64)
				if err != nil {
					continue
				}
				id = n
			}
			out[id] = toSnapshot(wi)
		}
		return out, nil
	}

	var single wireItem
	if err := json.Unmarshal(body, &single); err == nil && single.ItemID != 0 {
		return map[int64]items.MarketSnapshot{single.ItemID: toSnapshot(single)}, nil
	}

	return nil, ErrUnexpectedShape
}

func toSnapshot(w wireItem) items.MarketSnapshot {
	ls := make([]items.Listing, 0, len(w.Listings))
	for _, l := range w.Listings {
		ls = append(ls, items.Listing(l))
	}
	ss := make([]items.Sale, 0, len(w.RecentHistory))
	for _, s := range w.RecentHistory {
		ss = append(ss, items.Sale(s))
	}
	return items.MarketSnapshot{
		HasData:       w.HasData,
		Listings:      ls,
		ListingsCount: w.ListingsCount,
		UnitsForSale:  w.UnitsForSale,
		RecentSales:   ss,
		UnitsSold:     w.UnitsSold,
		Prices: items.Prices{
			CurrentAverage: w.CurrentAveragePrice,
			Min:            w.MinPrice,
			Max:            w.MaxPrice,
		},
		LastUploadTime: w.LastUploadTime,
	}
}

func joinIDs(ids []int64) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(id, 10))
	}
	return b.String()
}
