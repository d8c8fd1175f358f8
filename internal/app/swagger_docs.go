//go:build !exclude_swagger
// +build !exclude_swagger

package app

// Response shapes for the Swagger examples.

type HealthResp struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	WorldName string            `json:"worldName"`
	Version   string            `json:"version"`
	Commit    string            `json:"commit"`
	BuildTime string            `json:"buildTime"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

type ItemsResp struct {
	Count int   `json:"count"`
	Items []any `json:"items"`
}

type BatchResp struct {
	Requested int   `json:"requested"`
	Count     int   `json:"count"`
	Items     []any `json:"items"`
}

type StatsResp struct {
	WorldName        string            `json:"worldName"`
	TotalItems       int               `json:"totalItems"`
	Classifications  map[string]int    `json:"classifications"`
	RefreshIntervals map[string]string `json:"refreshIntervals"`
}

// @title MarketWatch API
// @version 1.0
// @BasePath /
// @schemes http
// @description Market board snapshots for a fixed item catalog, refreshed by sale velocity.
// @contact.name API Support

// Health
// @Summary     Service readiness
// @Tags        public
// @Produce     json
// @Success     200 {object} HealthResp
// @Failure     503 {object} HealthResp
// @Router      /health [get]
func _doc_health() {}

// Items
// @Summary     All catalog items with their latest snapshots
// @Tags        public
// @Param       classification query string false "hot|mild|cold"
// @Produce     json
// @Success     200 {object} ItemsResp
// @Failure     400 {object} map[string]string
// @Router      /api/items [get]
func _doc_items() {}

// Item by id
// @Summary     Latest snapshot for one catalog item
// @Tags        public
// @Param       id path int true "item id" Example(5057)
// @Produce     json
// @Success     200 {object} any
// @Failure     404 {object} map[string]string
// @Router      /api/items/{id} [get]
func _doc_item() {}

// Item batch
// @Summary     Snapshots for a comma-separated id list
// @Tags        public
// @Param       ids path string true "comma-separated ids" Example(5057,5106)
// @Produce     json
// @Success     200 {object} BatchResp
// @Failure     400 {object} map[string]string
// @Router      /api/items/batch/{ids} [get]
func _doc_batch() {}

// Stats
// @Summary     Per-tier item counts and refresh cadence
// @Tags        public
// @Produce     json
// @Success     200 {object} StatsResp
// @Router      /api/stats [get]
func _doc_stats() {}

// Refresh
// @Summary     Trigger an immediate refresh pass over due items
// @Tags        admin
// @Produce     json
// @Success     200 {object} map[string]any
// @Failure     403 {object} map[string]string
// @Router      /api/refresh [post]
func _doc_refresh() {}
