package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every tunable of the service. Everything is overridable via
// environment, nothing requires a code change.
type Config struct {
	World string
	Port  string

	UpstreamBaseURL string
	UserAgent       string

	// fetch queue spacing
	BaseDelay time.Duration
	JitterMax time.Duration

	// upstream request shaping
	FetchTimeout  time.Duration
	MaxBatch      int
	ListingsLimit int
	EntriesLimit  int
	EntriesWithin time.Duration

	// classification policy
	ColdMax float64
	MildMax float64

	// per-tier refresh cadence
	HotInterval  time.Duration
	MildInterval time.Duration
	ColdInterval time.Duration

	UpdateTick time.Duration

	StoreDriver string // postgres | sqlite | memory
	PostgresDSN string
	SQLitePath  string

	CatalogPath string
}

func Load() Config {
	return Config{
		World: getenv("WORLD", "Phoenix"),
		Port:  getenv("PORT", "8080"),

		UpstreamBaseURL: getenv("UPSTREAM_BASE_URL", "https://universalis.app/api/v2"),
		UserAgent:       getenv("HTTP_USER_AGENT", AppName+"/"+Version),

		BaseDelay: getdur("FETCH_BASE_DELAY", time.Second),
		JitterMax: getdur("FETCH_JITTER_MAX", 500*time.Millisecond),

		FetchTimeout:  getdur("FETCH_TIMEOUT", 15*time.Second),
		MaxBatch:      getint("MAX_BATCH", 100),
		ListingsLimit: getint("LISTINGS_LIMIT", 10),
		EntriesLimit:  getint("ENTRIES_LIMIT", 25),
		EntriesWithin: getdur("ENTRIES_WITHIN", 7*24*time.Hour),

		ColdMax: getfloat("COLD_MAX", 100),
		MildMax: getfloat("MILD_MAX", 1000),

		HotInterval:  getdur("HOT_INTERVAL", 5*time.Minute),
		MildInterval: getdur("MILD_INTERVAL", 30*time.Minute),
		ColdInterval: getdur("COLD_INTERVAL", 2*time.Hour),

		UpdateTick: getdur("UPDATE_TICK", time.Minute),

		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", "sqlite")),
		PostgresDSN: os.Getenv("DB_DSN"),
		SQLitePath:  getenv("SQLITE_PATH", "marketwatch.db"),

		CatalogPath: os.Getenv("CATALOG_PATH"),
	}
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if x, err := time.ParseDuration(v); err == nil {
			return x
		}
	}
	return def
}

func getint(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if x, err := strconv.Atoi(v); err == nil {
			return x
		}
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			return x
		}
	}
	return def
}
