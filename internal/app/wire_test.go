package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"marketwatch/internal/config"
)

func memConfig() config.Config {
	cfg := config.Load()
	cfg.StoreDriver = "memory"
	cfg.World = "Phoenix"
	return cfg
}

func TestBuild_MemoryDriver_ServesHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	a, err := Build(context.Background(), memConfig(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	a.Router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body struct {
		Status    string `json:"status"`
		WorldName string `json:"worldName"`
		Uptime    string `json:"uptime"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.WorldName != "Phoenix" {
		t.Fatalf("body: %+v", body)
	}
	if body.Uptime == "" {
		t.Fatal("uptime missing, StartedAt not wired")
	}
}

func TestBuild_MemoryDriver_ServesStats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	a, err := Build(context.Background(), memConfig(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/stats", nil)
	a.Router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body struct {
		TotalItems      int            `json:"totalItems"`
		Classifications map[string]int `json:"classifications"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	// nothing fetched yet: the whole embedded catalog counts as cold
	if body.TotalItems == 0 || body.Classifications["cold"] != body.TotalItems {
		t.Fatalf("body: %+v", body)
	}
}

func TestBuild_UnknownDriver(t *testing.T) {
	cfg := memConfig()
	cfg.StoreDriver = "oracle"
	if _, err := Build(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unknown store driver")
	}
}
