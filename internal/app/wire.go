package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	httpctrl "marketwatch/internal/adapter/controller/http"
	"marketwatch/internal/adapter/gateway/dbping"
	"marketwatch/internal/adapter/gateway/memstore"
	pgrepo "marketwatch/internal/adapter/gateway/postgres"
	sqliterepo "marketwatch/internal/adapter/gateway/sqlite"
	"marketwatch/internal/adapter/gateway/universalis"
	"marketwatch/internal/config"
	domain "marketwatch/internal/domain/health"
	"marketwatch/internal/domain/items"
	"marketwatch/internal/infra/fetchq"
	httpinfra "marketwatch/internal/infra/http"
	"marketwatch/internal/infra/http/mw/adminauth"
	"marketwatch/internal/infra/scheduler"
	"marketwatch/internal/infra/store"
	"marketwatch/internal/pkg/catalog"
	"marketwatch/internal/usecase/classify"
	usehealth "marketwatch/internal/usecase/health"
	"marketwatch/internal/usecase/refresh"
	"marketwatch/internal/usecase/stats"
)

// App is the fully wired service: the HTTP engine plus the background
// refresh machinery behind it.
type App struct {
	Router    *gin.Engine
	Scheduler *scheduler.AutoUpdater
	Orch      *refresh.Orchestrator
}

// Start launches the background pieces: an initial full-catalog pass and
// the due-item scheduler. The HTTP engine is run by the caller.
func (a *App) Start(ctx context.Context) {
	go a.Orch.Bootstrap(ctx)
	a.Scheduler.Start(ctx)
}

func Build(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var (
		repo    items.Repo
		pingers []domain.Pinger
	)
	switch cfg.StoreDriver {
	case "postgres":
		db, err := store.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		r, err := pgrepo.NewItemsRepo(ctx, db, log)
		if err != nil {
			return nil, fmt.Errorf("init postgres schema: %w", err)
		}
		repo = r
		pingers = append(pingers, dbping.DBPing{DB: db, Driver: "postgres"})
	case "sqlite":
		db, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		r, err := sqliterepo.NewItemsRepo(ctx, db, log)
		if err != nil {
			return nil, fmt.Errorf("init sqlite schema: %w", err)
		}
		repo = r
		pingers = append(pingers, dbping.DBPing{DB: db, Driver: "sqlite"})
	case "memory":
		repo = memstore.New()
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	classifier := classify.New(classify.Config{
		ColdMax:      cfg.ColdMax,
		MildMax:      cfg.MildMax,
		ColdInterval: cfg.ColdInterval,
		MildInterval: cfg.MildInterval,
		HotInterval:  cfg.HotInterval,
	})

	fetcher := universalis.New(universalis.Options{
		BaseURL:       cfg.UpstreamBaseURL,
		World:         cfg.World,
		Timeout:       cfg.FetchTimeout,
		ListingsLimit: cfg.ListingsLimit,
		EntriesLimit:  cfg.EntriesLimit,
		EntriesWithin: cfg.EntriesWithin,
		MaxBatch:      cfg.MaxBatch,
		UserAgent:     cfg.UserAgent,
	})

	queue := fetchq.New(cfg.BaseDelay, cfg.JitterMax, cfg.MaxBatch, log)

	orch := &refresh.Orchestrator{
		Repo:       repo,
		Fetcher:    fetcher,
		Queue:      queue,
		Classifier: classifier,
		Catalog:    cat,
		Logger:     log,
	}

	build := config.NewBuildInfo()
	healthUC := &usehealth.ReadinessInteractor{
		Pingers:   pingers,
		WorldName: cfg.World,
		Version:   build.Version,
		Commit:    build.Commit,
		BuildTime: build.BuildTime,
		StartedAt: build.StartedAt,
		Clock:     usehealth.SysClock{},
		Timeout:   500 * time.Millisecond,
	}

	statsUC := &stats.Interactor{
		Repo:        repo,
		Classifier:  classifier,
		WorldName:   cfg.World,
		CatalogSize: len(cat),
		Logger:      log,
	}

	router := httpinfra.NewRouter(log)
	httpctrl.NewHealthController(httpctrl.ReadinessRunner{UC: healthUC}).Register(router)
	httpctrl.NewItemsController(repo, cat, log).Register(router)
	httpctrl.NewStatsController(statsUC).Register(router)

	admin := adminauth.NewFromEnv()
	refreshCtrl := httpctrl.NewRefreshController(orch)
	if admin.Enabled() {
		refreshCtrl.Register(router, admin.Handler())
	} else {
		refreshCtrl.Register(router)
	}

	sched := &scheduler.AutoUpdater{
		Orchestrator: orch,
		Tick:         cfg.UpdateTick,
		Logger:       log,
	}

	return &App{Router: router, Scheduler: sched, Orch: orch}, nil
}
