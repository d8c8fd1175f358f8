package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"marketwatch/internal/app"
	"marketwatch/internal/config"
	"marketwatch/internal/infra/logx"
)

func main() {
	_ = godotenv.Load()

	log := logx.New()
	slog.SetDefault(log)

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "err", err)
		os.Exit(1)
	}

	a.Start(ctx)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: a.Router,
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	log.Info("listening",
		"port", cfg.Port,
		"world", cfg.World,
		"store", cfg.StoreDriver,
		"version", config.Version)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
