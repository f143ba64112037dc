package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vigilsky/dronewatch/internal/api"
	"github.com/vigilsky/dronewatch/internal/config"
	"github.com/vigilsky/dronewatch/internal/dedrone"
	"github.com/vigilsky/dronewatch/internal/dispatch"
	"github.com/vigilsky/dronewatch/internal/engine"
	"github.com/vigilsky/dronewatch/internal/notify"
	"github.com/vigilsky/dronewatch/internal/zone"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cfgPath := flag.String("config", "configs/dronewatch.yaml", "Path to YAML config")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// ── Load config ──────────────────────────────────────────────────────────
	loader, err := config.NewLoader(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	cfg := loader.Config()
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}

	// ── Collaborators ─────────────────────────────────────────────────────────
	source := dedrone.NewClient(cfg.Dedrone.BaseURL, cfg.Dedrone.AuthHeader, cfg.Dedrone.AuthToken)
	notifier := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.APIBase)

	registry := zone.NewRegistry(cfg.Zones)
	dispatcher := dispatch.NewDispatcher(registry, notifier, cfg.Engine.ZoneParallelism)
	tracker := dispatch.NewTracker(source, dispatcher, dispatch.NewComposer())
	slog.Info("zone registry built", "zones", registry.Len())

	// ── Engine ────────────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := engine.New(ctx, tracker, cfg.Engine)

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	loader.OnChange(func(newCfg *config.Config) {
		if err := config.Validate(newCfg); err != nil {
			slog.Warn("hot-reload skipped: config invalid", "err", err)
			return
		}
		newRegistry := zone.NewRegistry(newCfg.Zones)
		dispatcher.SwapRegistry(newRegistry)
		slog.Info("zone registry hot-reloaded", "zones", newRegistry.Len())
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.New(eng, loader, dispatcher)
	srv := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	cancel() // stop workers
	eng.Shutdown()
	slog.Info("goodbye")
}
