package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"econfetcher/internal/api"
	"econfetcher/internal/config"
	"econfetcher/internal/orchestrator"
	"econfetcher/internal/registry"
	"econfetcher/internal/scheduler"
	"econfetcher/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("received interrupt signal, shutting down")
		cancel()
	}()

	// Build fetchers from the indicator registry
	fetchers, err := registry.Build(registry.Default(), cfg)
	if err != nil {
		log.Fatalf("Failed to build fetchers: %v", err)
	}

	mergeStore := store.New(cfg.DataFile)
	orch := orchestrator.New(fetchers, mergeStore)

	// Bootstrap: run one cycle at startup so the store is populated before
	// the first scheduled tick. A failed bootstrap is logged, not fatal;
	// the scheduler will try again.
	changed, err := orch.Run(ctx)
	if err != nil {
		slog.Error("initial update failed", "error", err)
	} else {
		slog.Info("initial update complete", "updated", len(changed))
	}

	// Scheduled updates
	sched := scheduler.New(orch, cfg.UpdateInterval)
	go sched.Start(ctx)

	// HTTP API
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: api.Router(mergeStore, orch),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("serving", "port", cfg.Port, "interval", cfg.UpdateInterval)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
