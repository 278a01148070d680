// nursery-scout scout worker
//
// Internal service that searches marketplaces for listings matching
// hunts and feeds the found_items table. Three triggers share one
// Worker:
//   - POST /api/scout from the API service ("Scout Now")
//   - a cron cycle over every active hunt
//   - EVENT_HUNT_CREATED, so new hunts get scouted right away
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vill-8/nursery-scout/internal/api"
	"github.com/Vill-8/nursery-scout/internal/config"
	"github.com/Vill-8/nursery-scout/internal/db"
	"github.com/Vill-8/nursery-scout/internal/scheduler"
	"github.com/Vill-8/nursery-scout/internal/scraper"
)

const version = "1.0.0"

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.LoadWorker()
	if err != nil {
		slog.Error("config error", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.Info("connecting to PostgreSQL")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("postgres connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	slog.Info("connecting to Redis")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("redis connect failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	worker := scraper.NewWorker(pool, rdb,
		scraper.EbayFetcher{},
		scraper.GoogleShoppingFetcher{},
	)

	sched := scheduler.New(pool, worker, cfg.ScoutIntervalHours)
	if err := sched.Start(ctx); err != nil {
		slog.Error("scheduler start failed", "err", err)
		os.Exit(1)
	}
	defer sched.Stop()

	go scraper.NewListener(pool, rdb, worker).Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	scraper.NewHandler(pool, worker).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second, // a scout cycle runs inside the request
	}

	go func() {
		slog.Info("scout worker listening", "version", version, "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
	}
	slog.Info("stopped")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "scout-worker",
		"version": version,
	})
}
