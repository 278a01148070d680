// nursery-scout API service
//
// Authenticated HTTP/JSON API behind the web client:
//   - hunt CRUD (create / list / pause-resume / delete)
//   - scout trigger proxied to the scout worker
//   - found-item listing and mark-viewed
//   - dashboard summary with derived counts
//   - profile settings and the safety-checker stub
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
	"github.com/Vill-8/nursery-scout/internal/auth"
	"github.com/Vill-8/nursery-scout/internal/config"
	"github.com/Vill-8/nursery-scout/internal/dashboard"
	"github.com/Vill-8/nursery-scout/internal/db"
	"github.com/Vill-8/nursery-scout/internal/found"
	"github.com/Vill-8/nursery-scout/internal/hunt"
	"github.com/Vill-8/nursery-scout/internal/profile"
	"github.com/Vill-8/nursery-scout/internal/safety"
	"github.com/Vill-8/nursery-scout/internal/scout"
)

const version = "1.0.0"

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.LoadAPI()
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

	// ── Services and routes ──────────────────────────────────────────────────
	huntSvc := hunt.NewService(pool, rdb)
	foundSvc := found.NewService(pool)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	hunt.NewHandler(huntSvc, scout.NewClient(cfg.ScoutURL), scout.NewLocker(rdb)).RegisterRoutes(mux)
	found.NewHandler(foundSvc).RegisterRoutes(mux)
	dashboard.NewHandler(huntSvc, foundSvc).RegisterRoutes(mux)
	profile.NewHandler(profile.NewService(pool)).RegisterRoutes(mux)
	safety.NewHandler(safety.NewStubChecker()).RegisterRoutes(mux)

	handler := auth.Middleware(auth.NewValidator(cfg.JWTSecret))(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second, // scout trigger waits on the worker
	}

	go func() {
		slog.Info("api service listening", "version", version, "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server error", "err", err)
			os.Exit(1)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
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
		"service": "api",
		"version": version,
	})
}
