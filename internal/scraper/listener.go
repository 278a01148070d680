package scraper

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Listener scouts newly created hunts immediately instead of leaving
// them to wait for the next cron tick. It consumes the API service's
// EVENT_HUNT_CREATED channel.
type Listener struct {
	pool   *pgxpool.Pool
	rdb    *redis.Client
	worker *Worker
}

// NewListener constructs a Listener.
func NewListener(pool *pgxpool.Pool, rdb *redis.Client, worker *Worker) *Listener {
	return &Listener{pool: pool, rdb: rdb, worker: worker}
}

// Run subscribes and processes events until ctx is cancelled. Intended
// to run in its own goroutine.
func (l *Listener) Run(ctx context.Context) {
	sub := l.rdb.Subscribe(ctx, "EVENT_HUNT_CREATED")
	defer sub.Close()

	slog.Info("hunt-created listener started")
	ch := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			slog.Info("hunt-created listener stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				slog.Info("hunt-created listener channel closed")
				return
			}
			l.handle(ctx, msg.Payload)
		}
	}
}

func (l *Listener) handle(ctx context.Context, payload string) {
	var event struct {
		HuntID string `json:"huntId"`
	}
	if err := json.Unmarshal([]byte(payload), &event); err != nil || event.HuntID == "" {
		slog.Warn("malformed EVENT_HUNT_CREATED payload", "payload", payload)
		return
	}

	hunt, err := GetHunt(ctx, l.pool, event.HuntID)
	if err != nil {
		slog.Warn("hunt from event not loadable", "huntId", event.HuntID, "err", err)
		return
	}

	if _, err := l.worker.Run(ctx, *hunt); err != nil {
		slog.Warn("event-triggered scout failed", "huntId", hunt.ID, "err", err)
	}
}
