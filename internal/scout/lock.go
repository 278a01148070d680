package scout

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// lockTTL bounds how long a hunt stays locked if the holder dies before
// releasing; normal scout cycles finish well within it.
const lockTTL = 2 * time.Minute

// Locker serialises scout runs per hunt via a Redis SETNX lock.
type Locker struct {
	rdb *redis.Client
}

// NewLocker returns a Locker backed by rdb.
func NewLocker(rdb *redis.Client) *Locker {
	return &Locker{rdb: rdb}
}

func lockKey(huntID string) string {
	return "scout:inflight:" + huntID
}

// TryLock attempts to take the in-flight lock for huntID. It returns
// false when another scout run already holds it.
func (l *Locker) TryLock(ctx context.Context, huntID string) (bool, error) {
	return l.rdb.SetNX(ctx, lockKey(huntID), "1", lockTTL).Result()
}

// Unlock releases the in-flight lock for huntID.
func (l *Locker) Unlock(ctx context.Context, huntID string) error {
	return l.rdb.Del(ctx, lockKey(huntID)).Err()
}
