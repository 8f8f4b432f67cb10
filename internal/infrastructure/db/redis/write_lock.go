package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
	"github.com/studiodesk/schedule-system/internal/pkg/metrics"
)

const (
	defaultLockTTL  = 15 * time.Second
	defaultLockWait = 10 * time.Second
	lockRetryDelay  = 50 * time.Millisecond
)

// ErrLockTimeout is returned when the lock could not be taken within the wait
// bound.
var ErrLockTimeout = errors.New("write lock wait timed out")

// releaseScript deletes the lock only if this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var _ ports.WriteSerializer = (*WriteLock)(nil)

// WriteLock serializes worksheet writes across processes sharing one Redis.
// Key format: lock:worksheet:<key>
type WriteLock struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	log    zerolog.Logger
}

// NewWriteLock returns a lock whose entries expire after ttl. ttl must cover
// the longest write section; non-positive values fall back to defaults.
func NewWriteLock(client *redis.Client, ttl, wait time.Duration, log zerolog.Logger) *WriteLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if wait <= 0 {
		wait = defaultLockWait
	}
	return &WriteLock{client: client, ttl: ttl, wait: wait, log: log}
}

// Do takes the lock for key, runs fn and releases the lock.
func (l *WriteLock) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	token := uuid.NewString()
	lockKey := "lock:worksheet:" + key

	if err := l.acquire(ctx, lockKey, token); err != nil {
		return err
	}
	defer func() {
		// Release on a fresh context so a cancelled request still frees the key.
		releaseCtx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{lockKey}, token).Err(); err != nil {
			l.log.Warn().Err(err).Str("key", key).Msg("write lock release failed")
		}
	}()

	start := time.Now()
	defer func() {
		metrics.WriteDuration.WithLabelValues(key).Observe(time.Since(start).Seconds())
	}()
	return fn(ctx)
}

func (l *WriteLock) acquire(ctx context.Context, lockKey, token string) error {
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("acquire %s: %w: %v", lockKey, domain.ErrStoreUnavailable, err)
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%s: %w: %w", lockKey, domain.ErrStoreUnavailable, ErrLockTimeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
}
