package usecase

import (
	"context"
	"sync"
	"time"

	"lesson-market/pkg/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Throttler admits at most one event per window for a key.
type Throttler interface {
	Allow(ctx context.Context, key string) bool
}

// RedisThrottler shares the window across service instances with SET NX PX.
type RedisThrottler struct {
	client *redis.Client
	window time.Duration
	logger *logger.Logger
}

func NewRedisThrottler(client *redis.Client, window time.Duration, log *logger.Logger) *RedisThrottler {
	return &RedisThrottler{client: client, window: window, logger: log}
}

// Allow fails open when redis is unreachable.
func (t *RedisThrottler) Allow(ctx context.Context, key string) bool {
	ok, err := t.client.SetNX(ctx, "progress_throttle:"+key, 1, t.window).Result()
	if err != nil {
		if t.logger != nil {
			t.logger.Warn("progress throttle unavailable, allowing tick: %v", err)
		}
		return true
	}
	return ok
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalThrottler keeps one token bucket per key in process memory.
type LocalThrottler struct {
	mu      sync.Mutex
	window  time.Duration
	idle    time.Duration
	entries map[string]*localEntry
	swept   time.Time
	now     func() time.Time
}

func NewLocalThrottler(window time.Duration) *LocalThrottler {
	return &LocalThrottler{
		window:  window,
		idle:    10 * window,
		entries: make(map[string]*localEntry),
		now:     time.Now,
	}
}

func (t *LocalThrottler) Allow(_ context.Context, key string) bool {
	return t.AllowAt(key, t.now())
}

// AllowAt evaluates the key at an explicit instant.
func (t *LocalThrottler) AllowAt(key string, at time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Sweep at most once per idle period so a tick stays O(1).
	if at.Sub(t.swept) >= t.idle {
		t.evict(at)
		t.swept = at
	}

	entry, ok := t.entries[key]
	if !ok {
		entry = &localEntry{limiter: rate.NewLimiter(rate.Every(t.window), 1)}
		t.entries[key] = entry
	}
	entry.lastSeen = at
	return entry.limiter.AllowN(at, 1)
}

// evict drops keys that have been quiet for longer than the idle period.
func (t *LocalThrottler) evict(at time.Time) {
	for key, entry := range t.entries {
		if at.Sub(entry.lastSeen) > t.idle {
			delete(t.entries, key)
		}
	}
}

// Len reports the number of tracked keys.
func (t *LocalThrottler) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
