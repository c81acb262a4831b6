package usecase

import (
	"context"
	"testing"
	"time"

	"lesson-market/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalThrottler_OneWritePerWindow(t *testing.T) {
	throttler := NewLocalThrottler(3 * time.Second)
	start := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	var allowed []int
	for s := 0; s <= 5; s++ {
		if throttler.AllowAt("session-1", start.Add(time.Duration(s)*time.Second)) {
			allowed = append(allowed, s)
		}
	}

	assert.Equal(t, []int{0, 3}, allowed)
}

func TestLocalThrottler_KeysAreIndependent(t *testing.T) {
	throttler := NewLocalThrottler(3 * time.Second)
	at := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, throttler.AllowAt("a", at))
	assert.True(t, throttler.AllowAt("b", at))
	assert.False(t, throttler.AllowAt("a", at.Add(time.Second)))
}

func TestLocalThrottler_EvictsIdleKeys(t *testing.T) {
	throttler := NewLocalThrottler(time.Second)
	at := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	throttler.AllowAt("old", at)
	assert.Equal(t, 1, throttler.Len())

	throttler.AllowAt("new", at.Add(time.Minute))
	assert.Equal(t, 1, throttler.Len())
}

func TestLocalThrottler_SweepsOncePerIdlePeriod(t *testing.T) {
	throttler := NewLocalThrottler(time.Second)
	at := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	throttler.AllowAt("old", at)
	throttler.AllowAt("mid", at.Add(9*time.Second))
	assert.Equal(t, 2, throttler.Len())

	// The idle period has passed since the last sweep: "old" goes, "mid" stays.
	throttler.AllowAt("new", at.Add(15*time.Second))
	assert.Equal(t, 2, throttler.Len())

	// "mid" is idle now but the next sweep is not due yet.
	throttler.AllowAt("late", at.Add(20*time.Second))
	assert.Equal(t, 3, throttler.Len())

	throttler.AllowAt("last", at.Add(25*time.Second))
	assert.Equal(t, 3, throttler.Len())
}

func TestRedisThrottler(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	throttler := NewRedisThrottler(client, 3*time.Second, logger.New())
	ctx := context.Background()

	assert.True(t, throttler.Allow(ctx, "session-1"))
	assert.False(t, throttler.Allow(ctx, "session-1"))
	assert.True(t, throttler.Allow(ctx, "session-2"))

	mr.FastForward(3 * time.Second)
	assert.True(t, throttler.Allow(ctx, "session-1"))
}

func TestRedisThrottler_FailsOpen(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	throttler := NewRedisThrottler(client, 3*time.Second, logger.New())
	assert.True(t, throttler.Allow(context.Background(), "session-1"))
	assert.True(t, throttler.Allow(context.Background(), "session-1"))
}
