package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"

	"obsidian-club/internal/logger"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, 24*time.Hour, logger.NewLogger()), mr
}

func TestReservedLifecycle(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	assert.False(t, store.Reserved(ctx, "s1"))

	store.MarkReserved(ctx, "s1")
	assert.True(t, store.Reserved(ctx, "s1"))

	// Other sessions are unaffected.
	assert.False(t, store.Reserved(ctx, "s2"))
}

func TestFlagExpiresWithTTL(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	store.MarkReserved(ctx, "s1")
	assert.Equal(t, 24*time.Hour, mr.TTL("chat_session:s1:reserved"))

	mr.FastForward(25 * time.Hour)
	assert.False(t, store.Reserved(ctx, "s1"))
}

func TestEmptySessionIDNeverReserves(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	store.MarkReserved(ctx, "")
	assert.False(t, store.Reserved(ctx, ""))
	assert.Empty(t, mr.Keys())
}

func TestRedisFailureDegradesOpen(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	store.MarkReserved(ctx, "s1")
	mr.Close()

	// A dead Redis must not block bookings.
	assert.False(t, store.Reserved(ctx, "s1"))
}
