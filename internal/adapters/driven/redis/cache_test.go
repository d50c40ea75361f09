package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// setupTestRedis creates a miniredis-backed client.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr, func() {
		client.Close()
		mr.Close()
	}
}

func TestCachePutAndGet(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Put(ctx, "listing_11_3_2026", []byte(`["a","b"]`), time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := cache.Get(ctx, "listing_11_3_2026")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if string(got) != `["a","b"]` {
		t.Errorf("value = %q", got)
	}
}

func TestCacheMiss(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewCache(client)

	_, ok, err := cache.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected a miss")
	}
}

func TestCacheExpiry(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Put(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected entry to expire")
	}
}

func TestCacheZeroTTLNoOp(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Put(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Put: %v", err)
	}

	_, ok, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("zero TTL should not store anything")
	}
}

func TestCacheInvalidate(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Put(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.Invalidate(ctx, "key"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	_, ok, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected entry to be gone")
	}
}
