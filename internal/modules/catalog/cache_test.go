package catalog

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func setupTestCache(t *testing.T) *Cache {
	t.Helper()

	addr := os.Getenv("PHYSIO_REDIS_ADDR")
	if addr == "" {
		t.Skip("PHYSIO_REDIS_ADDR not set; skipping integration test")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() {
		rdb.Del(context.Background(), statusesKey, specialtiesKey)
		_ = rdb.Close()
	})
	rdb.Del(context.Background(), statusesKey, specialtiesKey)
	return NewCache(rdb, time.Minute)
}

func TestCache_StatusesRoundTrip(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	if _, ok := cache.GetStatuses(ctx); ok {
		t.Fatal("expected miss on empty cache")
	}

	want := []Status{{ID: 1, Name: "pending"}, {ID: 2, Name: "confirmed"}}
	cache.SetStatuses(ctx, want)

	got, ok := cache.GetStatuses(ctx)
	if !ok {
		t.Fatal("expected hit after set")
	}
	if len(got) != 2 || got[0].Name != "pending" || got[1].ID != 2 {
		t.Errorf("cached statuses = %+v", got)
	}
}

func TestCache_InvalidateSpecialties(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	cache.SetSpecialties(ctx, []Specialty{{ID: "s1", Name: "Physiotherapy", Slug: "physiotherapy"}})
	if _, ok := cache.GetSpecialties(ctx); !ok {
		t.Fatal("expected hit after set")
	}

	cache.InvalidateSpecialties(ctx)
	if _, ok := cache.GetSpecialties(ctx); ok {
		t.Error("expected miss after invalidation")
	}
}

func TestCache_NilClientFallsThrough(t *testing.T) {
	cache := NewCache(nil, time.Minute)
	ctx := context.Background()

	if _, ok := cache.GetStatuses(ctx); ok {
		t.Error("nil client should always miss")
	}
	cache.SetStatuses(ctx, []Status{{ID: 1, Name: "pending"}})
	cache.InvalidateSpecialties(ctx)
}
