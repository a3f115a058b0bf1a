// README: Redis cache for hot catalog lookups (statuses, specialties).
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statusesKey    = "catalog:statuses"
	specialtiesKey = "catalog:specialties"
)

// Cache keeps the small, frequently-read lookup lists in Redis so the
// booking UI does not hammer Postgres for near-static data. A miss or a
// Redis failure falls back to the store.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) GetStatuses(ctx context.Context) ([]Status, bool) {
	var out []Status
	return out, c.get(ctx, statusesKey, &out)
}

func (c *Cache) SetStatuses(ctx context.Context, statuses []Status) {
	c.set(ctx, statusesKey, statuses)
}

func (c *Cache) GetSpecialties(ctx context.Context) ([]Specialty, bool) {
	var out []Specialty
	return out, c.get(ctx, specialtiesKey, &out)
}

func (c *Cache) SetSpecialties(ctx context.Context, specialties []Specialty) {
	c.set(ctx, specialtiesKey, specialties)
}

// InvalidateSpecialties drops the cached list after any specialty write.
func (c *Cache) InvalidateSpecialties(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, specialtiesKey)
}

func (c *Cache) get(ctx context.Context, key string, v interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(payload, v) == nil
}

func (c *Cache) set(ctx context.Context, key string, v interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, payload, c.ttl)
}
