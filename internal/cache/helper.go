package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"divespot/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// getJSON loads key into dest. Returns (false, nil) on a miss.
func getJSON(ctx context.Context, key string, dest any) (bool, error) {
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

func setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside serves dest from Redis when the key is present, otherwise runs fetch
// (which must populate dest) and stores the result with ttl. Lookups are
// counted per entity so hit rates show up in /metrics. A Redis failure falls
// through to fetch rather than failing the read; the store is best effort.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	found, err := getJSON(ctx, key, dest)
	if err == nil && found {
		middleware.CacheLookups.WithLabelValues(entityOf(key), "hit").Inc()
		return nil
	}
	middleware.CacheLookups.WithLabelValues(entityOf(key), "miss").Inc()

	if err := fetch(); err != nil {
		return err
	}
	_ = setJSON(ctx, key, dest, ttl)
	return nil
}

// entityOf derives the metric label from the key's prefix, "diver:<id>"
// becoming "diver".
func entityOf(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}
