// README: Redis-backed cache in front of a Router.
package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"carshare/internal/metrics"
	"carshare/internal/types"
)

// Cache stores route estimates by key.
type Cache interface {
	Get(ctx context.Context, key string) (RouteEstimate, bool, error)
	Set(ctx context.Context, key string, est RouteEstimate) error
}

type RouteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRouteCache(rdb *redis.Client, ttl time.Duration) *RouteCache {
	return &RouteCache{rdb: rdb, ttl: ttl}
}

func (c *RouteCache) Get(ctx context.Context, key string) (RouteEstimate, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return RouteEstimate{}, false, nil
	}
	if err != nil {
		return RouteEstimate{}, false, err
	}
	var est RouteEstimate
	if err := json.Unmarshal(raw, &est); err != nil {
		return RouteEstimate{}, false, fmt.Errorf("decoding cached route: %w", err)
	}
	return est, true, nil
}

func (c *RouteCache) Set(ctx context.Context, key string, est RouteEstimate) error {
	raw, err := json.Marshal(est)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

// CachedRouter consults the cache before the wrapped Router. Cache failures
// are logged and fall through to the Router.
type CachedRouter struct {
	next  Router
	cache Cache
	log   *slog.Logger
}

func NewCachedRouter(next Router, cache Cache, log *slog.Logger) *CachedRouter {
	return &CachedRouter{next: next, cache: cache, log: log}
}

func (r *CachedRouter) Estimate(ctx context.Context, origin, destination types.Point, departure time.Time) (RouteEstimate, error) {
	key := cacheKey(origin, destination, departure)
	est, ok, err := r.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.RouteLookups.WithLabelValues("error").Inc()
		r.log.Warn("route cache read failed", "key", key, "error", err)
	case ok:
		metrics.RouteLookups.WithLabelValues("hit").Inc()
		return est, nil
	default:
		metrics.RouteLookups.WithLabelValues("miss").Inc()
	}

	est, err = r.next.Estimate(ctx, origin, destination, departure)
	if err != nil {
		return RouteEstimate{}, err
	}
	if err := r.cache.Set(ctx, key, est); err != nil {
		r.log.Warn("route cache write failed", "key", key, "error", err)
	}
	return est, nil
}

// cacheKey buckets departures by the hour.
func cacheKey(origin, destination types.Point, departure time.Time) string {
	return fmt.Sprintf("route:%s:%s:%d", origin, destination, departure.Truncate(time.Hour).Unix())
}
