package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/ports"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "route:"

type redisRoute struct {
	DistanceKm      float64     `json:"distance_km"`
	DurationSeconds float64     `json:"duration_seconds"`
	Geometry        [][]float64 `json:"geometry"`
}

// RedisRouteCache shares routed legs between instances with a TTL.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisRouteCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRouteCache{client: client, ttl: ttl, logger: logger}
}

func (r *RedisRouteCache) Get(ctx context.Context, key string) (ports.RouteResult, bool, error) {
	val, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("route cache get: %w", err)
	}

	var stored redisRoute
	if err := json.Unmarshal(val, &stored); err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("route cache decode key=%q: %w", key, err)
	}

	geom, err := fromPairs(stored.Geometry)
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("route cache decode key=%q: %w", key, err)
	}

	r.logger.Debug("route cache hit", zap.String("key", key))
	return ports.RouteResult{
		DistanceKm:      stored.DistanceKm,
		DurationSeconds: stored.DurationSeconds,
		Geometry:        geom,
	}, true, nil
}

func (r *RedisRouteCache) Put(ctx context.Context, key string, res ports.RouteResult) error {
	val, err := json.Marshal(redisRoute{
		DistanceKm:      res.DistanceKm,
		DurationSeconds: res.DurationSeconds,
		Geometry:        toPairs(res.Geometry),
	})
	if err != nil {
		return fmt.Errorf("route cache encode key=%q: %w", key, err)
	}

	if err := r.client.Set(ctx, redisKeyPrefix+key, val, r.ttl).Err(); err != nil {
		return fmt.Errorf("route cache set: %w", err)
	}

	r.logger.Debug("route cache set", zap.String("key", key), zap.Duration("ttl", r.ttl))
	return nil
}
