package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"strings"

	"go.uber.org/zap"
)

// SQLite backed cache for routed legs.
// Keys are expected to be normalized by the caller (see routing.CacheKey).
type SqliteRouteCache struct {
	DB     *sql.DB
	Logger *zap.Logger
}

func NewSqliteRouteCache(db *sql.DB, logger *zap.Logger) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db, Logger: logger}
}

// Fetch a cached route by key.
func (s *SqliteRouteCache) Get(ctx context.Context, key string) (_ ports.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, s.Logger, "route.cache.sqlite.Get")(&err)

	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return ports.RouteResult{}, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT distance_km, duration_seconds, geometry
    FROM route_cache
    WHERE route_key = ?;
	`

	var (
		km, seconds float64
		raw         string
	)
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&km, &seconds, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	geom, err := decodeGeometry(raw)
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}

	return ports.RouteResult{DistanceKm: km, DurationSeconds: seconds, Geometry: geom}, true, nil
}

// Store one routed leg, replacing any previous entry.
func (s *SqliteRouteCache) Put(ctx context.Context, key string, r ports.RouteResult) (err error) {
	defer obs.Time(ctx, s.Logger, "route.cache.sqlite.Put")(&err)

	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	raw, err := encodeGeometry(r.Geometry)
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO route_cache (
        route_key,
        distance_km,
        duration_seconds,
        geometry
    )
    VALUES (?, ?, ?, ?)
	`, key, r.DistanceKm, r.DurationSeconds, raw)
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
