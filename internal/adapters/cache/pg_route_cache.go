package cache

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/platform/db"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PgRouteCache is a Postgres-backed cache for routed legs.
type PgRouteCache struct {
	DB     db.Querier
	Logger *zap.Logger
}

func NewPgRouteCache(q db.Querier, logger *zap.Logger) *PgRouteCache {
	return &PgRouteCache{DB: q, Logger: logger}
}

// Fetch a cached route by key.
func (s *PgRouteCache) Get(ctx context.Context, key string) (_ ports.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, s.Logger, "route.cache.pg.Get")(&err)

	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return ports.RouteResult{}, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT distance_km, duration_seconds, geometry
    FROM route_cache
    WHERE route_key = $1;
	`

	var (
		km, seconds float64
		raw         string
	)
	err = s.DB.QueryRow(ctx, q, key).Scan(&km, &seconds, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
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

// Store one routed leg.
func (s *PgRouteCache) Put(ctx context.Context, key string, r ports.RouteResult) (err error) {
	defer obs.Time(ctx, s.Logger, "route.cache.pg.Put")(&err)

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

	_, err = s.DB.Exec(ctx, `
	INSERT INTO route_cache (route_key, distance_km, duration_seconds, geometry)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (route_key) DO UPDATE
	SET distance_km = EXCLUDED.distance_km,
		duration_seconds = EXCLUDED.duration_seconds,
		geometry = EXCLUDED.geometry;
	`, key, r.DistanceKm, r.DurationSeconds, raw)
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
