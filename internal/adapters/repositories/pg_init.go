package repositories

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/db"
)

var pgSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS places (
		place_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		visit_start TEXT NOT NULL DEFAULT '',
		visit_end TEXT NOT NULL DEFAULT '',
		spend_time_minutes INTEGER,
		description TEXT NOT NULL DEFAULT ''
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS route_cache (
		route_key TEXT PRIMARY KEY,
		distance_km DOUBLE PRECISION NOT NULL,
		duration_seconds DOUBLE PRECISION NOT NULL,
		geometry TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`,
}

// Initialize the Postgres schema. Statements are idempotent.
func InitPgSchema(ctx context.Context, q db.Querier) error {
	if q == nil {
		return errors.New("init pg schema: DB is nil")
	}

	for i, stmt := range pgSchema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init pg schema: exec statement #%d: %w", i+1, err)
		}
	}

	return nil
}

// Upsert places by id.
func SeedPgPlaces(ctx context.Context, q db.Querier, places []domain.Place) error {
	if q == nil {
		return errors.New("seed pg places: DB is nil")
	}

	if err := validateSeed(places); err != nil {
		return err
	}

	query := `
	INSERT INTO places (
		place_id, name, category, lat, lon, visit_start, visit_end, spend_time_minutes, description
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (place_id) DO UPDATE
	SET name = EXCLUDED.name,
		category = EXCLUDED.category,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		visit_start = EXCLUDED.visit_start,
		visit_end = EXCLUDED.visit_end,
		spend_time_minutes = EXCLUDED.spend_time_minutes,
		description = EXCLUDED.description;
	`

	for _, p := range places {
		_, err := q.Exec(ctx, query,
			p.PlaceID, p.Name, p.Category,
			p.Coordinates.Lat, p.Coordinates.Lon,
			p.VisitStart, p.VisitEnd,
			p.SpendTimeMinutes, p.Description,
		)
		if err != nil {
			return fmt.Errorf("seed pg places: upsert place_id=%d: %w", p.PlaceID, err)
		}
	}

	return nil
}
