package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/adapters/csvsource"
	"itinerary-planner-service/internal/domain"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPlacesQuery := `
	CREATE TABLE IF NOT EXISTS places (
		place_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		visit_start TEXT NOT NULL DEFAULT '',
		visit_end TEXT NOT NULL DEFAULT '',
		spend_time_minutes INTEGER,
		description TEXT NOT NULL DEFAULT ''
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
        route_key TEXT PRIMARY KEY,
        distance_km REAL NOT NULL,
        duration_seconds REAL NOT NULL,
        geometry TEXT NOT NULL
    );
	`

	statements := []string{
		createPlacesQuery,
		createRouteCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with places read from a CSV dataset.
// It returns the number of rows skipped as invalid.
func SeedFromCSV(db *sql.DB, csvPath string) (int, error) {
	places, report, err := csvsource.LoadFile(csvPath)
	if err != nil {
		return 0, fmt.Errorf("seed places: %w", err)
	}

	if err := SeedPlaces(db, places); err != nil {
		return 0, err
	}

	return report.Skipped(), nil
}

// Insert or replace places by id.
func SeedPlaces(db *sql.DB, places []domain.Place) error {
	if db == nil {
		return errors.New("seed places: DB is nil")
	}

	if err := validateSeed(places); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed places: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO places (
		place_id,
		name,
		category,
		lat,
		lon,
		visit_start,
		visit_end,
		spend_time_minutes,
		description
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed places: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range places {
		_, err := stmt.Exec(
			p.PlaceID, p.Name, p.Category,
			p.Coordinates.Lat, p.Coordinates.Lon,
			p.VisitStart, p.VisitEnd,
			spendArg(p.SpendTimeMinutes), p.Description,
		)
		if err != nil {
			return fmt.Errorf("seed places: insert place_id=%d: %w", p.PlaceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed places: commit tx: %w", err)
	}

	return nil
}

func validateSeed(places []domain.Place) error {
	for i, p := range places {
		if p.PlaceID <= 0 {
			return fmt.Errorf("seed places: invalid place_id at index %d: %d", i+1, p.PlaceID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("seed places: item at index %d: name cannot be empty", i+1)
		}
		if !p.Coordinates.Valid() {
			return fmt.Errorf("seed places: item at index %d: invalid coordinates", i+1)
		}
	}
	return nil
}

func spendArg(m *int) any {
	if m == nil {
		return nil
	}
	return *m
}
