package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"

	"go.uber.org/zap"
)

// SQLite-backed implementation of the PlaceRepository port.
type SqlitePlaceRepository struct {
	DB     *sql.DB
	Logger *zap.Logger
}

func NewSqlitePlaceRepository(db *sql.DB, logger *zap.Logger) *SqlitePlaceRepository {
	return &SqlitePlaceRepository{DB: db, Logger: logger}
}

// Return all places stored in the database, ordered by id.
func (s *SqlitePlaceRepository) ListPlaces(ctx context.Context) (_ []domain.Place, err error) {
	defer obs.Time(ctx, s.Logger, "sqlite.ListPlaces")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite place repository: DB is nil")
	}

	query := `
	SELECT
		place_id,
		name,
		category,
		lat,
		lon,
		visit_start,
		visit_end,
		spend_time_minutes,
		description
	FROM places
	ORDER BY place_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list places: query places table: %w", err)
	}
	defer rows.Close()

	places := make([]domain.Place, 0, 64)
	for rows.Next() {
		var (
			p     domain.Place
			spend sql.NullInt64
		)
		err := rows.Scan(
			&p.PlaceID, &p.Name, &p.Category,
			&p.Coordinates.Lat, &p.Coordinates.Lon,
			&p.VisitStart, &p.VisitEnd,
			&spend, &p.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("list places: scan row: %w", err)
		}
		if spend.Valid {
			m := int(spend.Int64)
			p.SpendTimeMinutes = &m
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list places: row iteration: %w", err)
	}

	return places, nil
}
