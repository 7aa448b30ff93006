package repositories

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/db"
	"itinerary-planner-service/internal/platform/obs"

	"go.uber.org/zap"
)

// Postgres-backed implementation of the PlaceRepository port.
type PgPlaceRepository struct {
	DB     db.Querier
	Logger *zap.Logger
}

func NewPgPlaceRepository(q db.Querier, logger *zap.Logger) *PgPlaceRepository {
	return &PgPlaceRepository{DB: q, Logger: logger}
}

// Return all places ordered by id.
func (s *PgPlaceRepository) ListPlaces(ctx context.Context) (_ []domain.Place, err error) {
	defer obs.Time(ctx, s.Logger, "pg.ListPlaces")(&err)

	if s.DB == nil {
		return nil, errors.New("pg place repository: DB is nil")
	}

	rows, err := s.DB.Query(ctx, `
	SELECT place_id, name, category, lat, lon, visit_start, visit_end, spend_time_minutes, description
	FROM places
	ORDER BY place_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list places: query places table: %w", err)
	}
	defer rows.Close()

	places := make([]domain.Place, 0, 64)
	for rows.Next() {
		var (
			p     domain.Place
			spend *int32
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
		if spend != nil {
			m := int(*spend)
			p.SpendTimeMinutes = &m
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list places: row iteration: %w", err)
	}

	return places, nil
}
