package ports

import (
	"context"
	"itinerary-planner-service/internal/domain"
)

// Travel distance, duration and path geometry between two coordinates.
// Geometry is in visiting order; it is never empty on success.
type RouteResult struct {
	DistanceKm      float64
	DurationSeconds float64
	Geometry        []domain.Coordinates
}

// Contract for the external routing collaborator.
// Any transport failure, non-success status or payload lacking geometry
// is reported as an error; callers treat every error the same way.
type RouteProvider interface {
	Route(ctx context.Context, from, to domain.Coordinates, profile string) (RouteResult, error)
}
