package ports

import (
	"context"
	"itinerary-planner-service/internal/domain"
)

// Port: a boundary for retrieving Place entities from a data source.
type PlaceRepository interface {
	// Retrieve all candidate places in a stable order.
	ListPlaces(ctx context.Context) ([]domain.Place, error)
}
