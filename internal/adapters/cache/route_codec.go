package cache

import (
	"encoding/json"
	"fmt"
	"itinerary-planner-service/internal/domain"
)

// Geometry is persisted as a JSON array of [lon, lat] pairs, the same order
// the routing service uses on the wire.
func toPairs(geom []domain.Coordinates) [][]float64 {
	pairs := make([][]float64, 0, len(geom))
	for _, c := range geom {
		pairs = append(pairs, c.CoordsToList())
	}
	return pairs
}

func fromPairs(pairs [][]float64) ([]domain.Coordinates, error) {
	out := make([]domain.Coordinates, 0, len(pairs))
	for i, p := range pairs {
		if len(p) < 2 {
			return nil, fmt.Errorf("decode geometry: vertex #%d has %d components", i, len(p))
		}
		out = append(out, domain.Coordinates{Lon: p[0], Lat: p[1]})
	}
	return out, nil
}

func encodeGeometry(geom []domain.Coordinates) (string, error) {
	b, err := json.Marshal(toPairs(geom))
	if err != nil {
		return "", fmt.Errorf("encode geometry: %w", err)
	}
	return string(b), nil
}

func decodeGeometry(raw string) ([]domain.Coordinates, error) {
	var pairs [][]float64
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}
	return fromPairs(pairs)
}
