package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"net/http"
)

type directionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Instructions bool        `json:"instructions"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// fetchDirections retrieves one route from the OpenRouteService directions
// endpoint (/v2/directions/{profile}/geojson).
func (o *ORSRouteProvider) fetchDirections(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
	profile string,
) (ports.RouteResult, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, profile)

	payload, err := json.Marshal(directionsRequest{
		Coordinates:  [][]float64{from.CoordsToList(), to.CoordsToList()},
		Instructions: false,
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Features) == 0 {
		return ports.RouteResult{}, fmt.Errorf("directions response has no features: %w", domain.ErrNoGeometry)
	}

	feature := dr.Features[0]
	if len(feature.Geometry.Coordinates) == 0 {
		return ports.RouteResult{}, fmt.Errorf("directions feature has no coordinates: %w", domain.ErrNoGeometry)
	}

	// ORS returns [lon, lat] (optionally with elevation); keep domain order.
	geometry := make([]domain.Coordinates, 0, len(feature.Geometry.Coordinates))
	for i, c := range feature.Geometry.Coordinates {
		if len(c) < 2 {
			return ports.RouteResult{}, fmt.Errorf("invalid vertex #%d: %w", i, domain.ErrNoGeometry)
		}
		geometry = append(geometry, domain.Coordinates{Lon: c[0], Lat: c[1]})
	}

	return ports.RouteResult{
		DistanceKm:      feature.Properties.Summary.Distance / 1000.0,
		DurationSeconds: feature.Properties.Summary.Duration,
		Geometry:        geometry,
	}, nil
}
