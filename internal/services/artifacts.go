package services

import (
	"encoding/json"
	"fmt"
	"itinerary-planner-service/internal/domain"
)

const (
	RouteArtifact     = "route.geojson"
	ItineraryArtifact = "itinerary.json"
)

type geoJSONGeometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

type geoJSONFeature struct {
	Type       string          `json:"type"`
	Geometry   geoJSONGeometry `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

// RenderRouteGeoJSON renders the start marker, one marker per stop and the
// stitched path as a GeoJSON FeatureCollection (coordinates in lon,lat).
func RenderRouteGeoJSON(it *domain.Itinerary) ([]byte, error) {
	features := make([]geoJSONFeature, 0, len(it.Entries)+2)

	features = append(features, geoJSONFeature{
		Type:       "Feature",
		Geometry:   geoJSONGeometry{Type: "Point", Coordinates: it.Start.CoordsToList()},
		Properties: map[string]any{"role": "start", "name": "Trip Starting Point"},
	})

	for _, e := range it.Entries {
		features = append(features, geoJSONFeature{
			Type:     "Feature",
			Geometry: geoJSONGeometry{Type: "Point", Coordinates: e.Place.Coordinates.CoordsToList()},
			Properties: map[string]any{
				"role":                      "stop",
				"order":                     e.Order,
				"name":                      e.Place.Name,
				"category":                  e.Place.Category,
				"visit_start":               e.Place.VisitStart,
				"visit_end":                 e.Place.VisitEnd,
				"spend_time_minutes":        e.VisitMinutes,
				"distance_from_previous_km": e.DistanceFromPreviousKm,
				"description":               e.Place.Description,
			},
		})
	}

	if len(it.Path) >= 2 {
		line := make([][]float64, 0, len(it.Path))
		for _, c := range it.Path {
			line = append(line, c.CoordsToList())
		}
		features = append(features, geoJSONFeature{
			Type:       "Feature",
			Geometry:   geoJSONGeometry{Type: "LineString", Coordinates: line},
			Properties: map[string]any{"role": "route", "skipped_legs": it.SkippedLegs},
		})
	}

	b, err := json.Marshal(geoJSONCollection{Type: "FeatureCollection", Features: features})
	if err != nil {
		return nil, fmt.Errorf("render route geojson: %w", err)
	}
	return b, nil
}

type itineraryDocStop struct {
	Order                  int     `json:"order"`
	Name                   string  `json:"name"`
	Category               string  `json:"category"`
	Time                   string  `json:"time"`
	SpendMinutes           float64 `json:"spend_minutes"`
	DistanceFromPreviousKm float64 `json:"distance_from_previous_km"`
	Description            string  `json:"description"`
}

type itineraryDoc struct {
	RunID       string             `json:"run_id"`
	TotalDays   int                `json:"total_days"`
	TotalHours  float64            `json:"total_hours"`
	HoursPerDay float64            `json:"hours_per_day"`
	TripDate    string             `json:"trip_date"`
	TotalPlaces int                `json:"total_places"`
	Stops       []itineraryDocStop `json:"stops"`
}

// RenderItineraryDocument renders the summary consumed by document renderers.
func RenderItineraryDocument(it *domain.Itinerary) ([]byte, error) {
	tripDate := it.TripDate
	if tripDate == "" {
		tripDate = "Not provided"
	}

	doc := itineraryDoc{
		RunID:       it.RunID,
		TotalDays:   it.Window.Days,
		TotalHours:  domain.Round2(it.Window.TotalHours),
		HoursPerDay: domain.Round2(it.Window.HoursPerDay),
		TripDate:    tripDate,
		TotalPlaces: len(it.Entries),
		Stops:       make([]itineraryDocStop, 0, len(it.Entries)),
	}

	for _, e := range it.Entries {
		timeStr := "N/A"
		if e.Place.VisitStart != "" && e.Place.VisitEnd != "" {
			timeStr = e.Place.VisitStart + " - " + e.Place.VisitEnd
		}
		doc.Stops = append(doc.Stops, itineraryDocStop{
			Order:                  e.Order,
			Name:                   e.Place.Name,
			Category:               e.Place.Category,
			Time:                   timeStr,
			SpendMinutes:           e.VisitMinutes,
			DistanceFromPreviousKm: e.DistanceFromPreviousKm,
			Description:            e.Place.Description,
		})
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render itinerary document: %w", err)
	}
	return b, nil
}
