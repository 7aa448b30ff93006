package services

import (
	"itinerary-planner-service/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrioritizeByDistance(t *testing.T) {
	origin := domain.Coordinates{Lat: 0, Lon: 0}
	places := []domain.Place{
		{PlaceID: 1, Coordinates: domain.Coordinates{Lat: 0.3, Lon: 0}},
		{PlaceID: 2, Coordinates: domain.Coordinates{Lat: math.NaN(), Lon: 0}},
		{PlaceID: 3, Coordinates: domain.Coordinates{Lat: 0.1, Lon: 0}},
		{PlaceID: 4, Coordinates: domain.Coordinates{Lat: 0, Lon: 0.1}},
		{PlaceID: 5, Coordinates: domain.Coordinates{Lat: 0.2, Lon: 0}},
	}

	got := PrioritizeByDistance(places, origin)

	ids := make([]int, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.PlaceID)
	}
	// 3 and 4 tie; dataset order wins. Non-finite coordinates go last.
	assert.Equal(t, []int{3, 4, 5, 1, 2}, ids)

	// Input is untouched.
	assert.Equal(t, 1, places[0].PlaceID)
}

func TestPrioritizeByDistanceEmpty(t *testing.T) {
	assert.Empty(t, PrioritizeByDistance(nil, domain.Coordinates{}))
}
