package services

import (
	"itinerary-planner-service/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApproxDistance(t *testing.T) {
	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 3, Lon: 4}

	assert.InDelta(t, 5.0, ApproxDistance(a, b), 1e-9)
	assert.InDelta(t, 555.0, FallbackDistanceKm(a, b), 1e-9)
	assert.Zero(t, ApproxDistance(a, a))
}

func TestApproxDistanceNonFiniteSortsLast(t *testing.T) {
	a := domain.Coordinates{Lat: 0, Lon: 0}
	bad := domain.Coordinates{Lat: math.NaN(), Lon: 1}

	assert.Equal(t, unreachableDistance, ApproxDistance(a, bad))
	assert.Equal(t, unreachableDistance, ApproxDistance(a, domain.Coordinates{Lat: math.Inf(1)}))
}

func TestHaversineKm(t *testing.T) {
	// One degree of latitude along a meridian.
	d := HaversineKm(domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 1, Lon: 0})
	assert.InDelta(t, 111.19, d, 0.01)

	paris := domain.Coordinates{Lat: 48.8566, Lon: 2.3522}
	london := domain.Coordinates{Lat: 51.5074, Lon: -0.1278}
	assert.InDelta(t, 343.5, HaversineKm(paris, london), 1.0)
}

func TestRoutable(t *testing.T) {
	origin := domain.Coordinates{Lat: 0, Lon: 0}

	assert.True(t, Routable(origin, domain.Coordinates{Lat: 10, Lon: 10}))
	// ~4450 km along the equator.
	assert.False(t, Routable(origin, domain.Coordinates{Lat: 0, Lon: 40}))
	assert.False(t, Routable(origin, domain.Coordinates{Lat: math.NaN(), Lon: 0}))
}
