package services

import (
	"itinerary-planner-service/internal/domain"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleMapsURL(t *testing.T) {
	start := domain.Coordinates{Lat: 12.97, Lon: 77.59}
	stops := []domain.Coordinates{
		{Lat: 12.98, Lon: 77.6},
		{Lat: 13.01, Lon: 77.55},
		{Lat: 13.1, Lon: 77.5},
	}

	link := GoogleMapsURL(start, stops)
	require.True(t, strings.HasPrefix(link, "https://www.google.com/maps/dir/?"))

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "1", q.Get("api"))
	assert.Equal(t, "12.97,77.59", q.Get("origin"))
	assert.Equal(t, "13.1,77.5", q.Get("destination"))
	assert.Equal(t, "12.98,77.6|13.01,77.55", q.Get("waypoints"))
	assert.Equal(t, "driving", q.Get("travelmode"))
}

func TestGoogleMapsURLSingleStop(t *testing.T) {
	link := GoogleMapsURL(domain.Coordinates{Lat: 1, Lon: 2}, []domain.Coordinates{{Lat: 3, Lon: 4}})

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Empty(t, u.Query().Get("waypoints"))
	assert.Equal(t, "3,4", u.Query().Get("destination"))
}

func TestGoogleMapsURLNoStops(t *testing.T) {
	assert.Empty(t, GoogleMapsURL(domain.Coordinates{}, nil))
}
