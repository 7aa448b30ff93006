package api

import (
	"bytes"
	"context"
	"encoding/json"
	"itinerary-planner-service/internal/adapters/artifacts"
	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/services"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPlaces []domain.Place

func (f fixedPlaces) ListPlaces(context.Context) ([]domain.Place, error) { return f, nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	places := fixedPlaces{
		{PlaceID: 1, Name: "Temple", Coordinates: domain.Coordinates{Lat: 13.68, Lon: 79.35}, VisitStart: "06:00", VisitEnd: "21:00"},
		{PlaceID: 2, Name: "Lake", Coordinates: domain.Coordinates{Lat: 13.66, Lon: 79.34}},
	}
	store := artifacts.NewFSStore(t.TempDir(), nil)
	planner := &services.TripPlanner{Places: places, Artifacts: store}

	srv := httptest.NewServer(NewRouter(Deps{Places: places, Planner: planner, Artifacts: store}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouterPlanAndFetchArtifacts(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]any{
		"start_lat": 13.65, "start_lon": 79.33, "start_time": "09:00", "end_time": "12:00",
	})
	resp, err := http.Post(srv.URL+"/trips/plan", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))

	var plan dto.PlanResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&plan))
	assert.Equal(t, "ok", plan.Status)
	require.Len(t, plan.Places, 2)
	assert.Equal(t, "Lake", plan.Places[0].Name)
	require.Contains(t, plan.Artifacts, services.RouteArtifact)

	art, err := http.Get(srv.URL + plan.Artifacts[services.RouteArtifact])
	require.NoError(t, err)
	defer art.Body.Close()
	assert.Equal(t, http.StatusOK, art.StatusCode)
	assert.Equal(t, "application/geo+json", art.Header.Get("Content-Type"))
}

func TestRouterArtifactNotFound(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{
		"/trips/unknown-run/artifacts/route.geojson",
		"/trips/run-1/artifacts/..%2Fsecret",
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestRouterHealthAndMethods(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))

	resp, err = http.Get(srv.URL + "/trips/plan")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/places")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
