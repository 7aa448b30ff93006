package services

import (
	"context"
	"errors"
	"itinerary-planner-service/internal/adapters/routing"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spend(m int) *int { return &m }

func at(lat, lon float64) domain.Coordinates { return domain.Coordinates{Lat: lat, Lon: lon} }

type failingRouter struct{ calls int }

func (f *failingRouter) Route(context.Context, domain.Coordinates, domain.Coordinates, string) (ports.RouteResult, error) {
	f.calls++
	return ports.RouteResult{}, errors.New("routing service down")
}

func TestTravelMinutesSpeedTiers(t *testing.T) {
	assert.InDelta(t, 4.8, TravelMinutes(2), 1e-9)
	// 50 km is still a local leg.
	assert.InDelta(t, 120.0, TravelMinutes(50), 1e-9)
	assert.InDelta(t, 55.0/70.0*60.0, TravelMinutes(55), 1e-9)
	assert.Zero(t, TravelMinutes(0))
}

func TestBuildWithRoutedDistances(t *testing.T) {
	start := at(0, 0)
	a := domain.Place{PlaceID: 1, Name: "A", Coordinates: at(0.01, 0)}
	b := domain.Place{PlaceID: 2, Name: "B", Coordinates: at(0.02, 0)}
	c := domain.Place{PlaceID: 3, Name: "C", Coordinates: at(1.0, 0)}

	router := routing.NewMockRouteProvider([]routing.MockLeg{
		{From: start, To: a.Coordinates, Km: 2},
		{From: a.Coordinates, To: b.Coordinates, Km: 3},
		{From: b.Coordinates, To: c.Coordinates, Km: 55},
	})

	builder := &ItineraryBuilder{Router: router}
	state := builder.Build(context.Background(), start, 200, []domain.Place{a, b, c})

	require.Len(t, state.Accepted, 3)
	assert.Empty(t, state.Rejected)

	assert.InDelta(t, 4.8, state.Accepted[0].TravelMinutes, 1e-9)
	assert.InDelta(t, 7.2, state.Accepted[1].TravelMinutes, 1e-9)
	assert.InDelta(t, 47.142857, state.Accepted[2].TravelMinutes, 1e-5)
	assert.Equal(t, 55.0, state.Accepted[2].DistanceFromPreviousKm)

	for i, e := range state.Accepted {
		assert.Equal(t, i+1, e.Order)
		assert.True(t, e.Routed)
		assert.NotEmpty(t, e.Geometry)
	}

	want := 200 - (4.8 + 30) - (7.2 + 30) - (55.0/70.0*60.0 + 30)
	assert.InDelta(t, want, state.RemainingMinutes, 1e-9)
	assert.Equal(t, c.Coordinates, state.Position)
}

func TestBuildFallsBackWhenRoutingFails(t *testing.T) {
	start := at(0, 0)
	a := domain.Place{PlaceID: 1, Coordinates: at(0.01, 0)}
	router := &failingRouter{}

	builder := &ItineraryBuilder{Router: router}
	state := builder.Build(context.Background(), start, 100, []domain.Place{a})

	require.Len(t, state.Accepted, 1)
	e := state.Accepted[0]
	assert.False(t, e.Routed)
	assert.Nil(t, e.Geometry)
	assert.Equal(t, 1.11, e.DistanceFromPreviousKm)
	assert.InDelta(t, 1.11/25*60, e.TravelMinutes, 1e-9)
	assert.Equal(t, 1, router.calls)
}

func TestBuildNeverRoutesImplausibleLegs(t *testing.T) {
	router := &failingRouter{}
	far := domain.Place{PlaceID: 1, Coordinates: at(0, 40)}

	builder := &ItineraryBuilder{Router: router}
	state := builder.Build(context.Background(), at(0, 0), 1e6, []domain.Place{far})

	assert.Zero(t, router.calls)
	require.Len(t, state.Accepted, 1)
	assert.InDelta(t, 40*KmPerDegree, state.Accepted[0].DistanceFromPreviousKm, 1e-9)
}

func TestBuildRejectionsAreIrrevocable(t *testing.T) {
	start := at(0, 0)
	candidates := []domain.Place{
		{PlaceID: 1, Coordinates: at(0.01, 0), SpendTimeMinutes: spend(20)},
		{PlaceID: 2, Coordinates: at(0.02, 0), SpendTimeMinutes: spend(20)},
		{PlaceID: 3, Coordinates: at(0.03, 0)},
		{PlaceID: 4, Coordinates: at(0.04, 0)},
		{PlaceID: 5, Coordinates: at(0.05, 0)},
	}

	state := (&ItineraryBuilder{}).Build(context.Background(), start, 60, candidates)

	require.Len(t, state.Accepted, 2)
	assert.Equal(t, 1, state.Accepted[0].Place.PlaceID)
	assert.Equal(t, 2, state.Accepted[1].Place.PlaceID)

	require.Len(t, state.Rejected, 3)
	for i, r := range state.Rejected {
		assert.Equal(t, i+3, r.Place.PlaceID)
		assert.Less(t, r.RemainingBudgetMinutes, r.TravelMinutes+r.VisitMinutes)
	}

	legMinutes := 1.11 / 25 * 60
	assert.InDelta(t, 60-2*(legMinutes+20), state.RemainingMinutes, 1e-6)
}

func TestBuildBudgetIsMonotonic(t *testing.T) {
	start := at(10, 10)
	var candidates []domain.Place
	for i := 1; i <= 20; i++ {
		candidates = append(candidates, domain.Place{
			PlaceID:          i,
			Coordinates:      at(10+float64(i)*0.005, 10-float64(i%3)*0.004),
			SpendTimeMinutes: spend(5 + i%4*10),
		})
	}
	candidates = PrioritizeByDistance(candidates, start)

	state := (&ItineraryBuilder{}).Build(context.Background(), start, 240, candidates)

	require.NotEmpty(t, state.Accepted)
	assert.Equal(t, len(candidates), len(state.Accepted)+len(state.Rejected))

	prev := 240.0
	for _, e := range state.Accepted {
		assert.LessOrEqual(t, e.RemainingBudgetMinutes, prev)
		assert.GreaterOrEqual(t, e.RemainingBudgetMinutes, 0.0)
		prev = e.RemainingBudgetMinutes
	}

	// Accepted stops keep the prioritized order.
	idx := make(map[int]int, len(candidates))
	for i, c := range candidates {
		idx[c.PlaceID] = i
	}
	for i := 1; i < len(state.Accepted); i++ {
		assert.Less(t, idx[state.Accepted[i-1].Place.PlaceID], idx[state.Accepted[i].Place.PlaceID])
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	b := &ItineraryBuilder{}
	s0 := NewBuildState(at(0, 0), 100)

	s1 := b.Step(context.Background(), s0, domain.Place{PlaceID: 1, Coordinates: at(0.01, 0)})
	s2a := b.Step(context.Background(), s1, domain.Place{PlaceID: 2, Coordinates: at(0.02, 0)})
	s2b := b.Step(context.Background(), s1, domain.Place{PlaceID: 3, Coordinates: at(0.03, 0)})

	assert.Empty(t, s0.Accepted)
	assert.Equal(t, 100.0, s0.RemainingMinutes)
	require.Len(t, s1.Accepted, 1)
	assert.Equal(t, 2, s2a.Accepted[1].Place.PlaceID)
	assert.Equal(t, 3, s2b.Accepted[1].Place.PlaceID)
}
