package services

import (
	"context"
	"itinerary-planner-service/internal/adapters/routing"
	"itinerary-planner-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStitchJoinsSegmentsWithoutDuplicateVertices(t *testing.T) {
	s, a, b := at(0, 0), at(0.01, 0), at(0.02, 0)
	m1, m2 := at(0.005, 0.001), at(0.015, 0.001)

	provider := routing.NewMockRouteProvider([]routing.MockLeg{
		{From: s, To: a, Profile: domain.ProfileDriving, Km: 1, Geometry: []domain.Coordinates{s, m1, a}},
		{From: a, To: b, Profile: domain.ProfileDriving, Km: 1, Geometry: []domain.Coordinates{a, m2, b}},
	})

	stitcher := &RouteStitcher{Provider: provider, Strategies: DefaultStrategies(time.Second)}
	res := stitcher.Stitch(context.Background(), []domain.Coordinates{s, a, b})

	assert.Zero(t, res.Skipped)
	require.Len(t, res.Segments, 2)
	assert.Equal(t, []domain.Coordinates{s, m1, a, m2, b}, res.Path)
}

func TestStitchFallsBackToWalking(t *testing.T) {
	s, a := at(0, 0), at(0.01, 0)

	provider := routing.NewMockRouteProvider([]routing.MockLeg{
		{From: s, To: a, Profile: domain.ProfileWalking, Km: 1},
	})

	stitcher := &RouteStitcher{Provider: provider, Strategies: DefaultStrategies(time.Second)}
	res := stitcher.Stitch(context.Background(), []domain.Coordinates{s, a})

	require.Len(t, res.Segments, 1)
	assert.Equal(t, domain.ProfileWalking, res.Segments[0].Profile)
	assert.Equal(t, []string{
		routing.CacheKey(domain.ProfileDriving, s, a),
		routing.CacheKey(domain.ProfileWalking, s, a),
	}, provider.Calls())
}

func TestStitchSkipsUnroutableLegs(t *testing.T) {
	s, a, b, c := at(0, 0), at(0.01, 0), at(0.02, 0), at(0.03, 0)

	provider := routing.NewMockRouteProvider([]routing.MockLeg{
		{From: s, To: a, Km: 1},
		{From: b, To: c, Km: 1},
	})

	stitcher := &RouteStitcher{Provider: provider, Strategies: DefaultStrategies(time.Second)}
	res := stitcher.Stitch(context.Background(), []domain.Coordinates{s, a, b, c})

	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Segments, 2)
	// No straight line is drawn across the gap a -> b.
	assert.Equal(t, []domain.Coordinates{s, a, c}, res.Path)
}

func TestStitchNeverRoutesImplausibleLegs(t *testing.T) {
	s, far := at(0, 0), at(0, 40)
	provider := routing.NewMockRouteProvider([]routing.MockLeg{{From: s, To: far, Km: 4440}})

	stitcher := &RouteStitcher{Provider: provider, Strategies: DefaultStrategies(time.Second)}
	res := stitcher.Stitch(context.Background(), []domain.Coordinates{s, far})

	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, res.Path)
	assert.Empty(t, provider.Calls())
}

func TestStitchWithoutProviderSkipsEverything(t *testing.T) {
	res := (&RouteStitcher{}).Stitch(context.Background(), []domain.Coordinates{at(0, 0), at(0.01, 0), at(0.02, 0)})

	assert.Equal(t, 2, res.Skipped)
	assert.Empty(t, res.Segments)
	assert.Empty(t, res.Path)
}

func TestStrategiesFor(t *testing.T) {
	got := StrategiesFor([]string{"cycling-regular", domain.ProfileWalking}, 3*time.Second)

	assert.Equal(t, []ProfileStrategy{
		{Profile: "cycling-regular", Timeout: 3 * time.Second},
		{Profile: domain.ProfileWalking, Timeout: 3 * time.Second},
	}, got)
}
