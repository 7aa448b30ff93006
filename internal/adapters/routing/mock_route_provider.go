package routing

import (
	"context"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"sync"
)

// MockLeg is a canned answer for one directed leg.
// An empty Profile matches every profile.
type MockLeg struct {
	From, To domain.Coordinates
	Profile  string
	Km       float64
	Geometry []domain.Coordinates
}

// MockRouteProvider is a deterministic RouteProvider for tests and offline runs.
// Unknown legs fail like an unroutable request. Calls are recorded in order.
type MockRouteProvider struct {
	legs map[string]ports.RouteResult

	mu    sync.Mutex
	calls []string
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[string]ports.RouteResult, len(legs))
	for _, l := range legs {
		geom := l.Geometry
		if geom == nil {
			geom = []domain.Coordinates{l.From, l.To}
		}
		m[CacheKey(l.Profile, l.From, l.To)] = ports.RouteResult{
			DistanceKm: l.Km,
			Geometry:   geom,
		}
	}
	return &MockRouteProvider{legs: m}
}

func (p *MockRouteProvider) Route(
	ctx context.Context,
	from, to domain.Coordinates,
	profile string,
) (ports.RouteResult, error) {
	p.mu.Lock()
	p.calls = append(p.calls, CacheKey(profile, from, to))
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return ports.RouteResult{}, err
	}

	if r, ok := p.legs[CacheKey(profile, from, to)]; ok {
		return r, nil
	}
	if r, ok := p.legs[CacheKey("", from, to)]; ok {
		return r, nil
	}

	return ports.RouteResult{}, fmt.Errorf("missing leg %v -> %v (%s)", from, to, profile)
}

// Calls returns the cache keys of every Route call so far.
func (p *MockRouteProvider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.calls))
	copy(out, p.calls)
	return out
}
