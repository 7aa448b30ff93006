package services

import (
	"context"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"slices"
	"time"

	"go.uber.org/zap"
)

const (
	highwaySpeedKmh = 70.0
	localSpeedKmh   = 25.0
	// Legs longer than this are assumed to use highways.
	highwayThresholdKm = 50.0
)

// BuildState is the value folded over the prioritized candidates.
// It is owned by a single planning run.
type BuildState struct {
	RemainingMinutes float64
	Position         domain.Coordinates
	Accepted         []domain.ItineraryEntry
	Rejected         []domain.Rejection
}

// NewBuildState returns the initial state for a run starting at start.
func NewBuildState(start domain.Coordinates, budgetMinutes float64) BuildState {
	return BuildState{
		RemainingMinutes: budgetMinutes,
		Position:         start,
		Accepted:         []domain.ItineraryEntry{},
		Rejected:         []domain.Rejection{},
	}
}

// ItineraryBuilder selects stops with a single greedy pass.
//
// Candidates are considered once, in the order given. A candidate that does
// not fit the remaining budget is rejected for good; there is no
// backtracking and no re-ranking after an acceptance.
type ItineraryBuilder struct {
	// Router is consulted for leg distances when non-nil. Any failure falls
	// back to the straight-line estimate.
	Router  ports.RouteProvider
	Profile string
	// Timeout bounds each router call.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Build folds Step over candidates.
func (b *ItineraryBuilder) Build(
	ctx context.Context,
	start domain.Coordinates,
	budgetMinutes float64,
	candidates []domain.Place,
) BuildState {
	state := NewBuildState(start, budgetMinutes)
	for _, c := range candidates {
		state = b.Step(ctx, state, c)
	}
	return state
}

// Step considers one candidate and returns the next state.
// The input state is not modified.
func (b *ItineraryBuilder) Step(ctx context.Context, s BuildState, candidate domain.Place) BuildState {
	leg := b.leg(ctx, s.Position, candidate.Coordinates)

	travelMinutes := TravelMinutes(leg.distanceKm)
	visitMinutes := candidate.VisitMinutes()
	cost := travelMinutes + visitMinutes

	next := s
	if s.RemainingMinutes < cost {
		next.Rejected = append(slices.Clip(s.Rejected), domain.Rejection{
			Place:                  candidate,
			TravelMinutes:          travelMinutes,
			VisitMinutes:           visitMinutes,
			RemainingBudgetMinutes: s.RemainingMinutes,
		})
		return next
	}

	next.RemainingMinutes = s.RemainingMinutes - cost
	next.Position = candidate.Coordinates
	next.Accepted = append(slices.Clip(s.Accepted), domain.ItineraryEntry{
		Order:                  len(s.Accepted) + 1,
		Place:                  candidate,
		DistanceFromPreviousKm: domain.Round2(leg.distanceKm),
		TravelMinutes:          travelMinutes,
		VisitMinutes:           visitMinutes,
		RemainingBudgetMinutes: next.RemainingMinutes,
		Routed:                 leg.routed,
		Geometry:               leg.geometry,
	})

	return next
}

// TravelSpeedKmh models highway travel for long legs and local roads otherwise.
func TravelSpeedKmh(distanceKm float64) float64 {
	if distanceKm > highwayThresholdKm {
		return highwaySpeedKmh
	}
	return localSpeedKmh
}

// TravelMinutes converts a leg distance into travel time.
func TravelMinutes(distanceKm float64) float64 {
	return distanceKm / TravelSpeedKmh(distanceKm) * 60
}

type legEstimate struct {
	distanceKm float64
	geometry   []domain.Coordinates
	routed     bool
}

func (b *ItineraryBuilder) leg(ctx context.Context, from, to domain.Coordinates) legEstimate {
	fallback := legEstimate{distanceKm: FallbackDistanceKm(from, to)}

	if b.Router == nil {
		return fallback
	}

	res, err := b.route(ctx, from, to)
	if err != nil {
		b.logger().Debug("leg distance falls back to estimate",
			zap.Float64("from_lat", from.Lat), zap.Float64("from_lon", from.Lon),
			zap.Float64("to_lat", to.Lat), zap.Float64("to_lon", to.Lon),
			zap.Error(err))
		return fallback
	}

	return legEstimate{distanceKm: res.DistanceKm, geometry: res.Geometry, routed: true}
}

func (b *ItineraryBuilder) route(ctx context.Context, from, to domain.Coordinates) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, b.logger(), "builder.route")(&err)

	if !Routable(from, to) {
		return ports.RouteResult{}, domain.ErrImplausibleDistance
	}

	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}

	profile := b.Profile
	if profile == "" {
		profile = domain.ProfileDriving
	}

	res, err := b.Router.Route(ctx, from, to, profile)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("%w: %w", domain.ErrRoutingUnavailable, err)
	}
	if len(res.Geometry) == 0 {
		return ports.RouteResult{}, fmt.Errorf("%w: %w", domain.ErrRoutingUnavailable, domain.ErrNoGeometry)
	}

	return res, nil
}

func (b *ItineraryBuilder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}
