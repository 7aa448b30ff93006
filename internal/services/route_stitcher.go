package services

import (
	"context"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"time"

	"go.uber.org/zap"
)

// ProfileStrategy is one step of the routing fallback chain.
type ProfileStrategy struct {
	Profile string
	Timeout time.Duration
}

// DefaultStrategies tries driving first and walking second.
func DefaultStrategies(timeout time.Duration) []ProfileStrategy {
	return StrategiesFor([]string{domain.ProfileDriving, domain.ProfileWalking}, timeout)
}

// StrategiesFor builds a chain from profile names, in order.
func StrategiesFor(profiles []string, timeout time.Duration) []ProfileStrategy {
	out := make([]ProfileStrategy, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ProfileStrategy{Profile: p, Timeout: timeout})
	}
	return out
}

// StitchResult is the continuous path drawn for an itinerary.
type StitchResult struct {
	Segments []domain.RouteSegment
	Path     []domain.Coordinates
	Skipped  int
}

// RouteStitcher joins point-to-point routes into one path.
//
// Each leg walks the strategy chain and stops at the first profile that
// returns geometry. A leg that no profile can route is skipped and leaves a
// gap in the path; a straight line is never substituted.
type RouteStitcher struct {
	Provider   ports.RouteProvider
	Strategies []ProfileStrategy
	Logger     *zap.Logger
}

// Stitch routes every consecutive pair in points.
// points is the start location followed by the itinerary stops.
func (s *RouteStitcher) Stitch(ctx context.Context, points []domain.Coordinates) StitchResult {
	res := StitchResult{
		Segments: []domain.RouteSegment{},
		Path:     []domain.Coordinates{},
	}

	for i := 0; i+1 < len(points); i++ {
		seg, ok := s.segment(ctx, points[i], points[i+1])
		if !ok {
			res.Skipped++
			continue
		}

		res.Segments = append(res.Segments, seg)

		vertices := seg.Vertices
		// Consecutive segments share the joining vertex.
		if len(res.Path) > 0 {
			vertices = vertices[1:]
		}
		res.Path = append(res.Path, vertices...)
	}

	return res
}

func (s *RouteStitcher) segment(ctx context.Context, from, to domain.Coordinates) (domain.RouteSegment, bool) {
	log := s.logger()

	if s.Provider == nil {
		return domain.RouteSegment{}, false
	}

	if !Routable(from, to) {
		log.Warn("leg skipped",
			zap.Float64("to_lat", to.Lat), zap.Float64("to_lon", to.Lon),
			zap.Error(domain.ErrImplausibleDistance))
		return domain.RouteSegment{}, false
	}

	for _, strategy := range s.Strategies {
		vertices, err := s.try(ctx, strategy, from, to)
		if err != nil {
			log.Warn("routing profile failed",
				zap.String("profile", strategy.Profile),
				zap.Float64("to_lat", to.Lat), zap.Float64("to_lon", to.Lon),
				zap.Error(err))
			continue
		}

		return domain.RouteSegment{
			From:     from,
			To:       to,
			Profile:  strategy.Profile,
			Vertices: vertices,
		}, true
	}

	log.Warn("leg unroutable with every profile",
		zap.Float64("to_lat", to.Lat), zap.Float64("to_lon", to.Lon))
	return domain.RouteSegment{}, false
}

func (s *RouteStitcher) try(
	ctx context.Context,
	strategy ProfileStrategy,
	from, to domain.Coordinates,
) (_ []domain.Coordinates, err error) {
	defer obs.Time(ctx, s.logger(), "stitcher."+strategy.Profile)(&err)

	if strategy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, strategy.Timeout)
		defer cancel()
	}

	r, err := s.Provider.Route(ctx, from, to, strategy.Profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRoutingUnavailable, err)
	}
	if len(r.Geometry) == 0 {
		return nil, domain.ErrNoGeometry
	}

	return r.Geometry, nil
}

func (s *RouteStitcher) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
