package services

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TripPlanner runs the planning pipeline for one request at a time:
// dataset -> open-hours filter -> prioritizer -> builder -> stitcher.
// It keeps no state between runs and is safe for concurrent use as long as
// its collaborators are.
type TripPlanner struct {
	Places    ports.PlaceRepository
	Builder   *ItineraryBuilder
	Stitcher  *RouteStitcher
	Artifacts ports.ArtifactStore
	Logger    *zap.Logger
	// NewRunID overrides run id generation; tests use it for determinism.
	NewRunID func() string
}

// Plan builds an itinerary for req.
//
// Infeasible requests are not errors: they return an empty itinerary with a
// status and message. Only terminal input failures (bad location, missing
// times, missing or empty dataset) are returned as errors.
func (p *TripPlanner) Plan(ctx context.Context, req domain.TripRequest) (_ *domain.Itinerary, err error) {
	log := p.logger()
	defer obs.Time(ctx, log, "planner.Plan")(&err)

	if !req.Start.Valid() {
		return nil, fmt.Errorf("plan trip: start %v: %w", req.Start, domain.ErrInvalidLocation)
	}
	if strings.TrimSpace(req.StartTime) == "" || strings.TrimSpace(req.EndTime) == "" {
		return nil, fmt.Errorf("plan trip: %w", domain.ErrMissingTimes)
	}

	places, err := p.Places.ListPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan trip: list places: %w", err)
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("plan trip: %w", domain.ErrEmptyDataset)
	}

	it := &domain.Itinerary{
		RunID:     p.runID(),
		Status:    domain.StatusOK,
		TripDate:  req.TripDate,
		Start:     req.Start,
		Entries:   []domain.ItineraryEntry{},
		Rejected:  []domain.Rejection{},
		Segments:  []domain.RouteSegment{},
		Path:      []domain.Coordinates{},
		Artifacts: map[string]string{},
	}
	log = log.With(zap.String("run_id", it.RunID))

	window, err := ComputeTripWindow(req.StartTime, req.EndTime, req.NumDays)
	if err != nil {
		log.Info("invalid trip window", zap.Error(err))
		it.Window = domain.TripWindow{Days: max(1, req.NumDays)}
		return p.empty(it, domain.StatusInvalidTimeFormat), nil
	}
	it.Window = window

	if !window.Feasible() {
		log.Info("trip window infeasible", zap.Float64("hours_per_day", window.HoursPerDay))
		return p.empty(it, domain.StatusInfeasibleWindow), nil
	}

	filtered := FilterOpenPlaces(places, window)
	it.FailOpenFilter = filtered.FailOpen
	if filtered.FailOpen {
		log.Warn("open-hours filter failed open; all places passed")
	}
	if len(filtered.Open) == 0 {
		return p.empty(it, domain.StatusNoOpenPlaces), nil
	}

	// Ranked once from the start; the builder never re-ranks.
	candidates := PrioritizeByDistance(filtered.Open, req.Start)

	builder := p.Builder
	if builder == nil {
		builder = &ItineraryBuilder{Logger: log}
	}

	state := builder.Build(ctx, req.Start, window.TotalBudgetMinutes, candidates)
	it.Entries = state.Accepted
	it.Rejected = state.Rejected
	if len(it.Entries) == 0 {
		return p.empty(it, domain.StatusNoFeasiblePlaces), nil
	}

	stops := make([]domain.Coordinates, 0, len(it.Entries))
	for _, e := range it.Entries {
		stops = append(stops, e.Place.Coordinates)
	}

	if p.Stitcher != nil {
		points := append([]domain.Coordinates{req.Start}, stops...)
		stitched := p.Stitcher.Stitch(ctx, points)
		it.Segments = stitched.Segments
		it.Path = stitched.Path
		it.SkippedLegs = stitched.Skipped
	}

	it.MapsURL = GoogleMapsURL(req.Start, stops)

	p.saveArtifacts(ctx, it)

	log.Info("trip planned",
		zap.Int("candidates", len(candidates)),
		zap.Int("accepted", len(it.Entries)),
		zap.Int("rejected", len(it.Rejected)),
		zap.Int("skipped_legs", it.SkippedLegs),
	)

	return it, nil
}

func (p *TripPlanner) empty(it *domain.Itinerary, status domain.PlanStatus) *domain.Itinerary {
	it.Status = status
	it.Message = status.Message()
	it.Entries = []domain.ItineraryEntry{}
	return it
}

// Artifact failures degrade the response; they never fail the run.
func (p *TripPlanner) saveArtifacts(ctx context.Context, it *domain.Itinerary) {
	if p.Artifacts == nil {
		return
	}

	renderers := []struct {
		name   string
		render func(*domain.Itinerary) ([]byte, error)
	}{
		{RouteArtifact, RenderRouteGeoJSON},
		{ItineraryArtifact, RenderItineraryDocument},
	}

	for _, r := range renderers {
		data, err := r.render(it)
		if err == nil {
			var ref string
			ref, err = p.Artifacts.Save(ctx, it.RunID, r.name, data)
			if err == nil {
				it.Artifacts[r.name] = ref
				continue
			}
		}
		p.logger().Error("artifact not saved",
			zap.String("run_id", it.RunID),
			zap.String("artifact", r.name),
			zap.Error(err))
	}
}

func (p *TripPlanner) runID() string {
	if p.NewRunID != nil {
		return p.NewRunID()
	}
	return uuid.NewString()
}

func (p *TripPlanner) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// IsTerminal reports whether err is an input failure the caller should
// present as a message rather than an internal error.
func IsTerminal(err error) bool {
	return errors.Is(err, domain.ErrInvalidLocation) ||
		errors.Is(err, domain.ErrMissingTimes) ||
		errors.Is(err, domain.ErrDatasetMissing) ||
		errors.Is(err, domain.ErrEmptyDataset)
}
