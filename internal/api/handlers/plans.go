package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/services"
	"math"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const maxPlanBody = 64 << 10

// Planner runs one planning pipeline.
type Planner interface {
	Plan(ctx context.Context, req domain.TripRequest) (*domain.Itinerary, error)
}

type PlanHandler struct {
	Planner  Planner
	Validate *validator.Validate
	Logger   *zap.Logger
}

// Plan builds an itinerary for the traveler.
// Outcomes the traveler can act on (bad location, missing times, nothing fits)
// are 200 responses with an empty places list and a message.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	log := orNop(h.Logger)

	var req dto.PlanRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPlanBody))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, log, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, log, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			writeError(w, r, log, http.StatusBadRequest, validationMessage(err))
			return
		}
	}

	it, err := h.Planner.Plan(r.Context(), toTripRequest(req))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLocation) || errors.Is(err, domain.ErrMissingTimes) {
			writeJSON(w, r, log, http.StatusOK, dto.PlanResponse{
				Status:   "invalid_input",
				Message:  domain.UserMessage(err),
				TripDate: req.TripDate,
				Places:   []dto.PlanStopResponse{},
				Rejected: []dto.RejectedPlaceResponse{},
				Route:    [][2]float64{},
			})
			return
		}

		status, msg := datasetFailure(err)
		log.Error("plan trip failed", zap.Error(err))
		writeError(w, r, log, status, msg)
		return
	}

	writeJSON(w, r, log, http.StatusOK, toPlanResponse(it))
}

func toTripRequest(req dto.PlanRequest) domain.TripRequest {
	start := domain.Coordinates{Lat: math.NaN(), Lon: math.NaN()}
	if req.StartLat != nil && req.StartLon != nil {
		start = domain.Coordinates{Lat: *req.StartLat, Lon: *req.StartLon}
	}

	return domain.TripRequest{
		Start:     start,
		StartTime: strings.TrimSpace(req.StartTime),
		EndTime:   strings.TrimSpace(req.EndTime),
		NumDays:   max(1, req.NumDays),
		TripDate:  strings.TrimSpace(req.TripDate),
	}
}

func toPlanResponse(it *domain.Itinerary) dto.PlanResponse {
	res := dto.PlanResponse{
		RunID:          it.RunID,
		Status:         string(it.Status),
		Message:        it.Message,
		TripDate:       it.TripDate,
		TotalDays:      it.Window.Days,
		HoursPerDay:    domain.Round2(it.Window.HoursPerDay),
		TotalHours:     domain.Round2(it.Window.TotalHours),
		Places:         make([]dto.PlanStopResponse, 0, len(it.Entries)),
		Rejected:       make([]dto.RejectedPlaceResponse, 0, len(it.Rejected)),
		Route:          make([][2]float64, 0, len(it.Path)),
		SkippedLegs:    it.SkippedLegs,
		FailOpenFilter: it.FailOpenFilter,
		MapsURL:        it.MapsURL,
	}

	for _, e := range it.Entries {
		res.Places = append(res.Places, dto.PlanStopResponse{
			Order:                  e.Order,
			PlaceID:                e.Place.PlaceID,
			Name:                   e.Place.Name,
			Category:               e.Place.Category,
			Lat:                    e.Place.Coordinates.Lat,
			Lon:                    e.Place.Coordinates.Lon,
			VisitStart:             e.Place.VisitStart,
			VisitEnd:               e.Place.VisitEnd,
			SpendTimeMinutes:       e.VisitMinutes,
			DistanceFromPreviousKm: e.DistanceFromPreviousKm,
			TravelMinutes:          domain.Round2(e.TravelMinutes),
			RemainingMinutes:       domain.Round2(e.RemainingBudgetMinutes),
			Routed:                 e.Routed,
			Description:            e.Place.Description,
		})
	}

	for _, rj := range it.Rejected {
		res.Rejected = append(res.Rejected, dto.RejectedPlaceResponse{
			PlaceID:          rj.Place.PlaceID,
			Name:             rj.Place.Name,
			TravelMinutes:    domain.Round2(rj.TravelMinutes),
			VisitMinutes:     rj.VisitMinutes,
			RemainingMinutes: domain.Round2(rj.RemainingBudgetMinutes),
		})
	}

	for _, c := range it.Path {
		res.Route = append(res.Route, c.LatLon())
	}

	if len(it.Artifacts) > 0 {
		res.Artifacts = make(map[string]string, len(it.Artifacts))
		for name := range it.Artifacts {
			res.Artifacts[name] = ArtifactPath(it.RunID, name)
		}
	}

	return res
}

// Dataset problems are the operator's to fix; anything else is internal.
func datasetFailure(err error) (int, string) {
	if errors.Is(err, domain.ErrDatasetMissing) || errors.Is(err, domain.ErrEmptyDataset) {
		return http.StatusServiceUnavailable, domain.UserMessage(err)
	}
	if services.IsTerminal(err) {
		return http.StatusBadRequest, domain.UserMessage(err)
	}
	return http.StatusInternalServerError, "internal server error"
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" failed "+fe.Tag())
	}
	return "invalid request: " + strings.Join(fields, ", ")
}
