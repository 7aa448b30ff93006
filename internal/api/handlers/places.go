package handlers

import (
	"itinerary-planner-service/internal/api/dto"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"net/http"

	"go.uber.org/zap"
)

// PlaceHandler exposes the read-only places dataset.
type PlaceHandler struct {
	Repo   ports.PlaceRepository
	Logger *zap.Logger
}

func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	log := orNop(h.Logger)

	places, err := h.Repo.ListPlaces(r.Context())
	if err != nil {
		status, msg := datasetFailure(err)
		log.Error("list places failed", zap.Error(err))
		writeError(w, r, log, status, msg)
		return
	}

	res := dto.ListPlacesResponse{
		Places: make([]dto.PlaceResponse, 0, len(places)),
	}
	for _, p := range places {
		res.Places = append(res.Places, toPlaceResponse(p))
	}

	writeJSON(w, r, log, http.StatusOK, res)
}

func toPlaceResponse(p domain.Place) dto.PlaceResponse {
	return dto.PlaceResponse{
		PlaceID:          p.PlaceID,
		Name:             p.Name,
		Category:         p.Category,
		Lat:              p.Coordinates.Lat,
		Lon:              p.Coordinates.Lon,
		VisitStart:       p.VisitStart,
		VisitEnd:         p.VisitEnd,
		SpendTimeMinutes: p.SpendTimeMinutes,
		Description:      p.Description,
	}
}
