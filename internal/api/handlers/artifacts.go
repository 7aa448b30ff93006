package handlers

import (
	"errors"
	"itinerary-planner-service/internal/ports"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ArtifactPath is the URL path an artifact is served from.
func ArtifactPath(runID, name string) string {
	return "/trips/" + runID + "/artifacts/" + name
}

// ArtifactHandler serves per-run artifacts written by the planner.
type ArtifactHandler struct {
	Store  ports.ArtifactStore
	Logger *zap.Logger
}

func (h *ArtifactHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := orNop(h.Logger)
	runID := chi.URLParam(r, "runID")
	name := chi.URLParam(r, "name")

	data, err := h.Store.Load(r.Context(), runID, name)
	if errors.Is(err, ports.ErrArtifactNotFound) {
		writeError(w, r, log, http.StatusNotFound, "artifact not found")
		return
	}
	if err != nil {
		log.Error("load artifact failed", zap.String("run_id", runID), zap.String("name", name), zap.Error(err))
		writeError(w, r, log, http.StatusInternalServerError, "internal server error")
		return
	}

	switch path.Ext(name) {
	case ".geojson":
		w.Header().Set("Content-Type", "application/geo+json")
	case ".json":
		w.Header().Set("Content-Type", "application/json")
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
