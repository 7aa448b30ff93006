package api

import (
	"itinerary-planner-service/internal/api/handlers"
	"itinerary-planner-service/internal/ports"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Places    ports.PlaceRepository
	Planner   handlers.Planner
	Artifacts ports.ArtifactStore
	Logger    *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	placeHandler := &handlers.PlaceHandler{Repo: deps.Places, Logger: log}
	planHandler := &handlers.PlanHandler{
		Planner:  deps.Planner,
		Validate: validator.New(),
		Logger:   log,
	}
	artifactHandler := &handlers.ArtifactHandler{Store: deps.Artifacts, Logger: log}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestContext)
	r.Use(loggingMiddleware(log))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", handlers.Health(log))
	r.Get("/places", placeHandler.List)
	r.Route("/trips", func(r chi.Router) {
		r.Post("/plan", planHandler.Plan)
		r.Get("/{runID}/artifacts/{name}", artifactHandler.Get)
	})

	return r
}
