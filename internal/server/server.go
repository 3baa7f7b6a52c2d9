package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/trainsphere/internal/progress"
	"github.com/meltforce/trainsphere/internal/report"
	"github.com/meltforce/trainsphere/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	progress *progress.Aggregator
	report   *report.Compiler
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, agg *progress.Aggregator, compiler *report.Compiler, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		progress: agg,
		report:   compiler,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/progress", s.handleProgress)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Get("/api/v1/profile", s.handleGetProfile)
	s.router.Get("/api/v1/plan", s.handleGetPlan)
	s.router.Get("/api/v1/report", s.handleReport)
	s.router.Get("/api/v1/report/export", s.handleReportExport)
	s.router.Get("/api/v1/motivation", s.handleMotivation)
	s.router.Get("/api/v1/templates", s.handleTemplates)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/workouts", s.handleCreateWorkout)
		r.Post("/api/v1/workouts/{id}", s.handleUpdateWorkout)
		r.Delete("/api/v1/workouts/{id}", s.handleDeleteWorkout)
		r.Post("/api/v1/profile", s.handleUpsertProfile)
		r.Post("/api/v1/plan", s.handleUpsertPlan)
	})
}
