package handler

import (
	"log/slog"
	"net/http"

	"github.com/employee-directory-api/internal/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router настраивает маршруты API
type Router struct {
	mux            *chi.Mux
	logger         *slog.Logger
	empHandler     *EmployeeHandler
	allowedOrigins []string
}

// NewRouter создаёт новый роутер
func NewRouter(empHandler *EmployeeHandler, logger *slog.Logger, allowedOrigins []string) *Router {
	return &Router{
		mux:            chi.NewRouter(),
		logger:         logger,
		empHandler:     empHandler,
		allowedOrigins: allowedOrigins,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	// Порядок: recover снаружи, затем логирование и метрики
	r.mux.Use(middleware.Recoverer(r.logger))
	r.mux.Use(middleware.Logger(r.logger))
	r.mux.Use(middleware.Metrics)
	r.mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: r.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300,
	}))
	r.mux.Use(chiMiddleware.CleanPath)

	r.mux.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.mux.Handle("/metrics", promhttp.Handler())

	r.mux.Route("/api/employee", func(api chi.Router) {
		api.Use(middleware.ContentType)

		api.Post("/", r.empHandler.Create)
		api.Get("/{id}", r.empHandler.GetByID)
		api.Put("/{id}", r.empHandler.Replace)
		api.Get("/{id}/reportingStructure", r.empHandler.GetReportingStructure)
		api.Post("/{id}/compensation", r.empHandler.AddCompensation)
		api.Get("/{id}/compensation", r.empHandler.GetCompensation)
	})

	r.mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
		r.empHandler.respondError(w, http.StatusNotFound, "not found", "")
	})
	r.mux.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		r.empHandler.respondError(w, http.StatusMethodNotAllowed, "method not allowed", "")
	})

	return r.mux
}
