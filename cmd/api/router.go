package main

import (
	"database/sql"
	"net/http"

	"github.com/crucial707/exercise-tracker/internal/config"
	"github.com/crucial707/exercise-tracker/internal/db"
	"github.com/crucial707/exercise-tracker/internal/handlers"
	"github.com/crucial707/exercise-tracker/internal/logs"
	"github.com/crucial707/exercise-tracker/internal/middleware"
	"github.com/crucial707/exercise-tracker/internal/repo"
	"github.com/crucial707/exercise-tracker/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires storage, the tracker service and handlers behind the middleware chain.
func newRouter(database *sql.DB, dialect db.Dialect, cfg config.Config) http.Handler {
	store := repo.NewStore(database, dialect, cfg.DBQueryTimeout)
	tracker := service.NewTracker(store.Users, store.Exercises, logs.NewAssembler(logs.ParseCountMode(cfg.LogsCountMode)))

	userHandler := &handlers.UserHandler{Tracker: tracker}
	exerciseHandler := &handlers.ExerciseHandler{Tracker: tracker}
	logHandler := &handlers.LogHandler{Tracker: tracker}
	healthHandler := &handlers.HealthHandler{Store: store}

	writes := middleware.PerMinute(cfg.WriteRatePerMinute, cfg.WriteRateBurst)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/", handlers.Index)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(writes.Writes)
		r.Use(middleware.MaxBytes(int64(cfg.MaxBodyBytes)))

		r.Post("/users", userHandler.CreateUser)
		r.Get("/users", userHandler.ListUsers)
		r.Post("/users/{id}/exercises", exerciseHandler.CreateExercise)
		r.Get("/users/{id}/logs", logHandler.UserLogs)
		r.Get("/users/{id}/logs/{from}/{to}", logHandler.UserLogsRange)

		r.Get("/exercises", exerciseHandler.ListExercises)
		r.Get("/logs", logHandler.AllLogs)
	})

	return r
}
