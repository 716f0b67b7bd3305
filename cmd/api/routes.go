package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/auth"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/handler"
	appMiddleware "github.com/Sapuran-Berperan/bus-admin-backend/internal/middleware"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/pipeline"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/upstream"
)

// newRouter mounts every admin screen. A nil jwtManager leaves the admin
// routes unauthenticated.
func newRouter(logger *zap.Logger, jwtManager *auth.JWTManager, backend *upstream.Client, audit handler.AuditStore, lookupConcurrency int) http.Handler {
	tracker := pipeline.NewTracker()

	busHandler := handler.NewBusHandler(pipeline.NewBusPipeline(backend, logger, lookupConcurrency), tracker)
	userHandler := handler.NewUserHandler(backend, tracker, logger)
	cityHandler := handler.NewCityHandler(backend, audit, tracker, logger)
	dashboardHandler := handler.NewDashboardHandler(backend, logger)
	auditHandler := handler.NewAuditHandler(audit, logger)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(appMiddleware.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Client-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", handler.Health)

	// API routes
	r.Route("/api/v1/admin", func(r chi.Router) {
		if jwtManager != nil {
			r.Use(appMiddleware.JWTAuth(jwtManager))
			r.Use(appMiddleware.RequireRole(auth.RoleAdmin))
		}
		r.Use(appMiddleware.ClientID)

		r.Get("/dashboard", dashboardHandler.Stats)
		r.Get("/buses", busHandler.List)
		r.Get("/users", userHandler.List)

		r.Route("/cities", func(r chi.Router) {
			r.Get("/", cityHandler.List)
			r.Post("/{pincode}/stops", cityHandler.AddStop)
			r.Delete("/{pincode}/stops/{stopId}", cityHandler.RemoveStop)
		})

		r.Get("/audit", auditHandler.List)
	})

	return r
}
