package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Routes groups the handlers served by the API.
type Routes struct {
	Profile        *ProfileHandler
	Analytics      *AnalyticsHandler
	Export         *ExportHandler
	Health         *HealthHandler
	JWTSecret      string
	AllowedOrigins []string
}

// NewRouter builds the HTTP API. Everything except health and swagger requires a bearer token.
func NewRouter(rt Routes) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestContext)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/api/health", rt.Health.Health)
	r.Get("/api/health/ready", rt.Health.Ready)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(rt.JWTSecret))

		// Profile
		r.Post("/api/profile", rt.Profile.Create)
		r.Get("/api/profile", rt.Profile.Get)
		r.Put("/api/profile", rt.Profile.Update)
		r.Delete("/api/profile", rt.Profile.Delete)
		r.Get("/api/profile/dashboard", rt.Profile.Dashboard)

		// Analytics
		r.Get("/api/analytics", rt.Analytics.GetAll)
		r.Get("/api/analytics/health-score", rt.Analytics.HealthScore)
		r.Get("/api/analytics/ratios", rt.Analytics.Ratios)
		r.Get("/api/analytics/spending", rt.Analytics.Spending)
		r.Get("/api/analytics/net-worth", rt.Analytics.NetWorth)
		r.Post("/api/analytics/recalculate", rt.Analytics.Recalculate)

		// Export
		r.Get("/api/analytics/report/pdf", rt.Export.AnalyticsReportPDF)
		r.Get("/api/analytics/net-worth/export/csv", rt.Export.NetWorthCSV)
	})

	return r
}
