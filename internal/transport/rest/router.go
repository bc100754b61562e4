package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/sewa-portal/internal/donation"
	"github.com/frahmantamala/sewa-portal/internal/media"
	"github.com/frahmantamala/sewa-portal/internal/transport/middleware"
	"github.com/frahmantamala/sewa-portal/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// MetricsExporter is satisfied by observability.Metrics.
type MetricsExporter interface {
	Instrument(next http.Handler) http.Handler
	Handler() http.Handler
}

type RouterDeps struct {
	DonationHandler *donation.Handler
	MediaHandler    *media.Handler
	HealthCheckers  []HealthChecker
	Metrics         MetricsExporter
	MetricsPath     string
	AllowedOrigins  []string
	OpenAPIDoc      []byte
	Logger          *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.HealthCheckers...)

	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Instrument)
		if deps.MetricsPath != "" {
			router.Method(http.MethodGet, deps.MetricsPath, deps.Metrics.Handler())
		}
	}

	if len(deps.OpenAPIDoc) > 0 {
		router.Get(swagger.SpecPath, swagger.SpecHandler(deps.OpenAPIDoc))
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if deps.DonationHandler != nil {
			r.Route("/donations", func(dr chi.Router) {
				dr.Post("/", deps.DonationHandler.CreateDonation)
				dr.Get("/qr", deps.DonationHandler.GetQRCode)
			})
		}

		if deps.MediaHandler != nil {
			r.Route("/uploads", func(ur chi.Router) {
				ur.Post("/media", deps.MediaHandler.UploadMedia)
				ur.Post("/reports", deps.MediaHandler.UploadReport)
			})
			r.Get("/gallery", deps.MediaHandler.GetGallery)
		}
	})
}
