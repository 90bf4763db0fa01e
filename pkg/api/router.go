// Package api wires the HTTP handlers into a single router.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	apiConfig "reit_valuation/pkg/api/config"
	apiValuation "reit_valuation/pkg/api/valuation"
	"reit_valuation/pkg/core/config"
)

// Routes lists the registered endpoints, for the startup banner.
var Routes = []string{
	"GET  /health",
	"GET  /api/config",
	"POST /api/valuation/compute",
	"POST /api/valuation/scenarios",
	"POST /api/valuation/report?format=md|html|csv|json&lang=zh-CN|en",
	"POST /api/valuation/discount-rate",
}

// NewRouter builds the chi router with CORS taken from cfg.
func NewRouter(cfg *config.Config) chi.Router {
	if cfg == nil {
		cfg = config.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if d := cfg.Server.WriteTimeout.Duration; d > 0 {
		r.Use(middleware.Timeout(d))
	}

	origins := cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:         int((5 * time.Minute).Seconds()),
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	configHandler := apiConfig.NewHandler(cfg)
	valuationHandler := apiValuation.NewHandler(cfg)

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", configHandler.HandleConfig)

		r.Route("/valuation", func(r chi.Router) {
			r.Post("/compute", valuationHandler.HandleCompute)
			r.Post("/scenarios", valuationHandler.HandleScenarios)
			r.Post("/report", valuationHandler.HandleReport)
			r.Post("/discount-rate", valuationHandler.HandleDiscountRate)
		})
	})

	return r
}
