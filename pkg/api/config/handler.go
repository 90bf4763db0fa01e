package config

import (
	"encoding/json"
	"net/http"

	"reit_valuation/pkg/core/assumption"
	coreConfig "reit_valuation/pkg/core/config"
	"reit_valuation/pkg/core/report"
)

// Response tells the UI how to pre-fill the valuation form.
type Response struct {
	Defaults      assumption.Form `json:"defaults"`
	Locale        string          `json:"locale"`
	Locales       []string        `json:"locales"`
	ScenarioDelta float64         `json:"scenario_delta"`
	Formats       []string        `json:"formats"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	Cfg *coreConfig.Config
}

// NewHandler creates a new config handler
func NewHandler(cfg *coreConfig.Config) *Handler {
	if cfg == nil {
		cfg = coreConfig.Default()
	}
	return &Handler{Cfg: cfg}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		Defaults:      h.Cfg.DefaultForm(),
		Locale:        report.MatchLocale(h.Cfg.Valuation.Locale).String(),
		Locales:       report.SupportedLocales(),
		ScenarioDelta: h.Cfg.Valuation.ScenarioDelta,
		Formats:       []string{"md", "html", "csv", "json"},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
