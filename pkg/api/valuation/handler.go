package valuation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"reit_valuation/pkg/core/assumption"
	"reit_valuation/pkg/core/config"
	"reit_valuation/pkg/core/report"
	"reit_valuation/pkg/core/utils"
	"reit_valuation/pkg/core/validate"
	"reit_valuation/pkg/core/valuation"
)

// maxBodyBytes caps request bodies; a form is a few hundred bytes.
const maxBodyBytes = 1 << 20

// Handler serves the valuation endpoints.
type Handler struct {
	Cfg *config.Config
}

// NewHandler creates a valuation handler. A nil cfg uses config.Default().
func NewHandler(cfg *config.Config) *Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Handler{Cfg: cfg}
}

// ComputeResponse is returned by POST /api/valuation/compute.
type ComputeResponse struct {
	CaseID      string                `json:"case_id"`
	Label       string                `json:"label,omitempty"`
	Form        assumption.Form       `json:"form"`
	Assumptions valuation.Assumptions `json:"assumptions"`
	Result      *valuation.Result     `json:"result"`
	Summary     valuation.Summary     `json:"summary"`
	NOICAGR     float64               `json:"noi_cagr"`
	Chart       report.ChartSeries    `json:"chart"`
	Warnings    []validate.Warning    `json:"warnings"`
}

// ScenarioRequest holds the options read from the body of POST
// /api/valuation/scenarios. The same body carries the assumptions as a bare
// form or a full set, exactly as for /compute.
type ScenarioRequest struct {
	DeltaPercent *float64 `json:"delta_percent"`
}

// OutcomeView is one scenario as sent to the UI. Form repeats the perturbed
// inputs in percent units.
type OutcomeView struct {
	Label       valuation.ScenarioLabel `json:"label"`
	Form        assumption.Form         `json:"form"`
	Assumptions valuation.Assumptions   `json:"assumptions"`
	Result      *valuation.Result       `json:"result,omitempty"`
	Summary     *valuation.Summary      `json:"summary,omitempty"`
	Error       string                  `json:"error,omitempty"`
}

// ScenarioResponse is returned by POST /api/valuation/scenarios.
type ScenarioResponse struct {
	CaseID       string                  `json:"case_id"`
	Label        string                  `json:"label,omitempty"`
	DeltaPercent float64                 `json:"delta_percent"`
	Outcomes     []OutcomeView           `json:"outcomes"`
	Comparison   []valuation.SummaryLine `json:"comparison"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// =============================================================================
// HANDLERS
// =============================================================================

// HandleCompute values a single assumption set.
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	set, err := assumption.DecodeSet(body, h.Cfg.DefaultForm())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	a := set.Assumptions()
	res, err := valuation.ComputeValuation(a)
	if err != nil {
		fmt.Printf("[VALUATION] Case %s rejected: %v\n", set.CaseID, err)
		writeError(w, statusFor(err), err)
		return
	}
	fmt.Printf("[VALUATION] Case %s: %d years, total %.2f\n", set.CaseID, a.TermYears, res.TotalValue)

	writeJSON(w, http.StatusOK, ComputeResponse{
		CaseID:      set.CaseID,
		Label:       set.Label,
		Form:        set.Form,
		Assumptions: a,
		Result:      res,
		Summary:     valuation.Summarize(res),
		NOICAGR:     validate.SeriesCAGR(res.NOISeries()),
		Chart:       report.Chart(res),
		Warnings:    nonNilWarnings(validate.CheckAssumptions(a)),
	})
}

// HandleScenarios values the base, upside and downside scenarios. A failing
// scenario is reported in its own outcome; the request still succeeds.
func (h *Handler) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	set, err := assumption.DecodeSet(body, h.Cfg.DefaultForm())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req ScenarioRequest
	if _, err := utils.SmartParse(string(body), &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	delta := h.Cfg.Valuation.ScenarioDelta
	if req.DeltaPercent != nil {
		delta = *req.DeltaPercent
	}
	if delta < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("delta_percent must not be negative, got %g", delta))
		return
	}

	scenarios := valuation.ComputeScenarios(set.Assumptions(), delta)
	resp := ScenarioResponse{
		CaseID:       set.CaseID,
		Label:        set.Label,
		DeltaPercent: scenarios.DeltaPercent,
		Outcomes:     make([]OutcomeView, 0, len(scenarios.Outcomes)),
		Comparison:   valuation.CompareScenarios(scenarios),
	}
	for _, o := range scenarios.Outcomes {
		view := OutcomeView{
			Label:       o.Label,
			Form:        assumption.FromAssumptions(o.Assumptions),
			Assumptions: o.Assumptions,
		}
		if o.Err != nil {
			fmt.Printf("[VALUATION] Case %s scenario %s failed: %v\n", set.CaseID, o.Label, o.Err)
			view.Error = o.Err.Error()
		} else {
			summary := valuation.Summarize(o.Result)
			view.Result = o.Result
			view.Summary = &summary
		}
		resp.Outcomes = append(resp.Outcomes, view)
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleReport renders a full report. Query parameters:
//
//	format  md (default), html, csv or json
//	lang    zh-CN or en; falls back to Accept-Language, then the configured locale
//	delta   scenario shift in percent; 0 omits the scenario section
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := strings.ToLower(q.Get("format"))
	if format == "" {
		format = "md"
	}
	switch format {
	case "md", "markdown", "html", "csv", "json":
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported format %q", format))
		return
	}

	delta := h.Cfg.Valuation.ScenarioDelta
	if s := q.Get("delta"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || !(v >= 0) || math.IsInf(v, 0) {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid delta %q", s))
			return
		}
		delta = v
	}

	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	set, err := assumption.DecodeSet(body, h.Cfg.DefaultForm())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	a := set.Assumptions()
	res, err := valuation.ComputeValuation(a)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	var scenarios *valuation.ScenarioSet
	if delta > 0 {
		s := valuation.ComputeScenarios(a, delta)
		scenarios = &s
	}
	rep := report.New(set.Label, a, res, scenarios)
	f := report.NewFormatter(h.locale(r))
	fmt.Printf("[REPORT] %s case=%s format=%s lang=%s\n", rep.ID, set.CaseID, format, f.Tag)

	w.Header().Set("Content-Language", f.Tag.String())
	switch format {
	case "html":
		page, err := report.HTML(rep, f)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, page)
	case "csv":
		var buf bytes.Buffer
		if err := report.WriteCSV(&buf, rep, f); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "valuation-"+rep.ID+".csv"))
		w.Write(buf.Bytes())
	case "json":
		writeJSON(w, http.StatusOK, rep)
	default:
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, report.Markdown(rep, f))
	}
}

// DiscountRateResponse carries the build-up plus the rate in form units.
type DiscountRateResponse struct {
	valuation.DiscountRateBuild
	DiscountPct float64 `json:"discount_pct"`
}

// HandleDiscountRate builds a discount rate from a capital structure. Body
// fields are fractions; discount_pct in the response can be fed back into
// the form.
func (h *Handler) HandleDiscountRate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var in valuation.DiscountRateInput
	if _, err := utils.SmartParse(string(body), &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	build, err := valuation.BuildDiscountRate(in)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, DiscountRateResponse{
		DiscountRateBuild: build,
		DiscountPct:       report.Round2(build.DiscountRate * 100),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) locale(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	if al := r.Header.Get("Accept-Language"); al != "" {
		return al
	}
	return h.Cfg.Valuation.Locale
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty request body")
	}
	return body, nil
}

// statusFor maps engine errors to HTTP status codes: inputs outside the
// model's domain are 422, anything else is a server fault.
func statusFor(err error) int {
	var de *valuation.DomainError
	if errors.As(err, &de) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func nonNilWarnings(ws []validate.Warning) []validate.Warning {
	if ws == nil {
		return []validate.Warning{}
	}
	return ws
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("[ERROR] Failed to write JSON response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var de *valuation.DomainError
	if errors.As(err, &de) {
		resp.Kind = string(de.Kind)
	}
	writeJSON(w, status, resp)
}
