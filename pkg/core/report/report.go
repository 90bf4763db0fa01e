// Package report turns valuation results into documents for people: a
// Markdown/HTML report, a CSV export and chart series. It never computes
// valuations itself.
package report

import (
	"time"

	"github.com/google/uuid"

	"reit_valuation/pkg/core/validate"
	"reit_valuation/pkg/core/valuation"
)

// Report is the renderer-independent content of one valuation report.
type Report struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title,omitempty"` // Asset name; the localized heading is used when empty
	GeneratedAt time.Time               `json:"generated_at"`
	Assumptions valuation.Assumptions   `json:"assumptions"`
	Result      *valuation.Result       `json:"result"`
	Summary     valuation.Summary       `json:"summary"`
	NOICAGR     float64                 `json:"noi_cagr"` // Percent
	NOIGrowth   []float64               `json:"noi_growth"`
	Scenarios   []valuation.SummaryLine `json:"scenarios,omitempty"`
	Warnings    []validate.Warning      `json:"warnings,omitempty"`
}

// New assembles a report. scenarios may be nil.
func New(title string, a valuation.Assumptions, res *valuation.Result, scenarios *valuation.ScenarioSet) *Report {
	noi := res.NOISeries()
	r := &Report{
		ID:          uuid.NewString(),
		Title:       title,
		GeneratedAt: time.Now(),
		Assumptions: a,
		Result:      res,
		Summary:     valuation.Summarize(res),
		NOICAGR:     validate.SeriesCAGR(noi),
		NOIGrowth:   validate.YoYSeries(noi),
		Warnings:    validate.CheckAssumptions(a),
	}
	if scenarios != nil {
		r.Scenarios = valuation.CompareScenarios(*scenarios)
	}
	return r
}

// growthFor returns the NOI growth into year (1-based); false for year 1.
func (r *Report) growthFor(year int) (float64, bool) {
	i := year - 2
	if i < 0 || i >= len(r.NOIGrowth) {
		return 0, false
	}
	return r.NOIGrowth[i], true
}

// =============================================================================
// CHART SERIES
// =============================================================================

// ChartSeries is the data a charting layer plots: NOI and its present value
// per year.
type ChartSeries struct {
	Years        []int     `json:"years"`
	Rent         []float64 `json:"rent"`
	NOI          []float64 `json:"noi"`
	PresentValue []float64 `json:"present_value"`
}

// Chart extracts plot series from a result.
func Chart(res *valuation.Result) ChartSeries {
	s := ChartSeries{
		Years:        make([]int, len(res.CashFlows)),
		Rent:         make([]float64, len(res.CashFlows)),
		NOI:          res.NOISeries(),
		PresentValue: res.PresentValueSeries(),
	}
	for i, cf := range res.CashFlows {
		s.Years[i] = cf.Year
		s.Rent[i] = cf.Rent
	}
	return s
}
