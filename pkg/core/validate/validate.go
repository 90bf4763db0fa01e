// Package validate provides reusable validation utilities for valuation inputs
// and outputs. These functions can be called from tests, API handlers, or CLIs;
// none of them block a valuation.
package validate

import (
	"fmt"
	"math"

	"reit_valuation/pkg/core/valuation"
)

// =============================================================================
// ASSUMPTION WARNINGS
// =============================================================================

// Warning codes.
const (
	CodeOutOfRange      = "OUT_OF_RANGE"
	CodeNonPositive     = "NON_POSITIVE"
	CodeLongTerm        = "LONG_TERM"
	CodeTerminalSpread  = "TERMINAL_SPREAD"
	CodeTerminalInvalid = "TERMINAL_INVALID"
)

// MaxPlausibleTerm is the longest projection treated as ordinary.
const MaxPlausibleTerm = 200

// MinTerminalSpread below which the terminal value dominates everything else.
const MinTerminalSpread = 0.01

// Warning flags an input outside its documented business range.
type Warning struct {
	Field   string  `json:"field"`
	Code    string  `json:"code"`
	Value   float64 `json:"value"`
	Message string  `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s [%s]: %s", w.Field, w.Code, w.Message)
}

// CheckAssumptions returns every business-range warning for a. An empty slice
// means the inputs look plausible.
func CheckAssumptions(a valuation.Assumptions) []Warning {
	var out []Warning

	if a.BaseRent <= 0 {
		out = append(out, Warning{"base_rent", CodeNonPositive, a.BaseRent, "base rent should be positive"})
	}
	if a.GrossFloorArea <= 0 {
		out = append(out, Warning{"gross_floor_area", CodeNonPositive, a.GrossFloorArea, "gross floor area should be positive"})
	}
	if a.OccupancyRate <= 0 || a.OccupancyRate > 1 {
		out = append(out, Warning{"occupancy_rate", CodeOutOfRange, a.OccupancyRate,
			fmt.Sprintf("occupancy %.2f%% is outside (0%%, 100%%]", a.OccupancyRate*100)})
	}
	if a.OperatingCostRatio < 0 || a.OperatingCostRatio >= 1 {
		out = append(out, Warning{"operating_cost_ratio", CodeOutOfRange, a.OperatingCostRatio,
			fmt.Sprintf("operating cost %.2f%% is outside [0%%, 100%%)", a.OperatingCostRatio*100)})
	}
	if a.DiscountRate <= 0 {
		out = append(out, Warning{"discount_rate", CodeNonPositive, a.DiscountRate, "discount rate should be positive"})
	}
	if a.TermYears > MaxPlausibleTerm {
		out = append(out, Warning{"term_years", CodeLongTerm, float64(a.TermYears),
			fmt.Sprintf("term of %d years exceeds %d", a.TermYears, MaxPlausibleTerm)})
	}

	spread := a.DiscountRate - a.TerminalGrowthRate
	switch {
	case spread <= 0:
		out = append(out, Warning{"terminal_growth_rate", CodeTerminalInvalid, a.TerminalGrowthRate,
			"terminal growth must stay below the discount rate"})
	case spread < MinTerminalSpread:
		out = append(out, Warning{"terminal_growth_rate", CodeTerminalSpread, spread,
			fmt.Sprintf("discount/terminal spread of %.2f%% makes the terminal value dominate", spread*100)})
	}

	return out
}

// =============================================================================
// YEAR-OVER-YEAR (YoY)
// =============================================================================

// CalculateYoY calculates year-over-year change between two values.
// Returns percentage change: (current - prior) / prior * 100
func CalculateYoY(current, prior float64) float64 {
	if prior == 0 {
		if current == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return (current - prior) / prior * 100
}

// YoYSeries returns the YoY change for each element after the first.
func YoYSeries(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = CalculateYoY(values[i], values[i-1])
	}
	return out
}

// =============================================================================
// CAGR (Compound Annual Growth Rate)
// =============================================================================

// CalculateCAGR calculates compound annual growth rate.
// CAGR = ((EndValue / StartValue) ^ (1/years)) - 1, as percentage
func CalculateCAGR(startValue, endValue float64, years int) float64 {
	if startValue <= 0 || years <= 0 {
		return 0
	}
	return (math.Pow(endValue/startValue, 1.0/float64(years)) - 1) * 100
}

// SeriesCAGR is CAGR from the first to the last element of values.
func SeriesCAGR(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return CalculateCAGR(values[0], values[len(values)-1], len(values)-1)
}
