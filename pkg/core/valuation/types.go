// Package valuation implements the income-approach DCF engine for a single
// income-producing real-estate asset.
//
// The engine is a pure function of its inputs: no I/O, no shared state, no
// logging. Callers (HTTP handlers, CLIs, report renderers) own presentation.
package valuation

// Assumptions holds the eight scalar inputs of one valuation run.
// All rates are fractional (0.06 == 6%).
type Assumptions struct {
	BaseRent           float64 `json:"base_rent" yaml:"base_rent"`                       // Monthly rent per m², year 1 basis
	RentGrowthRate     float64 `json:"rent_growth_rate" yaml:"rent_growth_rate"`         // Annual, compounding
	OccupancyRate      float64 `json:"occupancy_rate" yaml:"occupancy_rate"`             // (0, 1]
	OperatingCostRatio float64 `json:"operating_cost_ratio" yaml:"operating_cost_ratio"` // Share of gross rent, [0, 1)
	DiscountRate       float64 `json:"discount_rate" yaml:"discount_rate"`
	TerminalGrowthRate float64 `json:"terminal_growth_rate" yaml:"terminal_growth_rate"` // Must stay below DiscountRate
	TermYears          int     `json:"term_years" yaml:"term_years"`                     // Explicit projection years
	GrossFloorArea     float64 `json:"gross_floor_area" yaml:"gross_floor_area"`         // m²
}

// YearlyCashFlow is one projected year. Year is 1-based.
type YearlyCashFlow struct {
	Year           int     `json:"year"`
	Rent           float64 `json:"rent"`
	NOI            float64 `json:"noi"`
	DiscountFactor float64 `json:"discount_factor"` // (1 + r)^t
	PresentValue   float64 `json:"present_value"`
}

// Result holds the valuation outputs. CashFlows is chronological and has
// exactly TermYears entries.
type Result struct {
	CashFlows     []YearlyCashFlow `json:"cash_flows"`
	TerminalValue float64          `json:"terminal_value"` // As of year TermYears
	PVTerminal    float64          `json:"pv_terminal"`    // TerminalValue discounted to year 0
	PVCashFlows   float64          `json:"pv_cash_flows"`  // Sum of PresentValue
	TotalValue    float64          `json:"total_value"`
}

// NOISeries returns the yearly NOI values in chronological order.
func (r *Result) NOISeries() []float64 {
	out := make([]float64, len(r.CashFlows))
	for i, cf := range r.CashFlows {
		out[i] = cf.NOI
	}
	return out
}

// PresentValueSeries returns the yearly discounted NOI values.
func (r *Result) PresentValueSeries() []float64 {
	out := make([]float64, len(r.CashFlows))
	for i, cf := range r.CashFlows {
		out[i] = cf.PresentValue
	}
	return out
}
