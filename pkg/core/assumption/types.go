// Package assumption implements the input side of a valuation: the form the
// user fills in (rates in percent), named assumption sets, and loaders for
// hand-written assumption files.
package assumption

import (
	"time"

	"github.com/google/uuid"

	"reit_valuation/pkg/core/valuation"
)

// =============================================================================
// FORM (user-facing units)
// =============================================================================

// Form holds the eight inputs as a user enters them: rates in percent,
// rent per m² per month, area in m².
type Form struct {
	BaseRent          float64 `json:"base_rent" yaml:"base_rent"`                     // 元/㎡/月
	RentGrowthPct     float64 `json:"rent_growth_pct" yaml:"rent_growth_pct"`         // %
	OccupancyPct      float64 `json:"occupancy_pct" yaml:"occupancy_pct"`             // %
	OperatingCostPct  float64 `json:"operating_cost_pct" yaml:"operating_cost_pct"`   // %
	DiscountPct       float64 `json:"discount_pct" yaml:"discount_pct"`               // %
	TerminalGrowthPct float64 `json:"terminal_growth_pct" yaml:"terminal_growth_pct"` // %
	TermYears         int     `json:"term_years" yaml:"term_years"`
	GrossFloorArea    float64 `json:"gross_floor_area" yaml:"gross_floor_area"` // ㎡
}

// DefaultForm returns the defaults of the original valuation form.
func DefaultForm() Form {
	return Form{
		BaseRent:          60.73,
		RentGrowthPct:     0.67,
		OccupancyPct:      98.0,
		OperatingCostPct:  15.5,
		DiscountPct:       6.0,
		TerminalGrowthPct: 2.5,
		TermYears:         64,
		GrossFloorArea:    53606.58,
	}
}

// ToAssumptions converts percent inputs to the engine's fractional rates.
func (f Form) ToAssumptions() valuation.Assumptions {
	return valuation.Assumptions{
		BaseRent:           f.BaseRent,
		RentGrowthRate:     f.RentGrowthPct / 100,
		OccupancyRate:      f.OccupancyPct / 100,
		OperatingCostRatio: f.OperatingCostPct / 100,
		DiscountRate:       f.DiscountPct / 100,
		TerminalGrowthRate: f.TerminalGrowthPct / 100,
		TermYears:          f.TermYears,
		GrossFloorArea:     f.GrossFloorArea,
	}
}

// FromAssumptions is the inverse of ToAssumptions.
func FromAssumptions(a valuation.Assumptions) Form {
	return Form{
		BaseRent:          a.BaseRent,
		RentGrowthPct:     a.RentGrowthRate * 100,
		OccupancyPct:      a.OccupancyRate * 100,
		OperatingCostPct:  a.OperatingCostRatio * 100,
		DiscountPct:       a.DiscountRate * 100,
		TerminalGrowthPct: a.TerminalGrowthRate * 100,
		TermYears:         a.TermYears,
		GrossFloorArea:    a.GrossFloorArea,
	}
}

// =============================================================================
// ASSUMPTION SET (named, identified form)
// =============================================================================

// Set is a labelled Form with an identity, as exchanged with the UI and
// stored in assumption files.
type Set struct {
	CaseID    string    `json:"case_id" yaml:"case_id"`
	Label     string    `json:"label" yaml:"label"`
	Form      Form      `json:"form" yaml:"form"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewSet creates a set with a fresh CaseID.
func NewSet(label string, form Form) *Set {
	now := time.Now()
	return &Set{
		CaseID:    uuid.NewString(),
		Label:     label,
		Form:      form,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Update replaces the form and bumps UpdatedAt.
func (s *Set) Update(form Form) {
	s.Form = form
	s.UpdatedAt = time.Now()
}

// Assumptions returns the engine input for this set.
func (s *Set) Assumptions() valuation.Assumptions {
	return s.Form.ToAssumptions()
}

// ensureIdentity fills a missing CaseID or timestamps after decoding.
func (s *Set) ensureIdentity() {
	if s.CaseID == "" {
		s.CaseID = uuid.NewString()
	} else if _, err := uuid.Parse(s.CaseID); err != nil {
		s.CaseID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = s.CreatedAt
	}
}
