package valuation

import (
	"fmt"
	"math"
)

// MaxTermYears is the longest explicit horizon the engine will project. One
// cash-flow row is kept per year, so the bound also caps the result size.
const MaxTermYears = 1000

// CheckDomain returns a DomainError when the assumptions cannot produce a
// finite valuation. Business-range problems are not reported here; see
// package validate for those.
func CheckDomain(a Assumptions) error {
	if a.TermYears < 1 || a.TermYears > MaxTermYears {
		return &DomainError{
			Kind:   ErrInvalidTerm,
			Detail: fmt.Sprintf("term_years must be between 1 and %d, got %d", MaxTermYears, a.TermYears),
		}
	}
	inputs := []struct {
		name string
		v    float64
	}{
		{"base_rent", a.BaseRent},
		{"rent_growth_rate", a.RentGrowthRate},
		{"occupancy_rate", a.OccupancyRate},
		{"operating_cost_ratio", a.OperatingCostRatio},
		{"discount_rate", a.DiscountRate},
		{"terminal_growth_rate", a.TerminalGrowthRate},
		{"gross_floor_area", a.GrossFloorArea},
	}
	for _, in := range inputs {
		if math.IsNaN(in.v) || math.IsInf(in.v, 0) {
			return &DomainError{
				Kind:   ErrNonFinite,
				Detail: fmt.Sprintf("%s must be a finite number, got %v", in.name, in.v),
			}
		}
	}
	if !(a.DiscountRate > a.TerminalGrowthRate) {
		return &DomainError{
			Kind:   ErrTerminalUndefined,
			Detail: fmt.Sprintf("discount_rate %.4f must exceed terminal_growth_rate %.4f", a.DiscountRate, a.TerminalGrowthRate),
		}
	}
	return nil
}

// ComputeValuation projects rent and NOI for each explicit year, capitalizes a
// Gordon-growth terminal value and discounts everything to year 0.
//
// FORMULA (end-of-year convention, exponents start at t = 1):
//
//	rent(t)  = BaseRent × (1+g_rent)^t × Occupancy × Area × 12
//	noi(t)   = rent(t) × (1 − OpCostRatio)
//	TV       = noi(T) × (1+g) / (r − g)
//	PV(t)    = noi(t) / (1+r)^t
//	Total    = Σ PV(t) + TV / (1+r)^T
func ComputeValuation(a Assumptions) (*Result, error) {
	if err := CheckDomain(a); err != nil {
		return nil, err
	}

	res := &Result{CashFlows: make([]YearlyCashFlow, 0, min(a.TermYears, MaxTermYears))}

	annualBase := a.BaseRent * a.OccupancyRate * a.GrossFloorArea * 12
	for t := 1; t <= a.TermYears; t++ {
		// 1. Rent and NOI
		rent := annualBase * math.Pow(1+a.RentGrowthRate, float64(t))
		noi := rent * (1 - a.OperatingCostRatio)

		// 2. Discount
		df := math.Pow(1+a.DiscountRate, float64(t))
		pv := noi / df

		res.CashFlows = append(res.CashFlows, YearlyCashFlow{
			Year:           t,
			Rent:           rent,
			NOI:            noi,
			DiscountFactor: df,
			PresentValue:   pv,
		})
		res.PVCashFlows += pv
	}

	// 3. Terminal value on one-period-grown final NOI, discounted with the
	// final year's factor.
	last := res.CashFlows[len(res.CashFlows)-1]
	res.TerminalValue = last.NOI * (1 + a.TerminalGrowthRate) / (a.DiscountRate - a.TerminalGrowthRate)
	res.PVTerminal = res.TerminalValue / last.DiscountFactor

	res.TotalValue = res.PVCashFlows + res.PVTerminal
	if math.IsNaN(res.TotalValue) || math.IsInf(res.TotalValue, 0) {
		return nil, &DomainError{
			Kind:   ErrNonFinite,
			Detail: fmt.Sprintf("total_value overflowed to %v", res.TotalValue),
		}
	}
	return res, nil
}
