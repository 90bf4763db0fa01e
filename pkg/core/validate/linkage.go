package validate

import (
	"fmt"
	"math"

	"reit_valuation/pkg/core/valuation"
)

// =============================================================================
// RESULT LINKAGE (rent → NOI → PV → total)
// =============================================================================

// LinkageReport collects the internal consistency checks of one result.
type LinkageReport struct {
	TermYears    int      `json:"term_years"`
	AllPassed    bool     `json:"all_passed"`
	FailedChecks []string `json:"failed_checks,omitempty"`
}

func (r *LinkageReport) fail(format string, args ...any) {
	r.AllPassed = false
	r.FailedChecks = append(r.FailedChecks, fmt.Sprintf(format, args...))
}

// ValidateLinkages checks that a result agrees with its assumptions: one
// chronological row per year, NOI = rent × (1 − cost), PV = NOI / DF and
// total = ΣPV + PV(TV). tolerance is relative.
func ValidateLinkages(a valuation.Assumptions, res *valuation.Result, tolerance float64) *LinkageReport {
	report := &LinkageReport{TermYears: a.TermYears, AllPassed: true}
	if res == nil {
		report.fail("result is nil")
		return report
	}

	// 1. Shape
	if len(res.CashFlows) != a.TermYears {
		report.fail("expected %d yearly rows, got %d", a.TermYears, len(res.CashFlows))
	}

	// 2. Per-year identities
	var sumPV float64
	for i, cf := range res.CashFlows {
		if cf.Year != i+1 {
			report.fail("row %d carries year %d", i, cf.Year)
		}
		if !within(cf.NOI, cf.Rent*(1-a.OperatingCostRatio), tolerance) {
			report.fail("year %d: NOI %.2f != rent × (1 − cost)", cf.Year, cf.NOI)
		}
		if !within(cf.PresentValue*cf.DiscountFactor, cf.NOI, tolerance) {
			report.fail("year %d: PV × DF != NOI", cf.Year)
		}
		if !isFinite(cf.PresentValue) {
			report.fail("year %d: present value not finite", cf.Year)
		}
		sumPV += cf.PresentValue
	}

	// 3. Totals
	if !within(sumPV, res.PVCashFlows, tolerance) {
		report.fail("ΣPV %.2f != PVCashFlows %.2f", sumPV, res.PVCashFlows)
	}
	if !within(res.PVCashFlows+res.PVTerminal, res.TotalValue, tolerance) {
		report.fail("PVCashFlows + PVTerminal != TotalValue")
	}
	if !isFinite(res.TotalValue) || !isFinite(res.TerminalValue) {
		report.fail("summary values not finite")
	}

	return report
}

func within(a, b, tolerance float64) bool {
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return diff == 0
	}
	return diff <= tolerance*scale
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
