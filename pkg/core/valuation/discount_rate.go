package valuation

import "fmt"

// DiscountRateInput describes the capital structure used to build a discount
// rate for a leased asset. All rates are fractions.
type DiscountRateInput struct {
	RiskFreeRate      float64 `json:"risk_free_rate"`
	UnleveredBeta     float64 `json:"unlevered_beta"` // Asset beta of comparable REITs
	MarketRiskPremium float64 `json:"market_risk_premium"`
	PreTaxCostOfDebt  float64 `json:"pre_tax_cost_of_debt"`
	TaxRate           float64 `json:"tax_rate"`      // 0 for a tax-transparent vehicle
	LoanToValue       float64 `json:"loan_to_value"` // D / (D + E), [0, 1)
}

// DiscountRateBuild shows each step of the build-up.
type DiscountRateBuild struct {
	LeveredBeta  float64 `json:"levered_beta"`
	CostOfEquity float64 `json:"cost_of_equity"`
	CostOfDebt   float64 `json:"cost_of_debt"` // After tax
	WeightDebt   float64 `json:"weight_debt"`
	WeightEquity float64 `json:"weight_equity"`
	DiscountRate float64 `json:"discount_rate"`
}

// BuildDiscountRate derives a weighted discount rate with CAPM and the
// Hamada re-levering equation.
//
// FORMULA:
//
//	D/E  = LTV / (1 − LTV)
//	βL   = βU × (1 + (1 − t) × D/E)
//	Ke   = Rf + βL × MRP
//	Kd   = PreTaxKd × (1 − t)
//	r    = Ke × (1 − LTV) + Kd × LTV
func BuildDiscountRate(in DiscountRateInput) (DiscountRateBuild, error) {
	if in.LoanToValue < 0 || in.LoanToValue >= 1 {
		return DiscountRateBuild{}, fmt.Errorf("loan_to_value must be in [0, 1), got %g", in.LoanToValue)
	}

	debtToEquity := in.LoanToValue / (1 - in.LoanToValue)
	leveredBeta := in.UnleveredBeta * (1 + (1-in.TaxRate)*debtToEquity)
	ke := in.RiskFreeRate + leveredBeta*in.MarketRiskPremium
	kd := in.PreTaxCostOfDebt * (1 - in.TaxRate)

	wd := in.LoanToValue
	we := 1 - wd

	return DiscountRateBuild{
		LeveredBeta:  leveredBeta,
		CostOfEquity: ke,
		CostOfDebt:   kd,
		WeightDebt:   wd,
		WeightEquity: we,
		DiscountRate: ke*we + kd*wd,
	}, nil
}
