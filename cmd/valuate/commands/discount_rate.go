package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"reit_valuation/pkg/core/report"
	"reit_valuation/pkg/core/valuation"
)

func discountRateCmd(opts *options) *cobra.Command {
	var rf, beta, mrp, kd, tax, ltv float64

	cmd := &cobra.Command{
		Use:   "discount-rate",
		Short: "Build a discount rate from CAPM and the capital structure",
		RunE: func(cmd *cobra.Command, args []string) error {
			build, err := valuation.BuildDiscountRate(valuation.DiscountRateInput{
				RiskFreeRate:      rf / 100,
				UnleveredBeta:     beta,
				MarketRiskPremium: mrp / 100,
				PreTaxCostOfDebt:  kd / 100,
				TaxRate:           tax / 100,
				LoanToValue:       ltv / 100,
			})
			if err != nil {
				return err
			}

			w, closeOut, err := opts.output(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			f := report.NewFormatter(opts.lang)
			fmt.Fprintf(w, "%-16s %s\n", "Levered beta", f.Number(build.LeveredBeta, 4))
			fmt.Fprintf(w, "%-16s %s\n", "Cost of equity", f.Percent(build.CostOfEquity))
			fmt.Fprintf(w, "%-16s %s\n", "Cost of debt", f.Percent(build.CostOfDebt))
			fmt.Fprintf(w, "%-16s %s\n", "Discount rate", f.Percent(build.DiscountRate))
			fmt.Fprintf(w, "\n--discount %.2f\n", report.Round2(build.DiscountRate*100))
			return nil
		},
	}

	fl := cmd.Flags()
	fl.Float64Var(&rf, "risk-free", 2.5, "risk-free rate, %")
	fl.Float64Var(&beta, "beta", 0.6, "unlevered asset beta")
	fl.Float64Var(&mrp, "mrp", 6, "market risk premium, %")
	fl.Float64Var(&kd, "cost-of-debt", 4, "pre-tax cost of debt, %")
	fl.Float64Var(&tax, "tax", 0, "tax rate, %")
	fl.Float64Var(&ltv, "ltv", 0, "loan to value, %")
	return cmd
}
