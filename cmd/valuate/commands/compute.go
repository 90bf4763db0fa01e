package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"reit_valuation/pkg/core/report"
	"reit_valuation/pkg/core/validate"
	"reit_valuation/pkg/core/valuation"
)

func computeCmd(opts *options) *cobra.Command {
	var asJSON, yearly bool

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Value one assumption set and print the summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := opts.loadSet(cmd)
			if err != nil {
				return err
			}
			a := set.Assumptions()
			res, err := valuation.ComputeValuation(a)
			if err != nil {
				return err
			}

			w, closeOut, err := opts.output(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"case_id":     set.CaseID,
					"assumptions": a,
					"result":      res,
					"summary":     valuation.Summarize(res),
					"warnings":    validate.CheckAssumptions(a),
				})
			}

			f := report.NewFormatter(opts.lang)
			printSummary(w, f, valuation.Summarize(res))
			printWarnings(w, validate.CheckAssumptions(a))
			if yearly {
				printYearly(w, f, res)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVar(&yearly, "yearly", false, "also print the yearly cash flows")
	return cmd
}

func printSummary(w io.Writer, f *report.Formatter, s valuation.Summary) {
	l := f.Labels
	fmt.Fprintf(w, "%-24s %s\n", l.TotalValue, f.Money(s.TotalValue))
	fmt.Fprintf(w, "%-24s %s\n", l.PVCashFlows, f.Money(s.PVCashFlows))
	fmt.Fprintf(w, "%-24s %s\n", l.TerminalValue, f.Money(s.TerminalValue))
	fmt.Fprintf(w, "%-24s %s\n", l.PVTerminal, f.Money(s.PVTerminal))
	fmt.Fprintf(w, "%-24s %s\n", l.TerminalShare, f.Percent(s.TerminalShare))
	fmt.Fprintf(w, "%-24s %s\n", l.AverageNOI, f.Money(s.AverageNOI))
}

func printWarnings(w io.Writer, warnings []validate.Warning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "[WARNING] %s\n", warn)
	}
}

func printYearly(w io.Writer, f *report.Formatter, res *valuation.Result) {
	l := f.Labels
	fmt.Fprintf(w, "\n%6s %20s %20s %10s %20s\n", l.Year, l.Rent, l.NOI, l.DiscountFactor, l.PresentValue)
	for _, cf := range res.CashFlows {
		fmt.Fprintf(w, "%6d %20s %20s %10s %20s\n",
			cf.Year, f.Money(cf.Rent), f.Money(cf.NOI), f.Number(cf.DiscountFactor, 4), f.Money(cf.PresentValue))
	}
}
