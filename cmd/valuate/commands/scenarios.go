package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"reit_valuation/pkg/core/report"
	"reit_valuation/pkg/core/valuation"
)

func scenariosCmd(opts *options) *cobra.Command {
	var (
		delta  float64
		asJSON bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Compare base, upside and downside valuations",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := opts.loadSet(cmd)
			if err != nil {
				return err
			}
			scenarios := valuation.ComputeScenarios(set.Assumptions(), opts.resolveDelta(delta))
			if strict {
				if err := scenarios.Err(); err != nil {
					return err
				}
			}
			lines := valuation.CompareScenarios(scenarios)

			w, closeOut, err := opts.output(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"delta_percent": scenarios.DeltaPercent,
					"comparison":    lines,
				})
			}

			f := report.NewFormatter(opts.lang)
			l := f.Labels
			fmt.Fprintf(w, "Δ = %s\n", f.PercentPoints(scenarios.DeltaPercent))
			for _, line := range lines {
				name := l.ScenarioName(string(line.Label))
				if line.Error != "" {
					fmt.Fprintf(w, "%-10s %s: %s\n", name, l.Failed, line.Error)
					continue
				}
				fmt.Fprintf(w, "%-10s %24s %10s\n", name, f.Money(line.TotalValue), f.PercentPoints(line.ChangePct))
			}
			return nil
		},
	}
	deltaFlag(cmd.Flags(), &delta)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail if any scenario cannot be valued")
	return cmd
}
