// Package commands implements the valuate CLI.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"reit_valuation/pkg/core/assumption"
	"reit_valuation/pkg/core/config"
)

// options are shared by every subcommand.
type options struct {
	configPath string
	file       string
	lang       string
	out        string

	cfg  *config.Config
	form assumption.Form // Flag values; merged over defaults and --file by loadSet
}

func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Exposed for tests.
func NewRootCmd() *cobra.Command {
	opts := &options{form: assumption.DefaultForm()}

	root := &cobra.Command{
		Use:          "valuate",
		Short:        "Income-approach (DCF) valuation of a leased REIT asset",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			if opts.lang == "" {
				opts.lang = cfg.Valuation.Locale
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.DefaultPath, "path to the YAML config file")
	pf.StringVarP(&opts.file, "file", "f", "", "assumption file (.json, .hjson, .yaml)")
	pf.StringVar(&opts.lang, "lang", "", "output language: zh-CN or en (default from config)")
	pf.StringVarP(&opts.out, "out", "o", "", "write output to this file instead of stdout")

	// Percent form, same units as the web form.
	pf.Float64Var(&opts.form.BaseRent, "base-rent", opts.form.BaseRent, "base rent per m² per month")
	pf.Float64Var(&opts.form.RentGrowthPct, "rent-growth", opts.form.RentGrowthPct, "annual rent growth, %")
	pf.Float64Var(&opts.form.OccupancyPct, "occupancy", opts.form.OccupancyPct, "occupancy, %")
	pf.Float64Var(&opts.form.OperatingCostPct, "cost", opts.form.OperatingCostPct, "operating cost ratio, % of rent")
	pf.Float64Var(&opts.form.DiscountPct, "discount", opts.form.DiscountPct, "discount rate, %")
	pf.Float64Var(&opts.form.TerminalGrowthPct, "terminal-growth", opts.form.TerminalGrowthPct, "terminal growth rate, %")
	pf.IntVar(&opts.form.TermYears, "term", opts.form.TermYears, "explicit forecast horizon, years")
	pf.Float64Var(&opts.form.GrossFloorArea, "area", opts.form.GrossFloorArea, "gross floor area, m²")

	root.AddCommand(computeCmd(opts), scenariosCmd(opts), reportCmd(opts), discountRateCmd(opts))
	return root
}

// loadSet resolves the assumptions: config defaults, then --file, then any
// form flag the user set explicitly.
func (o *options) loadSet(cmd *cobra.Command) (*assumption.Set, error) {
	set := assumption.NewSet("", o.cfg.DefaultForm())
	if o.file != "" {
		loaded, err := assumption.LoadFile(o.file, o.cfg.DefaultForm())
		if err != nil {
			return nil, err
		}
		set = loaded
	}

	flags := cmd.Flags()
	form, changed := set.Form, false
	override := func(name string, dst *float64, v float64) {
		if flags.Changed(name) {
			*dst, changed = v, true
		}
	}
	override("base-rent", &form.BaseRent, o.form.BaseRent)
	override("rent-growth", &form.RentGrowthPct, o.form.RentGrowthPct)
	override("occupancy", &form.OccupancyPct, o.form.OccupancyPct)
	override("cost", &form.OperatingCostPct, o.form.OperatingCostPct)
	override("discount", &form.DiscountPct, o.form.DiscountPct)
	override("terminal-growth", &form.TerminalGrowthPct, o.form.TerminalGrowthPct)
	override("area", &form.GrossFloorArea, o.form.GrossFloorArea)
	if flags.Changed("term") {
		form.TermYears, changed = o.form.TermYears, true
	}
	if changed {
		set.Update(form)
	}
	return set, nil
}

// output returns the destination writer and a close func.
func (o *options) output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if o.out == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(o.out)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", o.out, err)
	}
	return f, f.Close, nil
}

// deltaFlag registers --delta with the configured default resolved at run time.
func deltaFlag(fs *pflag.FlagSet, dst *float64) {
	fs.Float64Var(dst, "delta", -1, "scenario shift in percent (default from config)")
}

func (o *options) resolveDelta(v float64) float64 {
	if v < 0 {
		return o.cfg.Valuation.ScenarioDelta
	}
	return v
}
