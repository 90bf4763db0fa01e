package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"reit_valuation/pkg/core/report"
	"reit_valuation/pkg/core/valuation"
)

func reportCmd(opts *options) *cobra.Command {
	var (
		format string
		title  string
		delta  float64
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a full valuation report (md, html, csv or json)",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			switch format {
			case "md", "markdown", "html", "csv", "json":
			default:
				return fmt.Errorf("unsupported format %q", format)
			}

			set, err := opts.loadSet(cmd)
			if err != nil {
				return err
			}
			a := set.Assumptions()
			res, err := valuation.ComputeValuation(a)
			if err != nil {
				return err
			}

			var scenarios *valuation.ScenarioSet
			if d := opts.resolveDelta(delta); d > 0 {
				s := valuation.ComputeScenarios(a, d)
				scenarios = &s
			}
			if title == "" {
				title = set.Label
			}
			rep := report.New(title, a, res, scenarios)

			w, closeOut, err := opts.output(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			if err := render(w, rep, report.NewFormatter(opts.lang), format); err != nil {
				return err
			}
			if opts.out != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "[REPORT] %s written to %s\n", rep.ID, opts.out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "md", "md, html, csv or json")
	cmd.Flags().StringVar(&title, "title", "", "asset name shown in the heading")
	deltaFlag(cmd.Flags(), &delta)
	return cmd
}

func render(w io.Writer, rep *report.Report, f *report.Formatter, format string) error {
	switch format {
	case "html":
		page, err := report.HTML(rep, f)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, page)
		return err
	case "csv":
		return report.WriteCSV(w, rep, f)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	default:
		_, err := io.WriteString(w, report.Markdown(rep, f))
		return err
	}
}
