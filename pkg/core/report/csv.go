package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV exports the yearly sequence followed by the summary metrics.
// Numbers are raw (unrounded, ungrouped, in base money units) so spreadsheets
// can recompute from them; headers follow the formatter's language.
func WriteCSV(w io.Writer, r *Report, f *Formatter) error {
	l := f.Labels
	cw := csv.NewWriter(w)

	rows := [][]string{
		{l.Year, l.Rent, l.NOI, l.NOIGrowth, l.DiscountFactor, l.PresentValue},
	}
	for _, cf := range r.Result.CashFlows {
		growth := ""
		if g, ok := r.growthFor(cf.Year); ok {
			growth = raw(g)
		}
		rows = append(rows, []string{
			strconv.Itoa(cf.Year),
			raw(cf.Rent),
			raw(cf.NOI),
			growth,
			raw(cf.DiscountFactor),
			raw(cf.PresentValue),
		})
	}

	s := r.Summary
	rows = append(rows,
		[]string{},
		[]string{l.Metric, l.Value},
		[]string{l.TotalValue, raw(s.TotalValue)},
		[]string{l.PVCashFlows, raw(s.PVCashFlows)},
		[]string{l.TerminalValue, raw(s.TerminalValue)},
		[]string{l.PVTerminal, raw(s.PVTerminal)},
		[]string{l.TerminalShare, raw(s.TerminalShare)},
		[]string{l.AverageNOI, raw(s.AverageNOI)},
		[]string{l.NOICAGR, raw(r.NOICAGR)},
	)

	for _, line := range r.Scenarios {
		name := l.Scenario + ":" + l.ScenarioName(string(line.Label))
		if line.Error != "" {
			rows = append(rows, []string{name, "", line.Error})
			continue
		}
		rows = append(rows, []string{name, raw(line.TotalValue), raw(line.ChangePct)})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func raw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
