package report

import (
	"fmt"
	"strings"
)

// Markdown renders the report as GitHub-flavoured Markdown.
func Markdown(r *Report, f *Formatter) string {
	l := f.Labels
	var b strings.Builder

	title := l.Title
	if r.Title != "" {
		title = r.Title + " · " + l.Title
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "%s: %s  \n", l.ReportID, r.ID)
	fmt.Fprintf(&b, "%s: %s\n\n", l.GeneratedAt, r.GeneratedAt.Format("2006-01-02 15:04:05"))

	// Summary
	fmt.Fprintf(&b, "## %s\n\n", l.SectionSummary)
	writeRow(&b, l.Metric, l.Value)
	writeRow(&b, "---", "---:")
	s := r.Summary
	writeRow(&b, "**"+l.TotalValue+"**", "**"+f.Money(s.TotalValue)+"**")
	writeRow(&b, l.PVCashFlows, f.Money(s.PVCashFlows))
	writeRow(&b, l.TerminalValue, f.Money(s.TerminalValue))
	writeRow(&b, l.PVTerminal, f.Money(s.PVTerminal))
	writeRow(&b, l.TerminalShare, f.Percent(s.TerminalShare))
	writeRow(&b, l.AverageNOI, f.Money(s.AverageNOI))
	writeRow(&b, l.FirstYearNOI, f.Money(s.FirstYearNOI))
	writeRow(&b, l.LastYearNOI, f.Money(s.LastYearNOI))
	writeRow(&b, l.NOICAGR, f.PercentPoints(r.NOICAGR))
	b.WriteString("\n")

	// Inputs
	a := r.Assumptions
	fmt.Fprintf(&b, "## %s\n\n", l.SectionInputs)
	writeRow(&b, l.Metric, l.Value)
	writeRow(&b, "---", "---:")
	writeRow(&b, l.BaseRent, WithUnit(f.Number(a.BaseRent, 2), l.RentUnit))
	writeRow(&b, l.RentGrowthRate, f.Percent(a.RentGrowthRate))
	writeRow(&b, l.OccupancyRate, f.Percent(a.OccupancyRate))
	writeRow(&b, l.OperatingCostRatio, f.Percent(a.OperatingCostRatio))
	writeRow(&b, l.DiscountRate, f.Percent(a.DiscountRate))
	writeRow(&b, l.TerminalGrowthRate, f.Percent(a.TerminalGrowthRate))
	writeRow(&b, l.TermYears, WithUnit(f.Integer(a.TermYears), l.YearsUnit))
	writeRow(&b, l.GrossFloorArea, WithUnit(f.Number(a.GrossFloorArea, 2), l.AreaUnit))
	b.WriteString("\n")

	// Scenarios
	if len(r.Scenarios) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", l.SectionScenarios)
		writeRow(&b, l.Scenario, l.TotalValue, l.Change)
		writeRow(&b, "---", "---:", "---:")
		for _, line := range r.Scenarios {
			name := l.ScenarioName(string(line.Label))
			if line.Error != "" {
				writeRow(&b, name, l.Failed, line.Error)
				continue
			}
			writeRow(&b, name, f.Money(line.TotalValue), f.PercentPoints(line.ChangePct))
		}
		b.WriteString("\n")
	}

	// Warnings
	fmt.Fprintf(&b, "## %s\n\n", l.SectionWarnings)
	if len(r.Warnings) == 0 {
		fmt.Fprintf(&b, "%s\n\n", l.NoWarning)
	} else {
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "- `%s` %s\n", w.Field, w.Message)
		}
		b.WriteString("\n")
	}

	// Yearly table
	fmt.Fprintf(&b, "## %s\n\n", l.SectionYearly)
	writeRow(&b, l.Year, l.Rent, l.NOI, l.NOIGrowth, l.DiscountFactor, l.PresentValue)
	writeRow(&b, "---:", "---:", "---:", "---:", "---:", "---:")
	for _, cf := range r.Result.CashFlows {
		growth := "-"
		if g, ok := r.growthFor(cf.Year); ok {
			growth = f.PercentPoints(g)
		}
		writeRow(&b,
			f.Integer(cf.Year),
			f.Money(cf.Rent),
			f.Money(cf.NOI),
			growth,
			f.Number(cf.DiscountFactor, 4),
			f.Money(cf.PresentValue),
		)
	}

	return b.String()
}

func writeRow(b *strings.Builder, cells ...string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(c, "|", `\|`))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
