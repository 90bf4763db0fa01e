package valuation

// Summary aggregates the headline metrics shown next to the yearly table.
type Summary struct {
	TotalValue    float64 `json:"total_value"`
	PVCashFlows   float64 `json:"pv_cash_flows"`
	TerminalValue float64 `json:"terminal_value"`
	PVTerminal    float64 `json:"pv_terminal"`
	TerminalShare float64 `json:"terminal_share"` // PVTerminal / TotalValue
	AverageNOI    float64 `json:"average_noi"`    // Mean over the explicit years
	FirstYearNOI  float64 `json:"first_year_noi"`
	LastYearNOI   float64 `json:"last_year_noi"`
	TermYears     int     `json:"term_years"`
}

// Summarize derives the headline metrics from a result.
func Summarize(r *Result) Summary {
	s := Summary{
		TotalValue:    r.TotalValue,
		PVCashFlows:   r.PVCashFlows,
		TerminalValue: r.TerminalValue,
		PVTerminal:    r.PVTerminal,
		TermYears:     len(r.CashFlows),
	}
	if len(r.CashFlows) == 0 {
		return s
	}

	var sum float64
	for _, cf := range r.CashFlows {
		sum += cf.NOI
	}
	s.AverageNOI = sum / float64(len(r.CashFlows))
	s.FirstYearNOI = r.CashFlows[0].NOI
	s.LastYearNOI = r.CashFlows[len(r.CashFlows)-1].NOI

	if r.TotalValue != 0 {
		s.TerminalShare = r.PVTerminal / r.TotalValue
	}
	return s
}

// SummaryLine is one row of a scenario comparison table.
type SummaryLine struct {
	Label      ScenarioLabel `json:"label"`
	TotalValue float64       `json:"total_value"`
	ChangePct  float64       `json:"change_pct"` // Versus base, in percent
	Error      string        `json:"error,omitempty"`
}

// CompareScenarios lines every outcome up against the base scenario.
// ChangePct stays 0 when the base failed.
func CompareScenarios(set ScenarioSet) []SummaryLine {
	var baseValue float64
	if base, ok := set.Get(ScenarioBase); ok && base.Result != nil {
		baseValue = base.Result.TotalValue
	}

	lines := make([]SummaryLine, 0, len(set.Outcomes))
	for _, o := range set.Outcomes {
		line := SummaryLine{Label: o.Label}
		if o.Err != nil {
			line.Error = o.Err.Error()
			lines = append(lines, line)
			continue
		}
		line.TotalValue = o.Result.TotalValue
		if baseValue != 0 {
			line.ChangePct = (o.Result.TotalValue - baseValue) / baseValue * 100
		}
		lines = append(lines, line)
	}
	return lines
}
