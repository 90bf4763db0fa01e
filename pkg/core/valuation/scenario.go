package valuation

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ScenarioLabel names one assumption variant.
type ScenarioLabel string

const (
	ScenarioBase     ScenarioLabel = "base"
	ScenarioUpside   ScenarioLabel = "upside"
	ScenarioDownside ScenarioLabel = "downside"
)

// ScenarioRule describes how a scenario shifts the base assumptions.
// Direction +1 pushes value up (rent, growth, occupancy and terminal growth
// scaled by 1+d, discount rate by 1−d), −1 mirrors it, 0 leaves the base as is.
// Operating cost, area and term never move.
type ScenarioRule struct {
	Label     ScenarioLabel `json:"label"`
	Direction int           `json:"direction"`
}

// DefaultRules is the Base, Upside, Downside ordering used across the API.
var DefaultRules = []ScenarioRule{
	{Label: ScenarioBase, Direction: 0},
	{Label: ScenarioUpside, Direction: 1},
	{Label: ScenarioDownside, Direction: -1},
}

// Apply returns a new Assumptions record shifted by deltaPercent.
func (r ScenarioRule) Apply(base Assumptions, deltaPercent float64) Assumptions {
	if r.Direction == 0 {
		return base
	}
	shift := float64(r.Direction) * deltaPercent / 100
	up := 1 + shift
	down := 1 - shift

	out := base
	out.BaseRent = base.BaseRent * up
	out.RentGrowthRate = base.RentGrowthRate * up
	out.OccupancyRate = base.OccupancyRate * up
	out.DiscountRate = base.DiscountRate * down
	out.TerminalGrowthRate = base.TerminalGrowthRate * up
	return out
}

// ScenarioOutcome is the result of one scenario. Exactly one of Result and
// Err is set.
type ScenarioOutcome struct {
	Label       ScenarioLabel `json:"label"`
	Assumptions Assumptions   `json:"assumptions"`
	Result      *Result       `json:"result,omitempty"`
	Err         error         `json:"-"`
}

// ScenarioSet holds outcomes in rule order.
type ScenarioSet struct {
	DeltaPercent float64           `json:"delta_percent"`
	Outcomes     []ScenarioOutcome `json:"outcomes"`
}

// Get returns the outcome for label.
func (s ScenarioSet) Get(label ScenarioLabel) (ScenarioOutcome, bool) {
	for _, o := range s.Outcomes {
		if o.Label == label {
			return o, true
		}
	}
	return ScenarioOutcome{}, false
}

// Err returns the first scenario error in rule order, for callers that abort
// the whole batch on any failure.
func (s ScenarioSet) Err() error {
	for _, o := range s.Outcomes {
		if o.Err != nil {
			return o.Err
		}
	}
	return nil
}

// Succeeded returns only the outcomes that produced a result.
func (s ScenarioSet) Succeeded() []ScenarioOutcome {
	out := make([]ScenarioOutcome, 0, len(s.Outcomes))
	for _, o := range s.Outcomes {
		if o.Err == nil {
			out = append(out, o)
		}
	}
	return out
}

// ApplyRules maps each rule to its own Assumptions record.
func ApplyRules(base Assumptions, rules []ScenarioRule, deltaPercent float64) []Assumptions {
	out := make([]Assumptions, len(rules))
	for i, r := range rules {
		out[i] = r.Apply(base, deltaPercent)
	}
	return out
}

// ComputeScenarios evaluates Base, Upside and Downside.
func ComputeScenarios(base Assumptions, deltaPercent float64) ScenarioSet {
	return ComputeScenariosWithRules(base, DefaultRules, deltaPercent)
}

// ComputeScenariosWithRules evaluates every rule concurrently. A DomainError
// in one scenario is kept on its outcome and does not stop the others.
func ComputeScenariosWithRules(base Assumptions, rules []ScenarioRule, deltaPercent float64) ScenarioSet {
	variants := ApplyRules(base, rules, deltaPercent)
	outcomes := make([]ScenarioOutcome, len(rules))

	var g errgroup.Group
	for i := range rules {
		i := i
		g.Go(func() error {
			outcomes[i] = ScenarioOutcome{Label: rules[i].Label, Assumptions: variants[i]}
			// A panic here would bypass any HTTP recoverer and end the process.
			defer func() {
				if r := recover(); r != nil {
					outcomes[i].Result = nil
					outcomes[i].Err = fmt.Errorf("scenario %s: %v", rules[i].Label, r)
				}
			}()
			outcomes[i].Result, outcomes[i].Err = ComputeValuation(variants[i])
			return nil // non-fatal, kept on the outcome
		})
	}
	_ = g.Wait()

	return ScenarioSet{DeltaPercent: deltaPercent, Outcomes: outcomes}
}
