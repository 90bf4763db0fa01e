package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"reit_valuation/pkg/core/assumption"
	"reit_valuation/pkg/core/config"
	"reit_valuation/pkg/core/validate"
	"reit_valuation/pkg/core/valuation"
)

func main() {
	mode := flag.String("mode", "calculate", "Mode: check or calculate")
	dataStr := flag.String("data", "", "Assumption form payload (JSON or Hjson, rates in percent)")
	tolerance := flag.Float64("tolerance", 1e-6, "Relative tolerance for linkage checks")
	configPath := flag.String("config", config.DefaultPath, "YAML config supplying defaults for missing fields")
	flag.Parse()

	if *dataStr == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	form, err := assumption.DecodeForm([]byte(*dataStr), cfg.DefaultForm())
	if err != nil {
		fmt.Printf("Error decoding data: %v\n", err)
		os.Exit(1)
	}
	a := form.ToAssumptions()

	switch *mode {
	case "check":
		if !runChecks(a, *tolerance) {
			os.Exit(2)
		}
	case "calculate":
		if err := runCalculations(a); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(2)
		}
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

// runChecks prints input warnings and verifies the computed sequence is
// internally consistent. Warnings alone do not fail the check.
func runChecks(a valuation.Assumptions, tolerance float64) bool {
	for _, w := range validate.CheckAssumptions(a) {
		fmt.Printf("Warning: %s\n", w)
	}

	res, err := valuation.ComputeValuation(a)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return false
	}

	report := validate.ValidateLinkages(a, res, tolerance)
	if report.AllPassed {
		fmt.Printf("Success: %d years, NOI → PV → total linkages hold\n", report.TermYears)
		return true
	}
	for _, failed := range report.FailedChecks {
		fmt.Printf("Error: %s\n", failed)
	}
	return false
}

func runCalculations(a valuation.Assumptions) error {
	res, err := valuation.ComputeValuation(a)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
