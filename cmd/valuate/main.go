package main

import (
	"os"

	"reit_valuation/cmd/valuate/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
