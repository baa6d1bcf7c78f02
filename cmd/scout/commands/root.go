package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	scoringConfigPath string
	verbose           bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "SolarScout - residential solar lead generation and scoring",
	Long: `SolarScout CLI

Collects property, utility, roof, and homeowner data, estimates
electric bills, analyzes roof solar suitability, and scores leads.

Usage:
  go run ./cmd/scout [command]

Examples:
  go run ./cmd/scout score --file lead.json
  go run ./cmd/scout batch --file leads.json --out reports.json
  go run ./cmd/scout datagen --count 500 --out leads.json
  go run ./cmd/scout import --file properties.csv
  go run ./cmd/scout api`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&scoringConfigPath, "scoring-config", "", "scoring config YAML (overrides SCORING_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
