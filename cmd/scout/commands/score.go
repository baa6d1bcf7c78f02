package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tverano/solarscout/internal/contracts"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single lead",
	Long: `Scores one lead and prints the full report.

Input is either a lead JSON file or an address. Addresses run through
the collection pipeline first.

Examples:
  go run ./cmd/scout score --file lead.json
  go run ./cmd/scout score --address "123 Main St" --city Austin --state TX --zip 78701
  go run ./cmd/scout score --file lead.json --out report.json`,
	RunE: runScore,
}

var (
	scoreFile    string
	scoreAddress string
	scoreCity    string
	scoreState   string
	scoreZip     string
	scoreOut     string
)

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&scoreFile, "file", "", "lead JSON file")
	scoreCmd.Flags().StringVar(&scoreAddress, "address", "", "street address")
	scoreCmd.Flags().StringVar(&scoreCity, "city", "", "city")
	scoreCmd.Flags().StringVar(&scoreState, "state", "TX", "state")
	scoreCmd.Flags().StringVar(&scoreZip, "zip", "", "ZIP code")
	scoreCmd.Flags().StringVar(&scoreOut, "out", "", "write report to this file instead of stdout")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	scorer, err := buildService(cfg, log)
	if err != nil {
		return err
	}

	var lead *contracts.LeadRecord

	switch {
	case scoreFile != "":
		data, err := os.ReadFile(scoreFile)
		if err != nil {
			return fmt.Errorf("read lead file: %w", err)
		}
		lead = &contracts.LeadRecord{}
		if err := json.Unmarshal(data, lead); err != nil {
			return fmt.Errorf("parse lead file: %w", err)
		}

	case scoreAddress != "" && scoreZip != "":
		pipeline, redisClient, err := buildPipeline(cfg, log, scorer, nil)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		result, err := pipeline.ProcessAddress(context.Background(), scoreAddress, scoreCity, scoreState, scoreZip)
		if err != nil {
			return err
		}
		if result.Skipped != "" {
			fmt.Printf("Property skipped: %s\n", result.Skipped)
			return nil
		}
		return emitReport(scorer, result.Report, scoreOut)

	default:
		return fmt.Errorf("either --file or --address with --zip is required")
	}

	report := scorer.ScoreLead(lead)
	return emitReport(scorer, report, scoreOut)
}
