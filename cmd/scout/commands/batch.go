package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/internal/service"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a batch of leads",
	Long: `Scores every lead in a JSON file and prints the batch report
with the score distribution.

Examples:
  go run ./cmd/scout batch --file leads.json
  go run ./cmd/scout batch --file leads.json --out reports.json`,
	RunE: runBatch,
}

var (
	batchFile string
	batchOut  string
)

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchFile, "file", "", "leads JSON file (required)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "write batch report to this file instead of stdout")
	batchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	scorer, err := buildService(cfg, log)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(batchFile)
	if err != nil {
		return fmt.Errorf("read leads file: %w", err)
	}

	var leads []*contracts.LeadRecord
	if err := json.Unmarshal(data, &leads); err != nil {
		return fmt.Errorf("parse leads file: %w", err)
	}
	if len(leads) == 0 {
		return fmt.Errorf("no leads in %s", batchFile)
	}

	report := scorer.BatchScoreWithProgress(leads, func(done, total int, _ *service.Report) {
		if done%100 == 0 || done == total {
			fmt.Printf("  scored %d/%d\n", done, total)
		}
	})

	if report.Analysis != nil && report.Analysis.Count > 0 {
		fmt.Printf("\nScore distribution (n=%d): mean=%.1f median=%.1f min=%.0f max=%.0f\n",
			report.Analysis.Count, report.Analysis.Mean, report.Analysis.Median,
			report.Analysis.Min, report.Analysis.Max)
	}

	return emitJSON(report, batchOut)
}
