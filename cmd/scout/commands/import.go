package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tverano/solarscout/internal/store"
	"github.com/tverano/solarscout/pkg/database"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import properties from CSV and score them",
	Long: `Imports a property CSV, enriches each property with utility,
roof, and homeowner data, scores the leads, and persists them when a
database is configured.

Examples:
  go run ./cmd/scout import --file properties.csv
  go run ./cmd/scout import --file properties.csv --no-db --out results.json`,
	RunE: runImport,
}

var (
	importFile string
	importOut  string
	importNoDB bool
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importFile, "file", "", "property CSV file (required)")
	importCmd.Flags().StringVar(&importOut, "out", "", "write results to this file instead of stdout")
	importCmd.Flags().BoolVar(&importNoDB, "no-db", false, "skip database persistence")
	importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	scorer, err := buildService(cfg, log)
	if err != nil {
		return err
	}

	var st *store.Store
	if !importNoDB {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		st = store.New(db.Pool)
	}

	pipeline, redisClient, err := buildPipeline(cfg, log, scorer, st)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	results, err := pipeline.ImportAndProcessCSV(context.Background(), importFile)
	if err != nil {
		return err
	}

	var scored, skipped int
	for _, result := range results {
		if result.Skipped != "" {
			skipped++
		} else {
			scored++
		}
	}
	fmt.Printf("Processed %d properties: %d scored, %d skipped\n", len(results), scored, skipped)

	return emitJSON(results, importOut)
}
