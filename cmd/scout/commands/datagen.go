package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tverano/solarscout/internal/datagen"
)

var datagenCmd = &cobra.Command{
	Use:   "datagen",
	Short: "Generate synthetic lead data",
	Long: `Generates a synthetic Texas lead dataset for demos and testing.

The same seed always produces the same dataset.

Examples:
  go run ./cmd/scout datagen --count 500 --out leads.json
  go run ./cmd/scout datagen --count 100 --seed 7 --out leads.json`,
	RunE: runDatagen,
}

var (
	datagenCount int
	datagenSeed  int64
	datagenOut   string
)

func init() {
	rootCmd.AddCommand(datagenCmd)

	datagenCmd.Flags().IntVar(&datagenCount, "count", 100, "number of leads to generate")
	datagenCmd.Flags().Int64Var(&datagenSeed, "seed", 42, "random seed")
	datagenCmd.Flags().StringVar(&datagenOut, "out", "leads.json", "output JSON file")
}

func runDatagen(cmd *cobra.Command, args []string) error {
	_, log, err := setup()
	if err != nil {
		return err
	}

	if datagenCount <= 0 {
		return fmt.Errorf("--count must be positive")
	}

	gen := datagen.NewGenerator(datagenSeed, log)
	leads := gen.GenerateLeadRecords(datagenCount)

	if err := gen.SaveJSON(leads, datagenOut); err != nil {
		return err
	}

	fmt.Printf("Generated %d leads to %s (seed %d)\n", len(leads), datagenOut, datagenSeed)
	return nil
}
