package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tverano/solarscout/internal/store"
	"github.com/tverano/solarscout/pkg/database"
)

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create database tables",
	Long: `Creates the properties, homeowners, roofs, utilities, and leads
tables plus their indexes. Safe to run repeatedly.

Example:
  go run ./cmd/scout initdb`,
	RunE: runInitDB,
}

func init() {
	rootCmd.AddCommand(initdbCmd)
}

func runInitDB(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := store.CreateTables(context.Background(), db.Pool); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	log.Info("Database schema created")
	fmt.Println("Database schema created")
	return nil
}
