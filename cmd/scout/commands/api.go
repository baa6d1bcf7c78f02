package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tverano/solarscout/internal/api"
	"github.com/tverano/solarscout/internal/api/handlers"
	"github.com/tverano/solarscout/internal/store"
	"github.com/tverano/solarscout/pkg/database"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET   /health                         - Health check
  POST  /api/v1/leads/score             - Score one lead
  POST  /api/v1/leads/batch             - Score a batch of leads
  POST  /api/v1/leads/address           - Collect and score one address
  GET   /api/v1/leads                   - List stored leads by score
  PATCH /api/v1/leads/{lead_id}/status  - Update lead workflow status
  GET   /ws/batch                       - Batch scoring with live progress

Example:
  go run ./cmd/scout api
  go run ./cmd/scout api --port 8080 --no-db`,
	RunE: runAPIServer,
}

var (
	apiPort string
	apiNoDB bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
	apiCmd.Flags().BoolVar(&apiNoDB, "no-db", false, "run without a database")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	scorer, err := buildService(cfg, log)
	if err != nil {
		return err
	}

	var db *database.DB
	var st *store.Store
	if !apiNoDB {
		db, err = database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		st = store.New(db.Pool)
		log.Info("Connected to database")
	}

	pipeline, redisClient, err := buildPipeline(cfg, log, scorer, st)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	leadHandler := handlers.NewLeadHandler(scorer, pipeline, st, log)
	healthHandler := handlers.NewHealthHandler(db, log)

	router := api.NewRouter(leadHandler, healthHandler, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\nPress Ctrl+C to stop\n", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
