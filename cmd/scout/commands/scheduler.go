package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tverano/solarscout/internal/collect"
	"github.com/tverano/solarscout/internal/scheduler"
	"github.com/tverano/solarscout/internal/scheduler/jobs"
	"github.com/tverano/solarscout/internal/store"
	"github.com/tverano/solarscout/pkg/database"
	"github.com/tverano/solarscout/pkg/redis"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the background job scheduler",
	Long: `Runs the background jobs:

  utility_rate_refresh - daily at 1 AM, refreshes cached utility rates
  lead_rescore         - daily at 2 AM, re-scores all stored leads

Example:
  go run ./cmd/scout scheduler
  go run ./cmd/scout scheduler --run-now lead_rescore`,
	RunE: runScheduler,
}

var schedulerRunNow string

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().StringVar(&schedulerRunNow, "run-now", "", "run one job immediately on startup")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	scorer, err := buildService(cfg, log)
	if err != nil {
		return err
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	st := store.New(db.Pool)

	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	cache := redis.NewCache(redisClient, "solarscout")

	utilities := collect.NewUtilityCollector(cache, log)

	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewRateRefreshJob(st, utilities, log)); err != nil {
		return err
	}
	if err := sched.AddJob(jobs.NewRescoreJob(st, scorer, log)); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	if schedulerRunNow != "" {
		if err := sched.RunJob(schedulerRunNow); err != nil {
			return err
		}
	}

	fmt.Println("Scheduler running. Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
