package jobs

import (
	"context"
	"fmt"

	"github.com/tverano/solarscout/internal/collect"
	"github.com/tverano/solarscout/internal/store"
	"github.com/tverano/solarscout/pkg/logger"
)

// RateRefreshJob warms the utility rate cache for every ZIP code with
// stored properties, so the nightly re-score and daytime API traffic
// hit fresh rates.
type RateRefreshJob struct {
	store     *store.Store
	utilities *collect.UtilityCollector
	logger    *logger.Logger
}

// NewRateRefreshJob creates a new rate refresh job.
func NewRateRefreshJob(st *store.Store, utilities *collect.UtilityCollector, log *logger.Logger) *RateRefreshJob {
	return &RateRefreshJob{
		store:     st,
		utilities: utilities,
		logger:    log,
	}
}

// Name returns the job name.
func (j *RateRefreshJob) Name() string {
	return "utility_rate_refresh"
}

// Schedule returns the cron schedule (every day at 1 AM, before the
// re-score job).
func (j *RateRefreshJob) Schedule() string {
	return "0 0 1 * * *"
}

// Run refreshes rates for all known ZIP codes.
func (j *RateRefreshJob) Run(ctx context.Context) error {
	zips, err := j.store.Properties.ListZipCodes(ctx)
	if err != nil {
		return fmt.Errorf("list zip codes: %w", err)
	}

	var refreshed, failed int
	for _, zip := range zips {
		if _, err := j.utilities.FetchRatesByZip(ctx, zip); err != nil {
			failed++
			j.logger.WithError(err).WithField("zip", zip).Warn("Rate refresh failed for ZIP")
			continue
		}
		refreshed++
	}

	j.logger.WithFields(map[string]interface{}{
		"refreshed": refreshed,
		"failed":    failed,
	}).Info("Utility rate refresh completed")

	return nil
}
