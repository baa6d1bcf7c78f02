package jobs

import (
	"context"
	"fmt"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/internal/service"
	"github.com/tverano/solarscout/internal/store"
	"github.com/tverano/solarscout/pkg/logger"
)

// RescoreJob re-scores every stored lead nightly so scores track data
// and configuration changes. Workflow status set by the sales team is
// preserved unless the lead becomes disqualified.
type RescoreJob struct {
	store  *store.Store
	scorer *service.Service
	logger *logger.Logger
}

// NewRescoreJob creates a new re-score job.
func NewRescoreJob(st *store.Store, scorer *service.Service, log *logger.Logger) *RescoreJob {
	return &RescoreJob{
		store:  st,
		scorer: scorer,
		logger: log,
	}
}

// Name returns the job name.
func (j *RescoreJob) Name() string {
	return "lead_rescore"
}

// Schedule returns the cron schedule (every day at 2 AM).
func (j *RescoreJob) Schedule() string {
	return "0 0 2 * * *"
}

// Run re-scores all stored leads.
func (j *RescoreJob) Run(ctx context.Context) error {
	leads, err := j.store.Leads.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list leads: %w", err)
	}

	j.logger.WithField("count", len(leads)).Info("Re-scoring stored leads")

	var updated, failed int
	for _, lead := range leads {
		if err := j.rescore(ctx, lead); err != nil {
			failed++
			j.logger.WithError(err).WithField("lead_id", lead.LeadID).Warn("Re-score failed for lead")
			continue
		}
		updated++
	}

	j.logger.WithFields(map[string]interface{}{
		"updated": updated,
		"failed":  failed,
	}).Info("Lead re-score completed")

	if failed > 0 && updated == 0 {
		return fmt.Errorf("all %d re-scores failed", failed)
	}
	return nil
}

func (j *RescoreJob) rescore(ctx context.Context, lead *contracts.Lead) error {
	property, err := j.store.Properties.GetByID(ctx, lead.PropertyID)
	if err != nil {
		return fmt.Errorf("load property: %w", err)
	}

	record := &contracts.LeadRecord{Property: property}

	// Missing enrichment rows are fine, the engine scores with defaults.
	if utility, err := j.store.Utilities.GetByProperty(ctx, lead.PropertyID); err == nil {
		record.Utility = utility
	}
	if roof, err := j.store.Roofs.GetByProperty(ctx, lead.PropertyID); err == nil {
		record.Roof = roof
	}
	if owner, err := j.store.Homeowners.GetByProperty(ctx, lead.PropertyID); err == nil {
		record.Owner = owner
	}

	report := j.scorer.ScoreLead(record)
	if report.LeadScore == nil {
		return fmt.Errorf("scoring produced no result")
	}

	lead.OverallScore = report.LeadScore.OverallScore
	lead.Qualification = report.LeadScore.Qualification
	if report.LeadScore.Disqualified {
		lead.Status = contracts.LeadStatusDisqualified
		lead.Notes = report.LeadScore.DisqualificationReason
	}

	return j.store.Leads.Save(ctx, lead)
}
