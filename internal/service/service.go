package service

import (
	"time"

	"github.com/tverano/solarscout/internal/billing"
	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/internal/roof"
	"github.com/tverano/solarscout/internal/scoring"
	"github.com/tverano/solarscout/internal/scoringconfig"
	"github.com/tverano/solarscout/pkg/logger"
)

// Service wires the bill estimator, roof analyzer, and lead scoring
// engine into a single per-lead workflow. The engines never see each
// other; all sequencing lives here.
type Service struct {
	estimator *billing.Estimator
	analyzer  *roof.Analyzer
	engine    *scoring.Engine
	logger    *logger.Logger
}

// New builds a service from an optional file config. A nil config uses
// the built-in defaults for every engine.
func New(cfg *scoringconfig.Config, log *logger.Logger) *Service {
	return &Service{
		estimator: billing.NewEstimator(cfg.BillingConfig(), log),
		analyzer:  roof.NewAnalyzer(cfg.RoofConfig(), log),
		engine:    scoring.NewEngine(cfg.ScoringConfig(), log),
		logger:    log,
	}
}

// Estimator exposes the underlying bill estimator for ZIP-only flows.
func (s *Service) Estimator() *billing.Estimator {
	return s.estimator
}

// ScoreLead runs the full scoring workflow for one lead: fill in the
// bill estimate and annual profile when the record has none, analyze the
// roof and size a system for it, score the lead, and perturb the bill
// inputs for the factor analysis. The utility record on the lead is
// updated in place with the estimates so downstream persistence sees
// them.
func (s *Service) ScoreLead(lead *contracts.LeadRecord) *Report {
	if lead == nil || lead.Property == nil {
		return &Report{
			Error:     "no property data",
			Timestamp: time.Now(),
		}
	}

	s.logger.WithField("address", lead.Property.AddressLine1).Info("Scoring lead")

	if lead.Utility == nil {
		lead.Utility = &contracts.Utility{PropertyID: lead.Property.PropertyID}
	}

	var annualProfile *billing.AnnualProfile
	if lead.Utility.EstimatedMonthlyBill == nil {
		monthlyBill := s.estimator.EstimateMonthlyBill(lead.Property, lead.Utility, billing.MonthAnnual)
		lead.Utility.EstimatedMonthlyBill = contracts.Float64(monthlyBill)

		annualProfile = s.estimator.EstimateAnnualBillProfile(lead.Property, lead.Utility)

		rate := 0.12
		if lead.Utility.ResidentialRate != nil {
			rate = *lead.Utility.ResidentialRate
		}
		if rate > 0 {
			lead.Utility.EstimatedAnnualUsage = contracts.Float64(annualProfile.AnnualTotal / rate)
		}
	}

	var roofAnalysis *roof.Analysis
	if lead.Roof != nil {
		roofAnalysis = s.analyzer.AnalyzeSuitability(lead.Roof)
		roofAnalysis.SystemEstimate = s.analyzer.EstimateSystemSize(lead.Roof, lead.Utility)
	}

	leadScore := s.engine.Score(scoring.Input{
		Property:     lead.Property,
		Utility:      lead.Utility,
		Roof:         lead.Roof,
		Owner:        lead.Owner,
		RoofAnalysis: roofAnalysis,
	})

	billAnalysis := s.estimator.AnalyzeBillFactors(lead.Property, lead.Utility)

	report := &Report{
		LeadScore:     leadScore,
		RoofAnalysis:  roofAnalysis,
		BillAnalysis:  billAnalysis,
		AnnualProfile: annualProfile,
		DataCompleteness: DataCompleteness{
			Property: true,
			Utility:  lead.Utility != nil,
			Roof:     lead.Roof != nil,
			Owner:    lead.Owner != nil,
		},
		Timestamp: time.Now(),
	}
	report.Summary = summarize(report)

	return report
}

// BatchScore scores every lead that carries property data and summarizes
// the score distribution over the batch.
func (s *Service) BatchScore(leads []*contracts.LeadRecord) *BatchReport {
	return s.BatchScoreWithProgress(leads, nil)
}

// BatchScoreWithProgress is BatchScore with a per-lead callback, used by
// the API layer to stream progress. progress may be nil.
func (s *Service) BatchScoreWithProgress(leads []*contracts.LeadRecord, progress func(done, total int, report *Report)) *BatchReport {
	s.logger.WithField("count", len(leads)).Info("Batch scoring leads")

	results := make([]*Report, 0, len(leads))
	for i, lead := range leads {
		if lead == nil || lead.Property == nil {
			continue
		}
		report := s.ScoreLead(lead)
		results = append(results, report)
		if progress != nil {
			progress(i+1, len(leads), report)
		}
	}

	scores := make([]float64, 0, len(results))
	for _, r := range results {
		if r.LeadScore != nil && r.LeadScore.Qualification != scoring.QualificationError {
			scores = append(scores, float64(r.LeadScore.OverallScore))
		}
	}

	return &BatchReport{
		Results:  results,
		Analysis: scoring.AnalyzeDistribution(scores),
	}
}
