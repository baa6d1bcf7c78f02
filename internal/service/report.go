package service

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tverano/solarscout/internal/billing"
	"github.com/tverano/solarscout/internal/roof"
	"github.com/tverano/solarscout/internal/scoring"
)

// Report is the comprehensive scoring result for one lead.
type Report struct {
	LeadScore        *scoring.Result         `json:"lead_score,omitempty"`
	RoofAnalysis     *roof.Analysis          `json:"roof_analysis,omitempty"`
	BillAnalysis     *billing.FactorAnalysis `json:"bill_analysis,omitempty"`
	AnnualProfile    *billing.AnnualProfile  `json:"annual_bill_profile,omitempty"`
	Summary          *Summary                `json:"summary,omitempty"`
	DataCompleteness DataCompleteness        `json:"data_completeness"`
	Error            string                  `json:"error,omitempty"`
	Timestamp        time.Time               `json:"timestamp"`
}

// Summary is the quick-reference view of a report.
type Summary struct {
	OverallScore              int                     `json:"overall_score"`
	Qualification             string                  `json:"qualification"`
	ComponentScores           scoring.ComponentScores `json:"component_scores"`
	RoofSuitability           string                  `json:"roof_suitability,omitempty"`
	RecommendedSystemSizeKW   float64                 `json:"recommended_system_size_kw,omitempty"`
	EstimatedAnnualProduction float64                 `json:"estimated_annual_production,omitempty"`
	EstimatedMonthlyBill      float64                 `json:"estimated_monthly_bill,omitempty"`
}

// DataCompleteness records which sections of the lead were populated.
type DataCompleteness struct {
	Property bool `json:"property_data"`
	Utility  bool `json:"utility_data"`
	Roof     bool `json:"roof_data"`
	Owner    bool `json:"owner_data"`
}

// BatchReport bundles per-lead reports with the batch-level score
// distribution.
type BatchReport struct {
	Results  []*Report             `json:"results"`
	Analysis *scoring.Distribution `json:"analysis"`
}

func summarize(report *Report) *Summary {
	summary := &Summary{}

	if report.LeadScore != nil {
		summary.OverallScore = report.LeadScore.OverallScore
		summary.Qualification = report.LeadScore.Qualification
		summary.ComponentScores = report.LeadScore.ComponentScores
	}

	if report.RoofAnalysis != nil {
		summary.RoofSuitability = report.RoofAnalysis.Suitability
		if est := report.RoofAnalysis.SystemEstimate; est != nil {
			summary.RecommendedSystemSizeKW = est.SystemSizeKW
			summary.EstimatedAnnualProduction = est.AnnualProduction
		}
	}

	if report.BillAnalysis != nil {
		summary.EstimatedMonthlyBill = report.BillAnalysis.BaseBill
	}

	return summary
}

// SaveReport writes a report to a JSON file.
func (s *Service) SaveReport(report *Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	s.logger.WithField("path", path).Info("Saved scoring report")
	return nil
}

// LoadReport reads a report back from a JSON file.
func (s *Service) LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}

	s.logger.WithField("path", path).Info("Loaded scoring report")
	return &report, nil
}
