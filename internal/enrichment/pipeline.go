package enrichment

import (
	"context"
	"fmt"
	"strings"

	"github.com/tverano/solarscout/internal/collect"
	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/internal/service"
	"github.com/tverano/solarscout/internal/store"
	"github.com/tverano/solarscout/pkg/logger"
)

// Pipeline runs a property through collection, enrichment, scoring, and
// persistence. The store is optional; without it the pipeline still
// collects and scores, which is how the offline CLI paths run.
type Pipeline struct {
	properties *collect.PropertyCollector
	utilities  *collect.UtilityCollector
	roofs      *collect.RoofCollector
	tracer     *collect.SkipTracer
	scorer     *service.Service
	store      *store.Store
	logger     *logger.Logger
}

// New creates a pipeline. st may be nil.
func New(
	properties *collect.PropertyCollector,
	utilities *collect.UtilityCollector,
	roofs *collect.RoofCollector,
	tracer *collect.SkipTracer,
	scorer *service.Service,
	st *store.Store,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		properties: properties,
		utilities:  utilities,
		roofs:      roofs,
		tracer:     tracer,
		scorer:     scorer,
		store:      st,
		logger:     log,
	}
}

// Result is the outcome of one pipeline run.
type Result struct {
	Lead    *contracts.LeadRecord `json:"lead"`
	Report  *service.Report       `json:"report"`
	LeadID  string                `json:"lead_id,omitempty"`
	Skipped string                `json:"skipped,omitempty"`
}

// ProcessAddress runs the full pipeline for one address.
func (p *Pipeline) ProcessAddress(ctx context.Context, address, city, state, zipCode string) (*Result, error) {
	p.logger.WithFields(map[string]interface{}{
		"address": address,
		"city":    city,
		"zip":     zipCode,
	}).Info("Processing property")

	property, err := p.properties.FetchByAddress(ctx, address, city, state, zipCode)
	if err != nil {
		return nil, fmt.Errorf("fetch property: %w", err)
	}

	return p.ProcessProperty(ctx, property)
}

// ProcessProperty enriches and scores an already-collected property.
// Properties failing the basic criteria are skipped, not errored.
func (p *Pipeline) ProcessProperty(ctx context.Context, property *contracts.Property) (*Result, error) {
	if property == nil {
		return nil, fmt.Errorf("no property data")
	}

	if reason := BasicCriteria(property); reason != "" {
		p.logger.WithFields(map[string]interface{}{
			"address": property.AddressLine1,
			"reason":  reason,
		}).Info("Property skipped")
		return &Result{Skipped: reason}, nil
	}

	lead := &contracts.LeadRecord{Property: property}

	utility, err := p.utilities.FetchRatesByZip(ctx, property.ZipCode)
	if err != nil {
		p.logger.WithError(err).Warn("Utility lookup failed")
	} else {
		utility.PropertyID = property.PropertyID
		lead.Utility = utility
	}

	if property.Latitude != nil && property.Longitude != nil {
		roof, err := p.roofs.FetchRoofData(ctx, *property.Latitude, *property.Longitude)
		if err != nil {
			p.logger.WithError(err).Warn("Roof lookup failed")
		} else {
			roof.PropertyID = property.PropertyID
			lead.Roof = roof
		}
	}

	owner, err := p.tracer.TraceOwner(ctx, property)
	if err != nil {
		p.logger.WithError(err).Warn("Skip trace failed")
	} else {
		lead.Owner = owner
	}

	report := p.scorer.ScoreLead(lead)

	result := &Result{Lead: lead, Report: report}

	if p.store != nil {
		leadID, err := p.persist(ctx, lead, report)
		if err != nil {
			return nil, fmt.Errorf("persist lead: %w", err)
		}
		result.LeadID = leadID
	}

	return result, nil
}

// BatchProcess runs the pipeline over a set of properties.
func (p *Pipeline) BatchProcess(ctx context.Context, properties []*contracts.Property) []*Result {
	p.logger.WithField("count", len(properties)).Info("Batch processing properties")

	results := make([]*Result, 0, len(properties))
	for _, property := range properties {
		result, err := p.ProcessProperty(ctx, property)
		if err != nil {
			p.logger.WithError(err).WithField("address", property.AddressLine1).Error("Pipeline failed for property")
			continue
		}
		results = append(results, result)
	}

	p.logger.WithFields(map[string]interface{}{
		"processed": len(results),
		"total":     len(properties),
	}).Info("Batch processing complete")

	return results
}

// ImportAndProcessCSV imports properties from a CSV file and runs the
// pipeline over them.
func (p *Pipeline) ImportAndProcessCSV(ctx context.Context, path string) ([]*Result, error) {
	properties, err := p.properties.ImportFromCSV(path)
	if err != nil {
		return nil, err
	}
	return p.BatchProcess(ctx, properties), nil
}

// BasicCriteria checks the pre-enrichment gate. Returns the skip reason,
// or empty when the property qualifies. Missing fields pass; the scoring
// engine handles them with neutral defaults later.
func BasicCriteria(property *contracts.Property) string {
	if property.PropertyType != nil &&
		!strings.EqualFold(*property.PropertyType, contracts.PropertyTypeSingleFamily) {
		return "not a single-family home"
	}
	if property.IsOwnerOccupied != nil && !*property.IsOwnerOccupied {
		return "not owner-occupied"
	}
	if property.HasSolarInstallation != nil && *property.HasSolarInstallation {
		return "already has solar installation"
	}
	if property.HasSolarPermit != nil && *property.HasSolarPermit {
		return "solar permit on file"
	}
	return ""
}

func (p *Pipeline) persist(ctx context.Context, lead *contracts.LeadRecord, report *service.Report) (string, error) {
	if err := p.store.Properties.Save(ctx, lead.Property); err != nil {
		return "", err
	}
	if lead.Utility != nil {
		lead.Utility.PropertyID = lead.Property.PropertyID
		if err := p.store.Utilities.Save(ctx, lead.Utility); err != nil {
			return "", err
		}
	}
	if lead.Roof != nil {
		lead.Roof.PropertyID = lead.Property.PropertyID
		if err := p.store.Roofs.Save(ctx, lead.Roof); err != nil {
			return "", err
		}
	}
	if lead.Owner != nil {
		lead.Owner.PropertyID = lead.Property.PropertyID
		if err := p.store.Homeowners.Save(ctx, lead.Owner); err != nil {
			return "", err
		}
	}

	entity := &contracts.Lead{
		PropertyID: lead.Property.PropertyID,
		Status:     contracts.LeadStatusNew,
	}
	if report != nil && report.LeadScore != nil {
		entity.OverallScore = report.LeadScore.OverallScore
		entity.Qualification = report.LeadScore.Qualification
		if report.LeadScore.Disqualified {
			entity.Status = contracts.LeadStatusDisqualified
			entity.Notes = report.LeadScore.DisqualificationReason
		}
	}

	// Re-scoring updates the existing lead row instead of inserting a
	// duplicate.
	if existing, err := p.store.Leads.GetByProperty(ctx, lead.Property.PropertyID); err == nil {
		entity.LeadID = existing.LeadID
		entity.CreatedAt = existing.CreatedAt
		if existing.Status != contracts.LeadStatusNew && entity.Status != contracts.LeadStatusDisqualified {
			entity.Status = existing.Status
		}
	}

	if err := p.store.Leads.Save(ctx, entity); err != nil {
		return "", err
	}
	return entity.LeadID, nil
}
