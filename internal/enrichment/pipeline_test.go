package enrichment

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tverano/solarscout/internal/collect"
	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/internal/service"
	"github.com/tverano/solarscout/pkg/logger"
)

func newTestPipeline() *Pipeline {
	log := logger.NewNop()
	return New(
		collect.NewPropertyCollector(nil, nil, "", log),
		collect.NewUtilityCollector(nil, log),
		collect.NewRoofCollector(log),
		collect.NewSkipTracer(log),
		service.New(nil, log),
		nil, // offline, no store
		log,
	)
}

func qualifyingProperty() *contracts.Property {
	return &contracts.Property{
		PropertyID:           "PROP-000001",
		AddressLine1:         "1200 Barton Springs Rd",
		City:                 "Austin",
		State:                "TX",
		ZipCode:              "78704",
		Latitude:             contracts.Float64(30.2672),
		Longitude:            contracts.Float64(-97.7431),
		PropertyType:         contracts.String(contracts.PropertyTypeSingleFamily),
		YearBuilt:            contracts.Int(2010),
		SquareFootage:        contracts.Float64(2000),
		AssessedValue:        contracts.Float64(350000),
		IsOwnerOccupied:      contracts.Bool(true),
		HasSolarInstallation: contracts.Bool(false),
		HasSolarPermit:       contracts.Bool(false),
	}
}

func TestProcessProperty(t *testing.T) {
	p := newTestPipeline()

	result, err := p.ProcessProperty(context.Background(), qualifyingProperty())
	if err != nil {
		t.Fatalf("ProcessProperty failed: %v", err)
	}

	if result.Skipped != "" {
		t.Fatalf("unexpected skip: %s", result.Skipped)
	}
	if result.Lead == nil || result.Report == nil {
		t.Fatal("expected lead and report")
	}
	if result.Lead.Utility == nil {
		t.Error("expected utility enrichment")
	}
	if result.Lead.Roof == nil {
		t.Error("expected roof enrichment from coordinates")
	}
	if result.Lead.Owner == nil {
		t.Error("expected owner enrichment")
	}
	if result.Report.LeadScore == nil || result.Report.LeadScore.Qualification == "" {
		t.Error("expected a scored lead")
	}
	// Offline runs assign no lead id.
	if result.LeadID != "" {
		t.Errorf("unexpected lead id without a store: %s", result.LeadID)
	}

	// Enrichment records point back at the property.
	if result.Lead.Utility.PropertyID != "PROP-000001" ||
		result.Lead.Roof.PropertyID != "PROP-000001" ||
		result.Lead.Owner.PropertyID != "PROP-000001" {
		t.Error("enrichment records should carry the property id")
	}
}

func TestProcessProperty_NoCoordinates(t *testing.T) {
	p := newTestPipeline()

	property := qualifyingProperty()
	property.Latitude = nil
	property.Longitude = nil

	result, err := p.ProcessProperty(context.Background(), property)
	if err != nil {
		t.Fatalf("ProcessProperty failed: %v", err)
	}
	if result.Lead.Roof != nil {
		t.Error("roof lookup needs coordinates")
	}
	if result.Report.LeadScore == nil {
		t.Error("scoring should proceed without a roof")
	}
}

func TestProcessProperty_Skipped(t *testing.T) {
	p := newTestPipeline()

	property := qualifyingProperty()
	property.IsOwnerOccupied = contracts.Bool(false)

	result, err := p.ProcessProperty(context.Background(), property)
	if err != nil {
		t.Fatalf("ProcessProperty failed: %v", err)
	}
	if result.Skipped != "not owner-occupied" {
		t.Errorf("skip reason: got %q", result.Skipped)
	}
	if result.Lead != nil || result.Report != nil {
		t.Error("skipped properties should not be enriched")
	}
}

func TestProcessProperty_Nil(t *testing.T) {
	p := newTestPipeline()

	if _, err := p.ProcessProperty(context.Background(), nil); err == nil {
		t.Error("expected error for nil property")
	}
}

func TestProcessAddress(t *testing.T) {
	p := newTestPipeline()

	if _, err := p.ProcessAddress(context.Background(), "", "Austin", "TX", "78704"); err == nil {
		t.Error("expected error for missing address")
	}

	// The mock collector may synthesize a property that fails the gate;
	// both outcomes are valid, an error is not.
	result, err := p.ProcessAddress(context.Background(), "1200 Barton Springs Rd", "Austin", "TX", "78704")
	if err != nil {
		t.Fatalf("ProcessAddress failed: %v", err)
	}
	if result.Skipped == "" && result.Report == nil {
		t.Error("expected either a skip reason or a report")
	}
}

func TestBatchProcess(t *testing.T) {
	p := newTestPipeline()

	skipped := qualifyingProperty()
	skipped.HasSolarInstallation = contracts.Bool(true)

	results := p.BatchProcess(context.Background(), []*contracts.Property{
		qualifyingProperty(),
		skipped,
	})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Report == nil {
		t.Error("first property should be scored")
	}
	if results[1].Skipped != "already has solar installation" {
		t.Errorf("second property skip reason: got %q", results[1].Skipped)
	}
}

func TestImportAndProcessCSV(t *testing.T) {
	p := newTestPipeline()

	csv := `address,city,state,zip_code,property_type,is_owner_occupied
1200 Barton Springs Rd,Austin,TX,78704,Single Family,yes
500 Commerce St,Dallas,TX,75201,duplex,yes
`
	path := filepath.Join(t.TempDir(), "leads.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	results, err := p.ImportAndProcessCSV(context.Background(), path)
	if err != nil {
		t.Fatalf("ImportAndProcessCSV failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Report == nil || results[0].Skipped != "" {
		t.Error("single-family row should be scored")
	}
	if results[1].Skipped != "not a single-family home" {
		t.Errorf("duplex skip reason: got %q", results[1].Skipped)
	}

	if _, err := p.ImportAndProcessCSV(context.Background(), "/nonexistent.csv"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBasicCriteria(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*contracts.Property)
		want     string
	}{
		{"qualifying", func(p *contracts.Property) {}, ""},
		{
			"multi-family",
			func(p *contracts.Property) { p.PropertyType = contracts.String(contracts.PropertyTypeMultiFamily) },
			"not a single-family home",
		},
		{
			"rented",
			func(p *contracts.Property) { p.IsOwnerOccupied = contracts.Bool(false) },
			"not owner-occupied",
		},
		{
			"has installation",
			func(p *contracts.Property) { p.HasSolarInstallation = contracts.Bool(true) },
			"already has solar installation",
		},
		{
			"has permit",
			func(p *contracts.Property) { p.HasSolarPermit = contracts.Bool(true) },
			"solar permit on file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			property := qualifyingProperty()
			tt.mutate(property)
			if got := BasicCriteria(property); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	// Unknown fields pass; the scoring engine handles them later.
	if got := BasicCriteria(&contracts.Property{}); got != "" {
		t.Errorf("empty property should pass the gate: %q", got)
	}
}
