package collect

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/tverano/solarscout/internal/contracts"
)

func TestFetchByAddress_Mock(t *testing.T) {
	c := newTestPropertyCollector()
	ctx := context.Background()

	property, err := c.FetchByAddress(ctx, "1200 Barton Springs Rd", "Austin", "TX", "78704")
	if err != nil {
		t.Fatalf("FetchByAddress failed: %v", err)
	}

	if property.AddressLine1 != "1200 Barton Springs Rd" || property.City != "Austin" {
		t.Errorf("address not carried through: %s, %s", property.AddressLine1, property.City)
	}
	if property.State != "TX" || property.ZipCode != "78704" {
		t.Errorf("state/zip not carried through: %s %s", property.State, property.ZipCode)
	}
	if property.PropertyID == "" {
		t.Error("expected generated property id")
	}
	if property.DataSource != "mock" {
		t.Errorf("data source: got %q, want mock", property.DataSource)
	}
	if property.SquareFootage == nil || *property.SquareFootage < 1200 || *property.SquareFootage > 3500 {
		t.Errorf("square footage out of range: %v", property.SquareFootage)
	}
	if property.YearBuilt == nil || *property.YearBuilt < 1950 || *property.YearBuilt > 2020 {
		t.Errorf("year built out of range: %v", property.YearBuilt)
	}
}

func TestFetchByAddress_Deterministic(t *testing.T) {
	c := newTestPropertyCollector()
	ctx := context.Background()

	first, err := c.FetchByAddress(ctx, "1200 Barton Springs Rd", "Austin", "TX", "78704")
	if err != nil {
		t.Fatalf("FetchByAddress failed: %v", err)
	}
	second, err := c.FetchByAddress(ctx, "1200 Barton Springs Rd", "Austin", "TX", "78704")
	if err != nil {
		t.Fatalf("FetchByAddress failed: %v", err)
	}

	if *first.SquareFootage != *second.SquareFootage ||
		*first.YearBuilt != *second.YearBuilt ||
		*first.AssessedValue != *second.AssessedValue {
		t.Error("attributes should be stable per address")
	}
	if first.PropertyID == second.PropertyID {
		t.Error("property ids should be unique per fetch")
	}
}

func TestFetchByAddress_MissingFields(t *testing.T) {
	c := newTestPropertyCollector()
	ctx := context.Background()

	if _, err := c.FetchByAddress(ctx, "", "Austin", "TX", "78704"); err == nil {
		t.Error("expected error for missing address")
	}
	if _, err := c.FetchByAddress(ctx, "1200 Barton Springs Rd", "Austin", "TX", ""); err == nil {
		t.Error("expected error for missing zip")
	}
}

func TestFetchByZip(t *testing.T) {
	c := newTestPropertyCollector()
	ctx := context.Background()

	properties, err := c.FetchByZip(ctx, "78704", 3)
	if err != nil {
		t.Fatalf("FetchByZip failed: %v", err)
	}
	if len(properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(properties))
	}
	for _, p := range properties {
		if p.ZipCode != "78704" {
			t.Errorf("zip not carried through: %s", p.ZipCode)
		}
	}

	// A non-positive limit caps at the mock batch size.
	capped, err := c.FetchByZip(ctx, "78704", 0)
	if err != nil {
		t.Fatalf("FetchByZip failed: %v", err)
	}
	if len(capped) != 10 {
		t.Errorf("expected 10 properties at the cap, got %d", len(capped))
	}

	if _, err := c.FetchByZip(ctx, "", 3); err == nil {
		t.Error("expected error for empty zip")
	}
}

func TestEstimateValue(t *testing.T) {
	c := newTestPropertyCollector()
	year := time.Now().Year()

	recent := &contracts.Property{
		SquareFootage: contracts.Float64(2000),
		YearBuilt:     contracts.Int(year - 10),
	}
	// 2000 sq ft * $150 * 0.9 age factor
	if got := c.EstimateValue(recent); math.Abs(got-270000) > 0.001 {
		t.Errorf("recent home: got %.0f, want 270000", got)
	}

	// Very old homes bottom out at half value.
	old := &contracts.Property{
		SquareFootage: contracts.Float64(2000),
		YearBuilt:     contracts.Int(1900),
	}
	if got := c.EstimateValue(old); math.Abs(got-150000) > 0.001 {
		t.Errorf("old home: got %.0f, want 150000", got)
	}

	// New construction caps at full value.
	brandNew := &contracts.Property{
		SquareFootage: contracts.Float64(2000),
		YearBuilt:     contracts.Int(year),
	}
	if got := c.EstimateValue(brandNew); got > 300000 {
		t.Errorf("new home above full value: %.0f", got)
	}

	if got := c.EstimateValue(nil); got != 0 {
		t.Errorf("nil property: got %.0f, want 0", got)
	}
	if got := c.EstimateValue(&contracts.Property{}); got != 0 {
		t.Errorf("no square footage: got %.0f, want 0", got)
	}
}
