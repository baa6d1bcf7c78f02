package datagen

import (
	"testing"

	"github.com/tverano/solarscout/pkg/logger"
)

func TestGenerateLeadRecords(t *testing.T) {
	g := NewGenerator(42, logger.NewNop())

	leads := g.GenerateLeadRecords(50)
	if len(leads) != 50 {
		t.Fatalf("expected 50 leads, got %d", len(leads))
	}

	owners := 0
	for i, lead := range leads {
		if lead.Property == nil {
			t.Fatalf("lead %d has no property", i)
		}
		p := lead.Property
		if p.PropertyID == "" || p.AddressLine1 == "" || p.City == "" || p.ZipCode == "" {
			t.Errorf("lead %d missing address fields: %+v", i, p)
		}
		if p.State != "TX" {
			t.Errorf("lead %d: state %s, want TX", i, p.State)
		}
		if p.YearBuilt == nil || *p.YearBuilt < 1950 || *p.YearBuilt > 2020 {
			t.Errorf("lead %d: year built out of range: %v", i, p.YearBuilt)
		}
		if p.SquareFootage == nil || *p.SquareFootage < 1000 || *p.SquareFootage > 4000 {
			t.Errorf("lead %d: square footage out of range: %v", i, p.SquareFootage)
		}

		if lead.Utility == nil || lead.Utility.EstimatedMonthlyBill == nil {
			t.Errorf("lead %d missing utility estimate", i)
		}
		if lead.Roof == nil || lead.Roof.TotalRoofArea == nil {
			t.Errorf("lead %d missing roof record", i)
		}

		// Owners exist exactly for owner-occupied properties.
		if lead.Owner != nil {
			owners++
			if p.IsOwnerOccupied == nil || !*p.IsOwnerOccupied {
				t.Errorf("lead %d has an owner but is not owner-occupied", i)
			}
			if lead.Owner.PropertyID != p.PropertyID {
				t.Errorf("lead %d owner points at %s", i, lead.Owner.PropertyID)
			}
		}
	}
	if owners == 0 {
		t.Error("expected some owner-occupied leads in a batch of 50")
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	first := NewGenerator(42, logger.NewNop()).GenerateLeadRecords(10)
	second := NewGenerator(42, logger.NewNop()).GenerateLeadRecords(10)

	for i := range first {
		a, b := first[i].Property, second[i].Property
		if a.AddressLine1 != b.AddressLine1 || a.City != b.City ||
			*a.SquareFootage != *b.SquareFootage || *a.YearBuilt != *b.YearBuilt {
			t.Fatalf("lead %d differs across equal seeds", i)
		}
	}

	other := NewGenerator(7, logger.NewNop()).GenerateLeadRecords(10)
	same := true
	for i := range first {
		if first[i].Property.AddressLine1 != other[i].Property.AddressLine1 {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds should produce different batches")
	}
}

func TestGenerateRoofs_UsableWithinTotal(t *testing.T) {
	g := NewGenerator(42, logger.NewNop())
	leads := g.GenerateLeadRecords(30)

	for i, lead := range leads {
		roof := lead.Roof
		if roof.UsableRoofArea == nil || roof.TotalRoofArea == nil {
			continue
		}
		if *roof.UsableRoofArea > *roof.TotalRoofArea {
			t.Errorf("lead %d: usable %.0f exceeds total %.0f",
				i, *roof.UsableRoofArea, *roof.TotalRoofArea)
		}
		if roof.PrimaryOrientation != nil {
			if _, ok := cardinalAzimuths[*roof.PrimaryOrientation]; !ok {
				t.Errorf("lead %d: unknown orientation %s", i, *roof.PrimaryOrientation)
			}
		}
	}
}

func TestSaveJSON(t *testing.T) {
	g := NewGenerator(42, logger.NewNop())
	leads := g.GenerateLeadRecords(3)

	path := t.TempDir() + "/leads.json"
	if err := g.SaveJSON(leads, path); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	if err := g.SaveJSON(leads, "/nonexistent/dir/leads.json"); err == nil {
		t.Error("expected error for unwritable path")
	}
}
