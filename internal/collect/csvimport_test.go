package collect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/pkg/logger"
)

func newTestPropertyCollector() *PropertyCollector {
	return NewPropertyCollector(nil, nil, "", logger.NewNop())
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "properties.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestImportFromCSV(t *testing.T) {
	c := newTestPropertyCollector()

	// The zip and owner_occupied headers exercise the column aliases.
	csv := `address,city,state,zip,property_type,year_built,square_footage,owner_occupied,assessed_value
1200 Barton Springs Rd,Austin,TX,78704,Single Family,1998,2200,yes,310000
77 Oak Ln,El Paso,tx,79901,,,,,
500 Main St,Dallas,Texas,75201,Single Family,2005,1800,no,250000
,Houston,TX,77002,Single Family,2010,2000,yes,280000
9 Elm St,Waco,TX,767,Single Family,2001,1500,no,190000
`
	properties, err := c.ImportFromCSV(writeCSV(t, csv))
	if err != nil {
		t.Fatalf("ImportFromCSV failed: %v", err)
	}

	// Three-letter state, missing address, and short ZIP rows are dropped.
	if len(properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(properties))
	}

	first := properties[0]
	if first.PropertyID == "" {
		t.Error("expected generated property id")
	}
	if first.AddressLine1 != "1200 Barton Springs Rd" || first.City != "Austin" {
		t.Errorf("unexpected address: %s, %s", first.AddressLine1, first.City)
	}
	if first.PropertyType == nil || *first.PropertyType != contracts.PropertyTypeSingleFamily {
		t.Errorf("property type not normalized: %v", first.PropertyType)
	}
	if first.YearBuilt == nil || *first.YearBuilt != 1998 {
		t.Errorf("year built: got %v, want 1998", first.YearBuilt)
	}
	if first.SquareFootage == nil || *first.SquareFootage != 2200 {
		t.Errorf("square footage: got %v, want 2200", first.SquareFootage)
	}
	if first.IsOwnerOccupied == nil || !*first.IsOwnerOccupied {
		t.Error("expected owner occupied true")
	}
	if first.AssessedValue == nil || *first.AssessedValue != 310000 {
		t.Errorf("assessed value: got %v, want 310000", first.AssessedValue)
	}
	if first.DataSource != "csv_import" {
		t.Errorf("data source: got %q, want csv_import", first.DataSource)
	}

	// Lowercase state is uppercased; absent optional fields stay unset.
	second := properties[1]
	if second.State != "TX" {
		t.Errorf("state: got %q, want TX", second.State)
	}
	if second.YearBuilt != nil || second.SquareFootage != nil || second.IsOwnerOccupied != nil {
		t.Error("empty optional columns should stay unset")
	}
}

func TestImportFromCSV_MissingFile(t *testing.T) {
	c := newTestPropertyCollector()

	if _, err := c.ImportFromCSV("/nonexistent/properties.csv"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestImportFromCSV_Coordinates(t *testing.T) {
	c := newTestPropertyCollector()

	csv := `address,city,state,zip_code,latitude,longitude
42 Hill St,Austin,TX,78701,30.2672,-97.7431
43 Hill St,Austin,TX,78701,30.2672,
`
	properties, err := c.ImportFromCSV(writeCSV(t, csv))
	if err != nil {
		t.Fatalf("ImportFromCSV failed: %v", err)
	}
	if len(properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(properties))
	}

	if properties[0].Latitude == nil || *properties[0].Latitude != 30.2672 {
		t.Errorf("latitude: got %v, want 30.2672", properties[0].Latitude)
	}
	// A latitude without a longitude is useless, so both stay unset.
	if properties[1].Latitude != nil || properties[1].Longitude != nil {
		t.Error("half a coordinate pair should stay unset")
	}
}
