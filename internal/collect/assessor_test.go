package collect

import (
	"strings"
	"testing"

	"github.com/tverano/solarscout/internal/contracts"
)

const assessorPage = `<html><body>
<h1>Property Detail</h1>
<table>
  <tr><th>Property Type:</th><td>Single Family Residential</td></tr>
  <tr><th>Year Built:</th><td>1,995</td></tr>
  <tr><th>Living Area:</th><td>2,450 sq ft</td></tr>
  <tr><th>Bedrooms:</th><td>4</td></tr>
  <tr><th>Bathrooms:</th><td>2.5</td></tr>
  <tr><th>Lot Size:</th><td>8,500 sq ft</td></tr>
  <tr><th>Assessed Value:</th><td>$350,000</td></tr>
  <tr><th>Homestead Exemption:</th><td>Active</td></tr>
  <tr><th>County:</th><td>Travis</td></tr>
  <tr><th>Zoning:</th><td>SF-3</td></tr>
</table>
</body></html>`

func TestParseAssessorPage(t *testing.T) {
	property, err := ParseAssessorPage(strings.NewReader(assessorPage))
	if err != nil {
		t.Fatalf("ParseAssessorPage failed: %v", err)
	}

	if property.PropertyType == nil || *property.PropertyType != contracts.PropertyTypeSingleFamily {
		t.Errorf("property type not normalized: %v", property.PropertyType)
	}
	if property.YearBuilt == nil || *property.YearBuilt != 1995 {
		t.Errorf("year built: got %v, want 1995", property.YearBuilt)
	}
	if property.SquareFootage == nil || *property.SquareFootage != 2450 {
		t.Errorf("square footage: got %v, want 2450", property.SquareFootage)
	}
	if property.Bedrooms == nil || *property.Bedrooms != 4 {
		t.Errorf("bedrooms: got %v, want 4", property.Bedrooms)
	}
	if property.Bathrooms == nil || *property.Bathrooms != 2.5 {
		t.Errorf("bathrooms: got %v, want 2.5", property.Bathrooms)
	}
	if property.LotSize == nil || *property.LotSize != 8500 {
		t.Errorf("lot size: got %v, want 8500", property.LotSize)
	}
	if property.AssessedValue == nil || *property.AssessedValue != 350000 {
		t.Errorf("assessed value: got %v, want 350000", property.AssessedValue)
	}
	if property.IsOwnerOccupied == nil || !*property.IsOwnerOccupied {
		t.Error("active homestead exemption should mark owner occupied")
	}
	if property.County != "Travis" {
		t.Errorf("county: got %q, want Travis", property.County)
	}
}

func TestParseAssessorPage_TdLabels(t *testing.T) {
	// Some counties use plain td/td rows instead of th/td.
	page := `<table>
	  <tr><td>Land Use</td><td>sfr</td></tr>
	  <tr><td>Year Constructed</td><td>2008</td></tr>
	</table>`

	property, err := ParseAssessorPage(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ParseAssessorPage failed: %v", err)
	}
	if property.PropertyType == nil || *property.PropertyType != contracts.PropertyTypeSingleFamily {
		t.Errorf("sfr not normalized: %v", property.PropertyType)
	}
	if property.YearBuilt == nil || *property.YearBuilt != 2008 {
		t.Errorf("year built: got %v, want 2008", property.YearBuilt)
	}
}

func TestParseAssessorPage_NoAttributes(t *testing.T) {
	pages := []string{
		`<html><body><p>Record not found</p></body></html>`,
		`<table><tr><th>Zoning:</th><td>SF-3</td></tr></table>`,
	}
	for _, page := range pages {
		if _, err := ParseAssessorPage(strings.NewReader(page)); err == nil {
			t.Errorf("expected error for page without attributes: %s", page)
		}
	}
}

func TestCleanNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$350,000", "350000"},
		{"2,450 sq ft", "2450"},
		{"1995", "1995"},
		{"2.5", "2.5"},
		{"  4 ", "4"},
	}
	for _, tt := range tests {
		if got := cleanNumber(tt.in); got != tt.want {
			t.Errorf("cleanNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePropertyType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Single Family Residential", contracts.PropertyTypeSingleFamily},
		{"SFR", contracts.PropertyTypeSingleFamily},
		{"duplex", contracts.PropertyTypeMultiFamily},
		{"Multi Family", contracts.PropertyTypeMultiFamily},
		{"Commercial", "Commercial"},
	}
	for _, tt := range tests {
		if got := normalizePropertyType(tt.in); got != tt.want {
			t.Errorf("normalizePropertyType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseYesNo(t *testing.T) {
	for _, s := range []string{"Yes", "y", "TRUE", "1", "Active"} {
		if !parseYesNo(s) {
			t.Errorf("parseYesNo(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"No", "n", "false", "0", ""} {
		if parseYesNo(s) {
			t.Errorf("parseYesNo(%q) = true, want false", s)
		}
	}
}
