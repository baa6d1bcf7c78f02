package collect

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tverano/solarscout/internal/contracts"
)

// ParseAssessorPage extracts property attributes from a county assessor
// detail page. Pages vary by county but share a label/value table layout;
// rows with unrecognized labels are ignored. At least one attribute must
// parse for the page to count as a hit.
func ParseAssessorPage(r io.Reader) (*contracts.Property, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse assessor page: %w", err)
	}

	property := &contracts.Property{}
	found := 0

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		label := normalizeLabel(row.Find("th").First().Text())
		if label == "" {
			label = normalizeLabel(row.Find("td").First().Text())
		}
		value := strings.TrimSpace(row.Find("td").Last().Text())
		if label == "" || value == "" {
			return
		}

		switch label {
		case "property type", "land use":
			property.PropertyType = contracts.String(normalizePropertyType(value))
			found++
		case "year built", "year constructed":
			if n, err := strconv.Atoi(cleanNumber(value)); err == nil {
				property.YearBuilt = contracts.Int(n)
				found++
			}
		case "living area", "square footage", "building sqft":
			if f, err := strconv.ParseFloat(cleanNumber(value), 64); err == nil {
				property.SquareFootage = contracts.Float64(f)
				found++
			}
		case "bedrooms":
			if n, err := strconv.Atoi(cleanNumber(value)); err == nil {
				property.Bedrooms = contracts.Int(n)
				found++
			}
		case "bathrooms":
			if f, err := strconv.ParseFloat(cleanNumber(value), 64); err == nil {
				property.Bathrooms = contracts.Float64(f)
				found++
			}
		case "lot size", "land sqft":
			if f, err := strconv.ParseFloat(cleanNumber(value), 64); err == nil {
				property.LotSize = contracts.Float64(f)
				found++
			}
		case "assessed value", "total value", "appraised value":
			if f, err := strconv.ParseFloat(cleanNumber(value), 64); err == nil {
				property.AssessedValue = contracts.Float64(f)
				found++
			}
		case "owner occupied", "homestead exemption":
			property.IsOwnerOccupied = contracts.Bool(parseYesNo(value))
			found++
		case "county":
			property.County = value
			found++
		}
	})

	if found == 0 {
		return nil, fmt.Errorf("no property attributes found on page")
	}
	return property, nil
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimSuffix(s, ":")
}

// cleanNumber strips currency symbols, commas, and unit suffixes.
func cleanNumber(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
		if r == ' ' && b.Len() > 0 {
			break
		}
	}
	return b.String()
}

func parseYesNo(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "active":
		return true
	}
	return false
}

func normalizePropertyType(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single-family", "single family", "single family residential", "sfr":
		return contracts.PropertyTypeSingleFamily
	case "multi-family", "multi family", "multifamily", "duplex":
		return contracts.PropertyTypeMultiFamily
	}
	return strings.TrimSpace(s)
}
