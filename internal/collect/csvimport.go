package collect

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tverano/solarscout/internal/contracts"
)

var csvValidate = validator.New()

// csvPropertyRow is one imported CSV row before conversion. Validation
// runs on the raw row so a bad record is rejected as a whole instead of
// producing a half-filled property.
type csvPropertyRow struct {
	Address       string `validate:"required"`
	City          string `validate:"required"`
	State         string `validate:"required,len=2,alpha"`
	ZipCode       string `validate:"required,len=5,numeric"`
	County        string
	PropertyType  string
	YearBuilt     string `validate:"omitempty,numeric"`
	SquareFootage string `validate:"omitempty,numeric"`
	Bedrooms      string `validate:"omitempty,numeric"`
	Bathrooms     string
	LotSize       string `validate:"omitempty,numeric"`
	AssessedValue string
	OwnerOccupied string
	Latitude      string
	Longitude     string
}

// ImportFromCSV reads property records from a CSV file with a header
// row. Rows that fail validation are logged and skipped; the import only
// errors when the file itself is unreadable.
func (c *PropertyCollector) ImportFromCSV(path string) ([]*contracts.Property, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	properties := make([]*contracts.Property, 0)
	line := 1
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			c.logger.WithError(err).WithField("line", line).Warn("Skipping malformed CSV row")
			skipped++
			continue
		}

		row := rowFromRecord(record, columns)
		if err := csvValidate.Struct(row); err != nil {
			c.logger.WithError(err).WithField("line", line).Warn("Skipping invalid CSV row")
			skipped++
			continue
		}

		properties = append(properties, row.toProperty())
	}

	c.logger.WithFields(map[string]interface{}{
		"path":     path,
		"imported": len(properties),
		"skipped":  skipped,
	}).Info("Imported properties from CSV")

	return properties, nil
}

func rowFromRecord(record []string, columns map[string]int) csvPropertyRow {
	field := func(names ...string) string {
		for _, name := range names {
			if i, ok := columns[name]; ok && i < len(record) {
				return strings.TrimSpace(record[i])
			}
		}
		return ""
	}

	return csvPropertyRow{
		Address:       field("address", "address_line_1"),
		City:          field("city"),
		State:         field("state"),
		ZipCode:       field("zip_code", "zip"),
		County:        field("county"),
		PropertyType:  field("property_type"),
		YearBuilt:     field("year_built"),
		SquareFootage: field("square_footage"),
		Bedrooms:      field("bedrooms"),
		Bathrooms:     field("bathrooms"),
		LotSize:       field("lot_size"),
		AssessedValue: field("assessed_value"),
		OwnerOccupied: field("is_owner_occupied", "owner_occupied"),
		Latitude:      field("latitude"),
		Longitude:     field("longitude"),
	}
}

func (r csvPropertyRow) toProperty() *contracts.Property {
	property := &contracts.Property{
		PropertyID:   uuid.New().String(),
		AddressLine1: r.Address,
		City:         r.City,
		County:       r.County,
		State:        strings.ToUpper(r.State),
		ZipCode:      r.ZipCode,
		DataSource:   "csv_import",
		LastUpdated:  time.Now(),
	}

	if r.PropertyType != "" {
		property.PropertyType = contracts.String(normalizePropertyType(r.PropertyType))
	}
	if n, err := strconv.Atoi(r.YearBuilt); err == nil {
		property.YearBuilt = contracts.Int(n)
	}
	if f, err := strconv.ParseFloat(r.SquareFootage, 64); err == nil {
		property.SquareFootage = contracts.Float64(f)
	}
	if n, err := strconv.Atoi(r.Bedrooms); err == nil {
		property.Bedrooms = contracts.Int(n)
	}
	if f, err := strconv.ParseFloat(r.Bathrooms, 64); err == nil {
		property.Bathrooms = contracts.Float64(f)
	}
	if f, err := strconv.ParseFloat(r.LotSize, 64); err == nil {
		property.LotSize = contracts.Float64(f)
	}
	if f, err := strconv.ParseFloat(r.AssessedValue, 64); err == nil {
		property.AssessedValue = contracts.Float64(f)
	}
	if r.OwnerOccupied != "" {
		property.IsOwnerOccupied = contracts.Bool(parseYesNo(r.OwnerOccupied))
	}
	if lat, err := strconv.ParseFloat(r.Latitude, 64); err == nil {
		if lon, err := strconv.ParseFloat(r.Longitude, 64); err == nil {
			property.Latitude = contracts.Float64(lat)
			property.Longitude = contracts.Float64(lon)
		}
	}

	return property
}
