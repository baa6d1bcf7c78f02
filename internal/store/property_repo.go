package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tverano/solarscout/internal/contracts"
)

// PropertyRepository persists property records.
type PropertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository creates a new property repository.
func NewPropertyRepository(pool *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{pool: pool}
}

const propertyColumns = `property_id, address_line_1, address_line_2, city, county, state, zip_code,
	latitude, longitude, property_type, year_built, square_footage, bedrooms, bathrooms,
	lot_size, assessed_value, last_sale_date, last_sale_price, is_owner_occupied,
	has_solar_installation, has_solar_permit, data_source, last_updated`

// Nullable text columns that scan into plain strings are coalesced.
const propertySelectColumns = `property_id, address_line_1, COALESCE(address_line_2, ''), city,
	COALESCE(county, ''), state, zip_code,
	latitude, longitude, property_type, year_built, square_footage, bedrooms, bathrooms,
	lot_size, assessed_value, last_sale_date, last_sale_price, is_owner_occupied,
	has_solar_installation, has_solar_permit, COALESCE(data_source, ''), last_updated`

// Save upserts a property. A missing PropertyID is assigned here.
func (r *PropertyRepository) Save(ctx context.Context, p *contracts.Property) error {
	if p.PropertyID == "" {
		p.PropertyID = uuid.New().String()
	}
	p.LastUpdated = time.Now()

	query := `
		INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (property_id) DO UPDATE SET
			address_line_1 = EXCLUDED.address_line_1,
			address_line_2 = EXCLUDED.address_line_2,
			city = EXCLUDED.city,
			county = EXCLUDED.county,
			state = EXCLUDED.state,
			zip_code = EXCLUDED.zip_code,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			property_type = EXCLUDED.property_type,
			year_built = EXCLUDED.year_built,
			square_footage = EXCLUDED.square_footage,
			bedrooms = EXCLUDED.bedrooms,
			bathrooms = EXCLUDED.bathrooms,
			lot_size = EXCLUDED.lot_size,
			assessed_value = EXCLUDED.assessed_value,
			last_sale_date = EXCLUDED.last_sale_date,
			last_sale_price = EXCLUDED.last_sale_price,
			is_owner_occupied = EXCLUDED.is_owner_occupied,
			has_solar_installation = EXCLUDED.has_solar_installation,
			has_solar_permit = EXCLUDED.has_solar_permit,
			data_source = EXCLUDED.data_source,
			last_updated = EXCLUDED.last_updated
	`

	_, err := r.pool.Exec(ctx, query,
		p.PropertyID, p.AddressLine1, p.AddressLine2, p.City, p.County, p.State, p.ZipCode,
		p.Latitude, p.Longitude, p.PropertyType, p.YearBuilt, p.SquareFootage, p.Bedrooms, p.Bathrooms,
		p.LotSize, p.AssessedValue, p.LastSaleDate, p.LastSalePrice, p.IsOwnerOccupied,
		p.HasSolarInstallation, p.HasSolarPermit, p.DataSource, p.LastUpdated,
	)
	return err
}

// GetByID retrieves a property by ID.
func (r *PropertyRepository) GetByID(ctx context.Context, propertyID string) (*contracts.Property, error) {
	query := `SELECT ` + propertySelectColumns + ` FROM properties WHERE property_id = $1`

	var p contracts.Property
	err := r.pool.QueryRow(ctx, query, propertyID).Scan(
		&p.PropertyID, &p.AddressLine1, &p.AddressLine2, &p.City, &p.County, &p.State, &p.ZipCode,
		&p.Latitude, &p.Longitude, &p.PropertyType, &p.YearBuilt, &p.SquareFootage, &p.Bedrooms, &p.Bathrooms,
		&p.LotSize, &p.AssessedValue, &p.LastSaleDate, &p.LastSalePrice, &p.IsOwnerOccupied,
		&p.HasSolarInstallation, &p.HasSolarPermit, &p.DataSource, &p.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByZip retrieves properties in a ZIP code.
func (r *PropertyRepository) GetByZip(ctx context.Context, zipCode string, limit int) ([]*contracts.Property, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT ` + propertySelectColumns + ` FROM properties WHERE zip_code = $1 ORDER BY address_line_1 LIMIT $2`

	rows, err := r.pool.Query(ctx, query, zipCode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*contracts.Property
	for rows.Next() {
		var p contracts.Property
		if err := rows.Scan(
			&p.PropertyID, &p.AddressLine1, &p.AddressLine2, &p.City, &p.County, &p.State, &p.ZipCode,
			&p.Latitude, &p.Longitude, &p.PropertyType, &p.YearBuilt, &p.SquareFootage, &p.Bedrooms, &p.Bathrooms,
			&p.LotSize, &p.AssessedValue, &p.LastSaleDate, &p.LastSalePrice, &p.IsOwnerOccupied,
			&p.HasSolarInstallation, &p.HasSolarPermit, &p.DataSource, &p.LastUpdated,
		); err != nil {
			return nil, err
		}
		properties = append(properties, &p)
	}
	return properties, rows.Err()
}

// ListZipCodes returns the distinct ZIP codes with stored properties.
func (r *PropertyRepository) ListZipCodes(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT zip_code FROM properties ORDER BY zip_code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zips []string
	for rows.Next() {
		var zip string
		if err := rows.Scan(&zip); err != nil {
			return nil, err
		}
		zips = append(zips, zip)
	}
	return zips, rows.Err()
}
