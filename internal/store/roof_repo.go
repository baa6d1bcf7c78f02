package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tverano/solarscout/internal/contracts"
)

// RoofRepository persists roof geometry records.
type RoofRepository struct {
	pool *pgxpool.Pool
}

// NewRoofRepository creates a new roof repository.
func NewRoofRepository(pool *pgxpool.Pool) *RoofRepository {
	return &RoofRepository{pool: pool}
}

const roofSelectColumns = `roof_id, property_id, roof_type, roof_age, roof_condition,
	total_roof_area, usable_roof_area, primary_orientation, azimuth, pitch,
	shading_percentage, estimated_solar_potential, COALESCE(data_source, '')`

// Save upserts a roof record.
func (r *RoofRepository) Save(ctx context.Context, roof *contracts.Roof) error {
	if roof.RoofID == "" {
		roof.RoofID = uuid.New().String()
	}

	query := `
		INSERT INTO roofs (roof_id, property_id, roof_type, roof_age, roof_condition,
			total_roof_area, usable_roof_area, primary_orientation, azimuth, pitch,
			shading_percentage, estimated_solar_potential, data_source, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (roof_id) DO UPDATE SET
			roof_type = EXCLUDED.roof_type,
			roof_age = EXCLUDED.roof_age,
			roof_condition = EXCLUDED.roof_condition,
			total_roof_area = EXCLUDED.total_roof_area,
			usable_roof_area = EXCLUDED.usable_roof_area,
			primary_orientation = EXCLUDED.primary_orientation,
			azimuth = EXCLUDED.azimuth,
			pitch = EXCLUDED.pitch,
			shading_percentage = EXCLUDED.shading_percentage,
			estimated_solar_potential = EXCLUDED.estimated_solar_potential,
			data_source = EXCLUDED.data_source,
			last_updated = EXCLUDED.last_updated
	`

	_, err := r.pool.Exec(ctx, query,
		roof.RoofID, roof.PropertyID, roof.RoofType, roof.RoofAge, roof.RoofCondition,
		roof.TotalRoofArea, roof.UsableRoofArea, roof.PrimaryOrientation, roof.Azimuth, roof.Pitch,
		roof.ShadingPercentage, roof.EstimatedSolarPotential, roof.DataSource, time.Now(),
	)
	return err
}

// GetByProperty retrieves the roof record for a property.
func (r *RoofRepository) GetByProperty(ctx context.Context, propertyID string) (*contracts.Roof, error) {
	query := `SELECT ` + roofSelectColumns + ` FROM roofs WHERE property_id = $1 LIMIT 1`

	var roof contracts.Roof
	err := r.pool.QueryRow(ctx, query, propertyID).Scan(
		&roof.RoofID, &roof.PropertyID, &roof.RoofType, &roof.RoofAge, &roof.RoofCondition,
		&roof.TotalRoofArea, &roof.UsableRoofArea, &roof.PrimaryOrientation, &roof.Azimuth, &roof.Pitch,
		&roof.ShadingPercentage, &roof.EstimatedSolarPotential, &roof.DataSource,
	)
	if err != nil {
		return nil, err
	}
	return &roof, nil
}
