package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tverano/solarscout/internal/contracts"
)

// UtilityRepository persists utility rate records.
type UtilityRepository struct {
	pool *pgxpool.Pool
}

// NewUtilityRepository creates a new utility repository.
func NewUtilityRepository(pool *pgxpool.Pool) *UtilityRepository {
	return &UtilityRepository{pool: pool}
}

const utilitySelectColumns = `utility_id, property_id, utility_provider, utility_rate_plan,
	residential_rate, has_net_metering, net_metering_rate,
	estimated_monthly_bill, estimated_annual_usage, COALESCE(data_source, '')`

// Save upserts a utility record.
func (r *UtilityRepository) Save(ctx context.Context, u *contracts.Utility) error {
	if u.UtilityID == "" {
		u.UtilityID = uuid.New().String()
	}

	query := `
		INSERT INTO utilities (utility_id, property_id, utility_provider, utility_rate_plan,
			residential_rate, has_net_metering, net_metering_rate,
			estimated_monthly_bill, estimated_annual_usage, data_source, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (utility_id) DO UPDATE SET
			utility_provider = EXCLUDED.utility_provider,
			utility_rate_plan = EXCLUDED.utility_rate_plan,
			residential_rate = EXCLUDED.residential_rate,
			has_net_metering = EXCLUDED.has_net_metering,
			net_metering_rate = EXCLUDED.net_metering_rate,
			estimated_monthly_bill = EXCLUDED.estimated_monthly_bill,
			estimated_annual_usage = EXCLUDED.estimated_annual_usage,
			data_source = EXCLUDED.data_source,
			last_updated = EXCLUDED.last_updated
	`

	_, err := r.pool.Exec(ctx, query,
		u.UtilityID, u.PropertyID, u.Provider, u.RatePlan,
		u.ResidentialRate, u.HasNetMetering, u.NetMeteringRate,
		u.EstimatedMonthlyBill, u.EstimatedAnnualUsage, u.DataSource, time.Now(),
	)
	return err
}

// GetByProperty retrieves the utility record for a property.
func (r *UtilityRepository) GetByProperty(ctx context.Context, propertyID string) (*contracts.Utility, error) {
	query := `SELECT ` + utilitySelectColumns + ` FROM utilities WHERE property_id = $1 LIMIT 1`

	var u contracts.Utility
	err := r.pool.QueryRow(ctx, query, propertyID).Scan(
		&u.UtilityID, &u.PropertyID, &u.Provider, &u.RatePlan,
		&u.ResidentialRate, &u.HasNetMetering, &u.NetMeteringRate,
		&u.EstimatedMonthlyBill, &u.EstimatedAnnualUsage, &u.DataSource,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
