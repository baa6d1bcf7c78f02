package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tverano/solarscout/internal/contracts"
)

// HomeownerRepository persists owner contact records.
type HomeownerRepository struct {
	pool *pgxpool.Pool
}

// NewHomeownerRepository creates a new homeowner repository.
func NewHomeownerRepository(pool *pgxpool.Pool) *HomeownerRepository {
	return &HomeownerRepository{pool: pool}
}

const homeownerSelectColumns = `homeowner_id, property_id, first_name, last_name, email, phone,
	ownership_years, do_not_call, COALESCE(skip_trace_status, ''), COALESCE(data_source, '')`

// Save upserts an owner record.
func (r *HomeownerRepository) Save(ctx context.Context, o *contracts.Owner) error {
	if o.HomeownerID == "" {
		o.HomeownerID = uuid.New().String()
	}

	query := `
		INSERT INTO homeowners (homeowner_id, property_id, first_name, last_name, email, phone,
			ownership_years, do_not_call, skip_trace_status, data_source, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (homeowner_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			ownership_years = EXCLUDED.ownership_years,
			do_not_call = EXCLUDED.do_not_call,
			skip_trace_status = EXCLUDED.skip_trace_status,
			data_source = EXCLUDED.data_source,
			last_updated = EXCLUDED.last_updated
	`

	_, err := r.pool.Exec(ctx, query,
		o.HomeownerID, o.PropertyID, o.FirstName, o.LastName, o.Email, o.Phone,
		o.OwnershipYears, o.DoNotCall, o.SkipTraceStatus, o.DataSource, time.Now(),
	)
	return err
}

// GetByProperty retrieves the owner record for a property.
func (r *HomeownerRepository) GetByProperty(ctx context.Context, propertyID string) (*contracts.Owner, error) {
	query := `SELECT ` + homeownerSelectColumns + ` FROM homeowners WHERE property_id = $1 LIMIT 1`

	var o contracts.Owner
	err := r.pool.QueryRow(ctx, query, propertyID).Scan(
		&o.HomeownerID, &o.PropertyID, &o.FirstName, &o.LastName, &o.Email, &o.Phone,
		&o.OwnershipYears, &o.DoNotCall, &o.SkipTraceStatus, &o.DataSource,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
