package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DDL statements executed in order by CreateTables. Idempotent, so the
// initdb command can run against an existing database.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		property_id            TEXT PRIMARY KEY,
		address_line_1         TEXT NOT NULL,
		address_line_2         TEXT,
		city                   TEXT NOT NULL,
		county                 TEXT,
		state                  TEXT NOT NULL,
		zip_code               TEXT NOT NULL,
		latitude               DOUBLE PRECISION,
		longitude              DOUBLE PRECISION,
		property_type          TEXT,
		year_built             INTEGER,
		square_footage         DOUBLE PRECISION,
		bedrooms               INTEGER,
		bathrooms              DOUBLE PRECISION,
		lot_size               DOUBLE PRECISION,
		assessed_value         DOUBLE PRECISION,
		last_sale_date         TEXT,
		last_sale_price        DOUBLE PRECISION,
		is_owner_occupied      BOOLEAN,
		has_solar_installation BOOLEAN DEFAULT FALSE,
		has_solar_permit       BOOLEAN DEFAULT FALSE,
		data_source            TEXT,
		last_updated           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS homeowners (
		homeowner_id      TEXT PRIMARY KEY,
		property_id       TEXT NOT NULL REFERENCES properties(property_id),
		first_name        TEXT,
		last_name         TEXT,
		email             TEXT,
		phone             TEXT,
		ownership_years   DOUBLE PRECISION,
		do_not_call       BOOLEAN DEFAULT FALSE,
		skip_trace_status TEXT,
		data_source       TEXT,
		last_updated      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS roofs (
		roof_id                   TEXT PRIMARY KEY,
		property_id               TEXT NOT NULL REFERENCES properties(property_id),
		roof_type                 TEXT,
		roof_age                  INTEGER,
		roof_condition            TEXT,
		total_roof_area           DOUBLE PRECISION,
		usable_roof_area          DOUBLE PRECISION,
		primary_orientation       TEXT,
		azimuth                   DOUBLE PRECISION,
		pitch                     DOUBLE PRECISION,
		shading_percentage        DOUBLE PRECISION,
		estimated_solar_potential DOUBLE PRECISION,
		data_source               TEXT,
		last_updated              TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS utilities (
		utility_id             TEXT PRIMARY KEY,
		property_id            TEXT NOT NULL REFERENCES properties(property_id),
		utility_provider       TEXT,
		utility_rate_plan      TEXT,
		residential_rate       DOUBLE PRECISION,
		has_net_metering       BOOLEAN,
		net_metering_rate      DOUBLE PRECISION,
		estimated_monthly_bill DOUBLE PRECISION,
		estimated_annual_usage DOUBLE PRECISION,
		data_source            TEXT,
		last_updated           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS leads (
		lead_id       TEXT PRIMARY KEY,
		property_id   TEXT NOT NULL REFERENCES properties(property_id),
		overall_score INTEGER NOT NULL,
		qualification TEXT NOT NULL,
		status        TEXT NOT NULL,
		notes         TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_zip ON properties(zip_code)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_owner_occupied ON properties(is_owner_occupied)`,
	`CREATE INDEX IF NOT EXISTS idx_homeowners_property ON homeowners(property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_roofs_property ON roofs(property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_utilities_property ON utilities(property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_score ON leads(overall_score)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status)`,
}

// CreateTables creates the full schema.
func CreateTables(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
