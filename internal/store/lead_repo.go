package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tverano/solarscout/internal/contracts"
)

// LeadRepository persists scored leads.
type LeadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository creates a new lead repository.
func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

// Save upserts a lead. One lead per property: re-scoring the same
// property updates the existing row.
func (r *LeadRepository) Save(ctx context.Context, lead *contracts.Lead) error {
	if lead.LeadID == "" {
		lead.LeadID = uuid.New().String()
	}
	now := time.Now()
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = now
	}
	lead.UpdatedAt = now

	query := `
		INSERT INTO leads (lead_id, property_id, overall_score, qualification, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (lead_id) DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			qualification = EXCLUDED.qualification,
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		lead.LeadID, lead.PropertyID, lead.OverallScore, lead.Qualification,
		lead.Status, lead.Notes, lead.CreatedAt, lead.UpdatedAt,
	)
	return err
}

// LeadWithContact joins a lead to its property address and owner
// contact, the shape the sales team works from.
type LeadWithContact struct {
	contracts.Lead
	AddressLine1 string  `json:"address_line_1"`
	City         string  `json:"city"`
	ZipCode      string  `json:"zip_code"`
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
}

// GetByScore retrieves leads within a score range, highest first.
func (r *LeadRepository) GetByScore(ctx context.Context, minScore, maxScore, limit int) ([]*LeadWithContact, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT l.lead_id, l.property_id, l.overall_score, l.qualification, l.status,
			COALESCE(l.notes, ''), l.created_at, l.updated_at,
			p.address_line_1, p.city, p.zip_code,
			h.first_name, h.last_name, h.phone, h.email
		FROM leads l
		JOIN properties p ON l.property_id = p.property_id
		LEFT JOIN homeowners h ON l.property_id = h.property_id
		WHERE l.overall_score BETWEEN $1 AND $2
		ORDER BY l.overall_score DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, minScore, maxScore, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*LeadWithContact
	for rows.Next() {
		var l LeadWithContact
		if err := rows.Scan(
			&l.LeadID, &l.PropertyID, &l.OverallScore, &l.Qualification, &l.Status,
			&l.Notes, &l.CreatedAt, &l.UpdatedAt,
			&l.AddressLine1, &l.City, &l.ZipCode,
			&l.FirstName, &l.LastName, &l.Phone, &l.Email,
		); err != nil {
			return nil, err
		}
		leads = append(leads, &l)
	}
	return leads, rows.Err()
}

// GetByProperty retrieves the lead for a property if one exists.
func (r *LeadRepository) GetByProperty(ctx context.Context, propertyID string) (*contracts.Lead, error) {
	query := `
		SELECT lead_id, property_id, overall_score, qualification, status, COALESCE(notes, ''), created_at, updated_at
		FROM leads
		WHERE property_id = $1
		LIMIT 1
	`

	var lead contracts.Lead
	err := r.pool.QueryRow(ctx, query, propertyID).Scan(
		&lead.LeadID, &lead.PropertyID, &lead.OverallScore, &lead.Qualification,
		&lead.Status, &lead.Notes, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// UpdateStatus sets a lead's status and optional notes.
func (r *LeadRepository) UpdateStatus(ctx context.Context, leadID, status, notes string) error {
	query := `UPDATE leads SET status = $2, notes = COALESCE(NULLIF($3, ''), notes), updated_at = $4 WHERE lead_id = $1`
	_, err := r.pool.Exec(ctx, query, leadID, status, notes, time.Now())
	return err
}

// ListAll retrieves every lead, used by the nightly re-score job.
func (r *LeadRepository) ListAll(ctx context.Context) ([]*contracts.Lead, error) {
	query := `
		SELECT lead_id, property_id, overall_score, qualification, status, COALESCE(notes, ''), created_at, updated_at
		FROM leads
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*contracts.Lead
	for rows.Next() {
		var lead contracts.Lead
		if err := rows.Scan(
			&lead.LeadID, &lead.PropertyID, &lead.OverallScore, &lead.Qualification,
			&lead.Status, &lead.Notes, &lead.CreatedAt, &lead.UpdatedAt,
		); err != nil {
			return nil, err
		}
		leads = append(leads, &lead)
	}
	return leads, rows.Err()
}
