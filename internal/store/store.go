package store

import "github.com/jackc/pgx/v5/pgxpool"

// Store bundles the per-entity repositories over one pool.
type Store struct {
	Properties *PropertyRepository
	Homeowners *HomeownerRepository
	Roofs      *RoofRepository
	Utilities  *UtilityRepository
	Leads      *LeadRepository
}

// New creates all repositories.
func New(pool *pgxpool.Pool) *Store {
	return &Store{
		Properties: NewPropertyRepository(pool),
		Homeowners: NewHomeownerRepository(pool),
		Roofs:      NewRoofRepository(pool),
		Utilities:  NewUtilityRepository(pool),
		Leads:      NewLeadRepository(pool),
	}
}
