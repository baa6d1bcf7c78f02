package contracts

import "time"

// Lead statuses used by the store and the re-score job.
const (
	LeadStatusNew          = "new"
	LeadStatusQualified    = "qualified"
	LeadStatusContacted    = "contacted"
	LeadStatusDisqualified = "disqualified"
)

// Lead is the persisted scoring outcome for a property.
type Lead struct {
	LeadID        string    `json:"lead_id"`
	PropertyID    string    `json:"property_id"`
	OverallScore  int       `json:"overall_score"`
	Qualification string    `json:"qualification"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
