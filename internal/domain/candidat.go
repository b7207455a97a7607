package domain

import "time"

// Candidat represents a person eligible to book an exam place
type Candidat struct {
	ID           int64
	NomNaissance string
	Prenom       string
	Email        string
	// CodeNeph is the unique national exam code
	CodeNeph    string
	Departement string

	// VIP grants booking priority after a disadvantaged cancellation
	// (cancelled inside the protected window, or bumped by an admin).
	// The flag is only meaningful until VIPExpiresAt.
	VIP          bool
	VIPExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsVIP returns true if the candidate holds a non-expired VIP priority
func (c *Candidat) IsVIP(now time.Time) bool {
	return c.VIP && c.VIPExpiresAt != nil && now.Before(*c.VIPExpiresAt)
}
