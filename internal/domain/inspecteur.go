package domain

import "time"

// Inspecteur represents a driving-test examiner (IPCSR)
type Inspecteur struct {
	ID          int64
	Nom         string
	Prenom      string
	Matricule   string
	Email       string
	Departement string
	Active      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
