package domain

import "time"

// Centre represents an exam location owning zero or more places
type Centre struct {
	ID             int64
	Nom            string
	Departement    string
	GeoDepartement string
	Adresse        string
	Lon            float64
	Lat            float64
	Active         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
