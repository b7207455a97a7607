package domain

import "time"

// PlaceStatus represents the lifecycle state of a place
//
// A place is created free, becomes booked when a candidate reserves it and
// is temporarily held while the candidate attempts a transfer to another
// place. A released place goes back to free right before its row is deleted.
type PlaceStatus string

const (
	// StatusFree place has no candidate and can be claimed
	StatusFree PlaceStatus = "free"
	// StatusBooked place is reserved by its candidate
	StatusBooked PlaceStatus = "booked"
	// StatusHeld place keeps its candidate but is hidden from readers while
	// a replacement booking is attempted during a transfer
	StatusHeld PlaceStatus = "held"
)

// Place represents one (inspecteur, centre, datetime) unit of exam capacity
//
// No two places share the same (inspecteur, date) pair, and an inspecteur
// works a single centre per calendar day. Booked places are not kept as
// history: once released they are deleted and only the archive entry remains.
type Place struct {
	ID           int64
	InspecteurID int64
	CentreID     int64
	Date         time.Time
	CandidatID   *int64
	Status       PlaceStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFree returns true if the place can be claimed by a candidate
func (p *Place) IsFree() bool {
	return p.Status == StatusFree && p.CandidatID == nil
}

// IsBooked returns true if the place is reserved by a candidate
func (p *Place) IsBooked() bool {
	return p.Status == StatusBooked && p.CandidatID != nil
}

// IsHeld returns true if the place is held during an in-flight transfer
func (p *Place) IsHeld() bool {
	return p.Status == StatusHeld
}

// SameCalendarDay reports whether the place falls on the given calendar day
// in the exam timezone
func (p *Place) SameCalendarDay(date time.Time) bool {
	y1, m1, d1 := p.Date.In(ParisLocation()).Date()
	y2, m2, d2 := date.In(ParisLocation()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
