package domain

import "time"

// Time format constants
const (
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
	// ImportDateTimeFormat is the layout of the bulk-import files (dd/MM/yy HH:mm)
	ImportDateTimeFormat = "02/01/06 15:04"
)

// Reservation deadline and priority rules.
//
// A candidate may cancel a reservation themselves until the start of the day
// DaysToCancelBeforeExam days before the exam. A release happening strictly
// inside that window (transfer or admin removal) is considered disadvantaged
// and grants VIP priority until the exam date plus VIPValidityDays.
const (
	DaysToCancelBeforeExam = 7
	VIPValidityDays        = 90
)

// examTimezone is the timezone of centres and inspecteurs
const examTimezone = "Europe/Paris"

var parisLocation = mustLoadLocation(examTimezone)

// ParisLocation returns the timezone all exam dates are interpreted in
func ParisLocation() *time.Location {
	return parisLocation
}

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("domain: cannot load timezone " + name + ": " + err.Error())
	}
	return loc
}
