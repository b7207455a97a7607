package domain

import "time"

// LastDateToCancel computes the latest instant at which a candidate may
// cancel a reservation themselves: the start of the day
// DaysToCancelBeforeExam days before the exam, in the exam timezone.
func LastDateToCancel(examDate time.Time) time.Time {
	d := examDate.In(ParisLocation()).AddDate(0, 0, -DaysToCancelBeforeExam)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, ParisLocation())
}

// CanSelfCancel reports whether a candidate-initiated cancellation is still
// allowed at the given instant
func CanSelfCancel(now, examDate time.Time) bool {
	return now.Before(LastDateToCancel(examDate))
}

// IsProtectedRelease reports whether releasing a reservation at the given
// instant falls inside the protected window before the exam, i.e. the
// candidate loses the place too late to be rebooked comfortably and earns
// VIP priority for the next booking.
func IsProtectedRelease(now, examDate time.Time) bool {
	return !now.Before(LastDateToCancel(examDate))
}

// VIPExpiry computes the instant until which a VIP priority granted for the
// given exam date stays valid
func VIPExpiry(examDate time.Time) time.Time {
	return examDate.In(ParisLocation()).AddDate(0, 0, VIPValidityDays)
}
