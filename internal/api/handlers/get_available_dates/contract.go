package get_available_dates

import (
	"context"
	"time"
)

type AvailabilityService interface {
	ListAvailableDates(ctx context.Context, nomCentre, departement string, begin, end time.Time, excludeCandidatID *int64) ([]time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
