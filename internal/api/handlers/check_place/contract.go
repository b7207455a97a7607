package check_place

import (
	"context"
	"time"
)

type AvailabilityService interface {
	HasAvailablePlaceAt(ctx context.Context, nomCentre, departement string, date time.Time) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
