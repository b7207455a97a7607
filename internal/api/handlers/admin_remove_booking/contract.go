package admin_remove_booking

import (
	"context"

	"github.com/mlegeay/examslots/internal/service/reservations/models"
)

type ReservationService interface {
	FindBooked(ctx context.Context, candidatID int64) (*models.BookingResult, error)
	AdminForceRelease(ctx context.Context, placeID int64, adminEmail string) (*models.ReleaseResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
