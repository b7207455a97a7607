package admin_move_booking

import (
	"context"

	"github.com/mlegeay/examslots/internal/domain"
)

type ReservationService interface {
	MoveBooking(ctx context.Context, sourcePlaceID, targetPlaceID int64) (*domain.Place, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
