package admin_create_place

import (
	"context"
	"time"

	"github.com/mlegeay/examslots/internal/domain"
)

type ReservationService interface {
	CreatePlace(ctx context.Context, matricule, nomCentre, departement string, date time.Time) (*domain.Place, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
