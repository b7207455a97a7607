package import_places

import (
	"context"
	"time"

	"github.com/mlegeay/examslots/internal/domain"
)

// ReservationService интерфейс сервиса бронирований
type ReservationService interface {
	CreatePlace(ctx context.Context, matricule, nomCentre, departement string, date time.Time) (*domain.Place, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
