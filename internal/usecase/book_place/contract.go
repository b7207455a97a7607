package book_place

import (
	"context"
	"time"

	"github.com/mlegeay/examslots/internal/service/reservations/models"
)

// ReservationService интерфейс сервиса бронирований
type ReservationService interface {
	Book(ctx context.Context, candidatID int64, nomCentre, departement string, date time.Time) (*models.BookingResult, error)
	Transfer(ctx context.Context, candidatID int64, nomCentre, departement string, date time.Time) (*models.BookingResult, error)
	FindBooked(ctx context.Context, candidatID int64) (*models.BookingResult, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
