package cancel_reservation

import (
	"context"
	"time"

	"github.com/mlegeay/examslots/internal/domain"
	"github.com/mlegeay/examslots/internal/service/reservations/models"
)

// ReservationService интерфейс сервиса бронирований
type ReservationService interface {
	FindBooked(ctx context.Context, candidatID int64) (*models.BookingResult, error)
	Release(ctx context.Context, place *domain.Place, byAdmin bool, reason domain.ArchiveReason, actorEmail string) (*models.ReleaseResult, error)
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
