package reservations

import (
	"context"
	"time"

	"github.com/mlegeay/examslots/internal/domain"
	"github.com/mlegeay/examslots/internal/integrations/mailgateway"
)

// PlaceRepository интерфейс репозитория мест
type PlaceRepository interface {
	Create(ctx context.Context, place *domain.Place) (*domain.Place, error)
	GetByID(ctx context.Context, id int64) (*domain.Place, error)
	FindBookedByCandidat(ctx context.Context, candidatID int64) (*domain.Place, error)
	ClaimFree(ctx context.Context, centreID int64, date time.Time, candidatID int64) (*domain.Place, error)
	SetStatus(ctx context.Context, id int64, from, to domain.PlaceStatus) error
	AssignCandidat(ctx context.Context, id int64, candidatID int64) error
	Unbind(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	DeleteFree(ctx context.Context, id int64) error
}

// CandidatRepository интерфейс репозитория кандидатов
type CandidatRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Candidat, error)
	UpdateDepartement(ctx context.Context, id int64, departement string) error
	SetVIP(ctx context.Context, id int64, until time.Time) error
}

// CentreRepository интерфейс репозитория центров
type CentreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Centre, error)
	GetByNomAndDepartement(ctx context.Context, nom, departement string) (*domain.Centre, error)
}

// InspecteurRepository интерфейс репозитория инспекторов
type InspecteurRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Inspecteur, error)
	GetByMatricule(ctx context.Context, matricule string) (*domain.Inspecteur, error)
}

// ArchiveRepository интерфейс репозитория архива бронирований
type ArchiveRepository interface {
	Append(ctx context.Context, entry *domain.ArchiveEntry) (*domain.ArchiveEntry, error)
}

// MailClient интерфейс клиента почтового шлюза
type MailClient interface {
	SendBookingConfirmation(ctx context.Context, msg *mailgateway.BookingMessage) error
	SendCancellation(ctx context.Context, msg *mailgateway.CancellationMessage) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
