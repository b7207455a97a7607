package availability

import (
	"context"
	"time"

	"github.com/mlegeay/examslots/internal/domain"
)

// PlaceRepository интерфейс репозитория мест (только чтение)
type PlaceRepository interface {
	ListAvailableDates(ctx context.Context, centreID int64, begin, end time.Time, excludeCandidatID *int64) ([]time.Time, error)
	ExistsFreeAt(ctx context.Context, centreID int64, date time.Time) (bool, error)
}

// CentreRepository интерфейс репозитория центров
type CentreRepository interface {
	GetByNomAndDepartement(ctx context.Context, nom, departement string) (*domain.Centre, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
