package book_place

import (
	"context"
	"errors"

	"github.com/mlegeay/examslots/internal/domain"
	"github.com/mlegeay/examslots/internal/service/reservations"
	"github.com/mlegeay/examslots/internal/service/reservations/models"
)

// UseCase use case бронирования места кандидатом
//
// Одна точка входа для обоих сценариев исходного фронтенда: первая бронь
// выполняется как Book, повторная - как Transfer существующей брони на
// новый центр или дату
type UseCase struct {
	reservations ReservationService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationService ReservationService, logger Logger) *UseCase {
	return &UseCase{
		reservations: reservationService,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case бронирования места
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookPlace: candidat=%d, centre=%s/%s, date=%s",
		req.CandidatID, req.NomCentre, req.Departement, req.Date.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("BookPlace: validation failed: %v", err)
		return nil, err
	}

	// 2. Решаем, бронь это или перенос
	current, err := uc.reservations.FindBooked(ctx, req.CandidatID)
	switch {
	case err == nil:
		// Повторное бронирование того же места - отказ, не перенос
		if current.Centre.Nom == req.NomCentre &&
			current.Centre.Departement == req.Departement &&
			current.Place.Date.Equal(req.Date) {
			uc.logger.Warn("BookPlace: candidat=%d already holds this reservation", req.CandidatID)
			return nil, ErrSameReservation
		}
	case errors.Is(err, reservations.ErrNoReservation):
		current = nil
	default:
		uc.logger.Error("BookPlace: failed to look up current reservation for candidat=%d: %v", req.CandidatID, err)
		return nil, err
	}

	// 3. Выполняем операцию
	var result *models.BookingResult
	if current != nil {
		result, err = uc.reservations.Transfer(ctx, req.CandidatID, req.NomCentre, req.Departement, req.Date)
	} else {
		result, err = uc.reservations.Book(ctx, req.CandidatID, req.NomCentre, req.Departement, req.Date)
	}
	if err != nil {
		return nil, err
	}

	return &Response{
		PlaceID:          result.Place.ID,
		NomCentre:        result.Centre.Nom,
		Departement:      result.Centre.Departement,
		Adresse:          result.Centre.Adresse,
		Date:             result.Place.Date,
		LastDateToCancel: result.LastDateToCancel(),
		Transferred:      current != nil,
		MailSent:         result.MailSent,
		Message:          result.Message,
	}, nil
}
