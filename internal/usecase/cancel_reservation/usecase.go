package cancel_reservation

import (
	"context"
	"fmt"

	"github.com/mlegeay/examslots/internal/domain"
)

// UseCase use case самостоятельной отмены брони кандидатом
//
// Отмена разрешена строго до крайнего срока (начало дня за
// domain.DaysToCancelBeforeExam дней до экзамена, Europe/Paris). После
// срока бронь может снять только администратор
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

// Execute выполняет use case отмены брони
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: candidat=%d", req.CandidatID)

	// 1. Валидация входных данных
	if req.CandidatID <= 0 {
		return nil, fmt.Errorf("%w: candidatID must be positive", ErrInvalidInput)
	}

	// 2. Находим активную бронь
	current, err := uc.reservations.FindBooked(ctx, req.CandidatID)
	if err != nil {
		return nil, err
	}

	// 3. Проверяем крайний срок отмены
	now := uc.timeProvider.Now()
	if !domain.CanSelfCancel(now, current.Place.Date) {
		uc.logger.Warn("CancelReservation: deadline passed for candidat=%d (exam=%s, deadline=%s)",
			req.CandidatID,
			current.Place.Date.Format(domain.DateTimeFormat),
			domain.LastDateToCancel(current.Place.Date).Format(domain.DateTimeFormat))
		return nil, ErrTooLateToCancel
	}

	// 4. Освобождаем место
	release, err := uc.reservations.Release(ctx, current.Place, false, domain.ReasonCancel, current.Candidat.Email)
	if err != nil {
		return nil, err
	}

	return &Response{
		NomCentre:   current.Centre.Nom,
		Departement: current.Centre.Departement,
		Date:        current.Place.Date,
		MailSent:    release.MailSent,
		Message:     release.Message,
	}, nil
}
