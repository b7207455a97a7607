package cancel_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlegeay/examslots/internal/domain"
	"github.com/mlegeay/examslots/internal/service/reservations"
	"github.com/mlegeay/examslots/internal/service/reservations/models"
)

type fakeReservationService struct {
	current       *models.BookingResult
	releaseResult *models.ReleaseResult
	releaseErr    error

	releasedPlace  *domain.Place
	releasedReason domain.ArchiveReason
	releasedAdmin  bool
}

func (f *fakeReservationService) FindBooked(_ context.Context, _ int64) (*models.BookingResult, error) {
	if f.current == nil {
		return nil, reservations.ErrNoReservation
	}
	return f.current, nil
}

func (f *fakeReservationService) Release(_ context.Context, place *domain.Place, byAdmin bool, reason domain.ArchiveReason, _ string) (*models.ReleaseResult, error) {
	f.releasedPlace = place
	f.releasedReason = reason
	f.releasedAdmin = byAdmin
	return f.releaseResult, f.releaseErr
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func examDate(day int) time.Time {
	return time.Date(2026, time.September, day, 8, 30, 0, 0, domain.ParisLocation())
}

func currentBooking(date time.Time) *models.BookingResult {
	return &models.BookingResult{
		Place:    &domain.Place{ID: 1, CentreID: 1, Date: date, Status: domain.StatusBooked},
		Centre:   &domain.Centre{ID: 1, Nom: "Rouen", Departement: "76"},
		Candidat: &domain.Candidat{ID: 10, Email: "dupont@test.fr"},
	}
}

func newUseCase(svc *fakeReservationService, now time.Time) *UseCase {
	uc := NewUseCase(svc, nopLogger{})
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func TestUseCase_CancelBeforeDeadline(t *testing.T) {
	svc := &fakeReservationService{
		current:       currentBooking(examDate(20)),
		releaseResult: &models.ReleaseResult{MailSent: true, Message: reservations.MsgResaCancelled},
	}
	// за месяц до экзамена
	uc := newUseCase(svc, time.Date(2026, time.August, 20, 10, 0, 0, 0, domain.ParisLocation()))

	resp, err := uc.Execute(context.Background(), &Request{CandidatID: 10})
	require.NoError(t, err)

	assert.Equal(t, "Rouen", resp.NomCentre)
	assert.True(t, resp.MailSent)
	assert.Equal(t, domain.ReasonCancel, svc.releasedReason)
	assert.False(t, svc.releasedAdmin)
	require.NotNil(t, svc.releasedPlace)
	assert.Equal(t, int64(1), svc.releasedPlace.ID)
}

func TestUseCase_CancelAfterDeadline(t *testing.T) {
	svc := &fakeReservationService{current: currentBooking(examDate(20))}
	// за 3 дня до экзамена - крайний срок прошел
	uc := newUseCase(svc, examDate(17))

	_, err := uc.Execute(context.Background(), &Request{CandidatID: 10})
	assert.ErrorIs(t, err, ErrTooLateToCancel)
	assert.Nil(t, svc.releasedPlace)
}

func TestUseCase_NoReservation(t *testing.T) {
	svc := &fakeReservationService{}
	uc := newUseCase(svc, examDate(1))

	_, err := uc.Execute(context.Background(), &Request{CandidatID: 10})
	assert.ErrorIs(t, err, reservations.ErrNoReservation)
}

func TestUseCase_InvalidCandidat(t *testing.T) {
	uc := newUseCase(&fakeReservationService{}, examDate(1))

	_, err := uc.Execute(context.Background(), &Request{CandidatID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
