package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mlegeay/examslots/internal/domain"
	centreRepo "github.com/mlegeay/examslots/internal/infra/storage/centre"
)

// Service отвечает на запросы о доступности мест
//
// Сервис не изменяет состояние: это снимок на момент чтения, показанная
// дата могла быть занята к моменту бронирования. Повторный запрос с теми
// же аргументами безопасен.
type Service struct {
	placeRepo  PlaceRepository
	centreRepo CentreRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(placeRepository PlaceRepository, centreRepository CentreRepository, logger Logger) *Service {
	return &Service{
		placeRepo:  placeRepository,
		centreRepo: centreRepository,
		logger:     logger,
	}
}

// ListAvailableDates возвращает отсортированные даты окна [begin, end),
// на которые в центре есть хотя бы одно свободное место
//
// excludeCandidatID исключает даты, на которые у кандидата уже есть
// бронь, независимо от центра: при переносе кандидату не показывается
// дата его текущей брони
func (s *Service) ListAvailableDates(ctx context.Context, nomCentre, departement string, begin, end time.Time, excludeCandidatID *int64) ([]time.Time, error) {
	if end.Before(begin) {
		return nil, ErrInvalidRange
	}

	centre, err := s.centreRepo.GetByNomAndDepartement(ctx, nomCentre, departement)
	if err != nil {
		if errors.Is(err, centreRepo.ErrCentreNotFound) {
			return nil, ErrCentreNotFound
		}
		return nil, fmt.Errorf("%w: ListAvailableDates - get centre: %v", ErrInternal, err)
	}

	dates, err := s.placeRepo.ListAvailableDates(ctx, centre.ID, begin, end, excludeCandidatID)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableDates - list dates: %v", ErrInternal, err)
	}

	s.logger.Info("ListAvailableDates: centre=%s/%s, window=[%s, %s], found=%d",
		nomCentre, departement, begin.Format(domain.DateFormat), end.Format(domain.DateFormat), len(dates))
	return dates, nil
}

// HasAvailablePlaceAt проверяет, есть ли свободное место в центре на
// точную дату. Дешевая проверка перед попыткой бронирования
func (s *Service) HasAvailablePlaceAt(ctx context.Context, nomCentre, departement string, date time.Time) (bool, error) {
	centre, err := s.centreRepo.GetByNomAndDepartement(ctx, nomCentre, departement)
	if err != nil {
		if errors.Is(err, centreRepo.ErrCentreNotFound) {
			return false, ErrCentreNotFound
		}
		return false, fmt.Errorf("%w: HasAvailablePlaceAt - get centre: %v", ErrInternal, err)
	}

	available, err := s.placeRepo.ExistsFreeAt(ctx, centre.ID, date)
	if err != nil {
		return false, fmt.Errorf("%w: HasAvailablePlaceAt - check place: %v", ErrInternal, err)
	}

	return available, nil
}
