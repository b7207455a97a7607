package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mlegeay/examslots/internal/domain"
	candidatRepo "github.com/mlegeay/examslots/internal/infra/storage/candidat"
	centreRepo "github.com/mlegeay/examslots/internal/infra/storage/centre"
	inspecteurRepo "github.com/mlegeay/examslots/internal/infra/storage/inspecteur"
	placeRepo "github.com/mlegeay/examslots/internal/infra/storage/place"
	"github.com/mlegeay/examslots/internal/integrations/mailgateway"
	"github.com/mlegeay/examslots/internal/service/reservations/models"
	"github.com/mlegeay/examslots/pkg/pqerrors"
)

// internalErr сводит неожиданную ошибку нижнего слоя к ErrInternal
// Ошибки сериализации проходят без обёртки, чтобы менеджер транзакций
// мог их распознать и повторить сериализуемую транзакцию
func internalErr(method, step string, err error) error {
	if pqerrors.IsSerializationFailure(err) {
		return err
	}
	return fmt.Errorf("%w: %s - %s: %v", ErrInternal, method, step, err)
}

// Service управляет жизненным циклом брони: создание, перенос, отмена,
// административные операции
//
// Все изменения мест и кандидатов выполняются в коротких транзакциях,
// арбитром конкурирующих бронирований служит БД (уникальный индекс и
// блокировки строк), а не блокировки в приложении. Письма отправляются
// после фиксации транзакции и никогда не откатывают бронь.
type Service struct {
	placeRepo      PlaceRepository
	candidatRepo   CandidatRepository
	centreRepo     CentreRepository
	inspecteurRepo InspecteurRepository
	archiveRepo    ArchiveRepository
	mailClient     MailClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	placeRepository PlaceRepository,
	candidatRepository CandidatRepository,
	centreRepository CentreRepository,
	inspecteurRepository InspecteurRepository,
	archiveRepository ArchiveRepository,
	mailClient MailClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		placeRepo:      placeRepository,
		candidatRepo:   candidatRepository,
		centreRepo:     centreRepository,
		inspecteurRepo: inspecteurRepository,
		archiveRepo:    archiveRepository,
		mailClient:     mailClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Book бронирует свободное место на центр и точную дату
//
// Предусловие: у кандидата нет другой активной брони (ErrAlreadyBooked).
// Если свободных мест нет, возвращается ErrNoPlaceAvailable - это штатный
// отрицательный результат. Если департамент кандидата отличается от
// департамента центра, кандидат переводится в департамент центра.
func (s *Service) Book(ctx context.Context, candidatID int64, nomCentre, departement string, date time.Time) (*models.BookingResult, error) {
	s.logger.Info("Book: candidat=%d, centre=%s, departement=%s, date=%s",
		candidatID, nomCentre, departement, date.Format(domain.DateTimeFormat))

	var (
		booked   *domain.Place
		centre   *domain.Centre
		candidat *domain.Candidat
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		candidat, err = s.candidatRepo.GetByID(txCtx, candidatID)
		if err != nil {
			if errors.Is(err, candidatRepo.ErrCandidatNotFound) {
				return ErrCandidatNotFound
			}
			return internalErr("Book", "get candidat", err)
		}

		// Один кандидат - одна бронь; удерживаемое (held) место переноса
		// сюда не попадает и проверку не блокирует
		_, err = s.placeRepo.FindBookedByCandidat(txCtx, candidatID)
		if err == nil {
			return ErrAlreadyBooked
		}
		if !errors.Is(err, placeRepo.ErrPlaceNotFound) {
			return internalErr("Book", "find booked place", err)
		}

		centre, err = s.centreRepo.GetByNomAndDepartement(txCtx, nomCentre, departement)
		if err != nil {
			if errors.Is(err, centreRepo.ErrCentreNotFound) {
				return ErrCentreNotFound
			}
			return internalErr("Book", "get centre", err)
		}

		booked, err = s.placeRepo.ClaimFree(txCtx, centre.ID, date, candidatID)
		if err != nil {
			if errors.Is(err, placeRepo.ErrNoFreePlace) {
				return ErrNoPlaceAvailable
			}
			if errors.Is(err, placeRepo.ErrDuplicatePlace) {
				return ErrPlaceTaken
			}
			return internalErr("Book", "claim place", err)
		}

		if candidat.Departement != centre.Departement {
			if err := s.candidatRepo.UpdateDepartement(txCtx, candidatID, centre.Departement); err != nil {
				return internalErr("Book", "update candidat departement", err)
			}
			candidat.Departement = centre.Departement
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Book: candidat=%d booked place id=%d (inspecteur=%d)", candidatID, booked.ID, booked.InspecteurID)

	// Письмо после коммита, неудача не откатывает бронь
	mailSent := true
	message := MsgResaConfirmed
	if err := s.mailClient.SendBookingConfirmation(ctx, &mailgateway.BookingMessage{
		Email:        candidat.Email,
		NomNaissance: candidat.NomNaissance,
		CodeNeph:     candidat.CodeNeph,
		NomCentre:    centre.Nom,
		Departement:  centre.Departement,
		Adresse:      centre.Adresse,
		Date:         booked.Date,
	}); err != nil {
		s.logger.Warn("Book: confirmation mail failed for candidat=%d place=%d: %v", candidatID, booked.ID, err)
		mailSent = false
		message = MsgResaConfirmedNoMail
	}

	return &models.BookingResult{
		Place:    booked,
		Centre:   centre,
		Candidat: candidat,
		MailSent: mailSent,
		Message:  message,
	}, nil
}

// Transfer переносит бронь кандидата на другой центр или дату
//
// Последовательность спроектирована так, чтобы кандидат никогда не остался
// без брони из-за неудачи нового бронирования:
//  1. текущее место переводится в статус held (удержание, не удаление);
//  2. выполняется бронирование нового места;
//  3. при неудаче шага 2 удержание снимается - кандидат сохраняет
//     исходную бронь;
//  4. при успехе прежнее место освобождается (архив, причина MODIFY) и
//     удаляется.
func (s *Service) Transfer(ctx context.Context, candidatID int64, nomCentre, departement string, date time.Time) (*models.BookingResult, error) {
	s.logger.Info("Transfer: candidat=%d, centre=%s, departement=%s, date=%s",
		candidatID, nomCentre, departement, date.Format(domain.DateTimeFormat))

	previous, err := s.placeRepo.FindBookedByCandidat(ctx, candidatID)
	if err != nil {
		if errors.Is(err, placeRepo.ErrPlaceNotFound) {
			return nil, ErrNoReservation
		}
		return nil, internalErr("Transfer", "find booked place", err)
	}

	if err := s.placeRepo.SetStatus(ctx, previous.ID, domain.StatusBooked, domain.StatusHeld); err != nil {
		return nil, internalErr("Transfer", "hold previous place", err)
	}

	result, err := s.Book(ctx, candidatID, nomCentre, departement, date)
	if err != nil {
		// Кандидат сохраняет исходную бронь
		if restoreErr := s.placeRepo.SetStatus(ctx, previous.ID, domain.StatusHeld, domain.StatusBooked); restoreErr != nil {
			s.logger.Error("Transfer: failed to restore held place id=%d for candidat=%d: %v",
				previous.ID, candidatID, restoreErr)
			return nil, internalErr("Transfer", "restore held place", restoreErr)
		}
		s.logger.Warn("Transfer: new booking failed for candidat=%d, previous place id=%d restored: %v",
			candidatID, previous.ID, err)
		return nil, err
	}

	// Прежнее место больше не нужно: архивируем и удаляем.
	// Письмо об отмене при переносе не отправляется - кандидат получает
	// только новое приглашение.
	release, err := s.Release(ctx, previous, false, domain.ReasonModify, result.Candidat.Email)
	if err != nil {
		// Новая бронь уже зафиксирована, прежнее место осталось удержанным.
		// Сообщаем о деградации, но перенос считается успешным.
		s.logger.Error("Transfer: failed to release previous place id=%d for candidat=%d: %v",
			previous.ID, candidatID, err)
		result.Message = MsgDeletePlaceError
		return result, nil
	}
	if release.Message == MsgDeletePlaceError {
		result.Message = MsgDeletePlaceError
	}

	s.logger.Info("Transfer: candidat=%d moved from place id=%d to place id=%d",
		candidatID, previous.ID, result.Place.ID)
	return result, nil
}

// Release освобождает забронированное (или удерживаемое) место
//
// Порядок фиксирован: снятие брони и запись в архив коммитятся одной
// транзакцией и являются авторитетным действием; письмо и физическое
// удаление места - best-effort, их неудача отражается в результате, но
// не откатывает освобождение.
func (s *Service) Release(ctx context.Context, place *domain.Place, byAdmin bool, reason domain.ArchiveReason, actorEmail string) (*models.ReleaseResult, error) {
	if place.CandidatID == nil {
		return nil, ErrNoCandidatOnPlace
	}
	candidatID := *place.CandidatID

	s.logger.Info("Release: place=%d, candidat=%d, reason=%s, byAdmin=%v", place.ID, candidatID, reason, byAdmin)

	candidat, err := s.candidatRepo.GetByID(ctx, candidatID)
	if err != nil {
		if errors.Is(err, candidatRepo.ErrCandidatNotFound) {
			return nil, ErrCandidatNotFound
		}
		return nil, internalErr("Release", "get candidat", err)
	}

	centre, err := s.centreRepo.GetByID(ctx, place.CentreID)
	if err != nil {
		return nil, internalErr("Release", "get centre", err)
	}

	inspecteur, err := s.inspecteurRepo.GetByID(ctx, place.InspecteurID)
	if err != nil {
		return nil, internalErr("Release", "get inspecteur", err)
	}

	now := s.timeProvider.Now()

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.placeRepo.Unbind(txCtx, place.ID); err != nil {
			return internalErr("Release", "unbind place", err)
		}

		if _, err := s.archiveRepo.Append(txCtx, &domain.ArchiveEntry{
			CandidatID:          candidatID,
			NomCentre:           centre.Nom,
			CentreDepartement:   centre.Departement,
			InspecteurMatricule: inspecteur.Matricule,
			PlaceDate:           place.Date,
			Reason:              reason,
			ByAdmin:             byAdmin,
			ActorEmail:          actorEmail,
		}); err != nil {
			return internalErr("Release", "append archive entry", err)
		}

		// Административное снятие всегда дает VIP-приоритет; отмена или
		// перенос - только внутри защищенного окна перед экзаменом
		if byAdmin || domain.IsProtectedRelease(now, place.Date) {
			if err := s.candidatRepo.SetVIP(txCtx, candidatID, domain.VIPExpiry(place.Date)); err != nil {
				return internalErr("Release", "set VIP", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	mailSent := false
	message := MsgResaCancelledNoMail
	if reason != domain.ReasonModify {
		if err := s.mailClient.SendCancellation(ctx, &mailgateway.CancellationMessage{
			Email:        candidat.Email,
			NomNaissance: candidat.NomNaissance,
			CodeNeph:     candidat.CodeNeph,
			NomCentre:    centre.Nom,
			Departement:  centre.Departement,
			Date:         place.Date,
			ByAdmin:      byAdmin,
		}); err != nil {
			s.logger.Warn("Release: cancellation mail failed for candidat=%d place=%d: %v", candidatID, place.ID, err)
		} else {
			mailSent = true
			message = MsgResaCancelled
		}
	}

	// Место не хранит историю - удаляем; неудача не отменяет освобождение.
	// Удаление фильтрует по статусу free: освобожденное место могло быть
	// занято новой бронью между коммитом и уборкой
	if err := s.placeRepo.DeleteFree(ctx, place.ID); err != nil {
		s.logger.Warn("Release: failed to delete place id=%d after release: %v", place.ID, err)
		message = MsgDeletePlaceError
	}

	return &models.ReleaseResult{MailSent: mailSent, Message: message}, nil
}

// MoveBooking административный перенос брони между двумя местами одного центра
//
// Предусловия: у исходного места есть кандидат, целевое свободно, оба места
// принадлежат одному центру и целевая дата не раньше исходной (переносить
// можно только вперед во времени). Архив не изменяется: админский перенос
// не является отменой. Операция необратима автоматически.
func (s *Service) MoveBooking(ctx context.Context, sourcePlaceID, targetPlaceID int64) (*domain.Place, error) {
	s.logger.Info("MoveBooking: source=%d, target=%d", sourcePlaceID, targetPlaceID)

	var moved *domain.Place

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		source, err := s.placeRepo.GetByID(txCtx, sourcePlaceID)
		if err != nil {
			if errors.Is(err, placeRepo.ErrPlaceNotFound) {
				return ErrPlaceNotFound
			}
			return internalErr("MoveBooking", "get source place", err)
		}

		target, err := s.placeRepo.GetByID(txCtx, targetPlaceID)
		if err != nil {
			if errors.Is(err, placeRepo.ErrPlaceNotFound) {
				return ErrPlaceNotFound
			}
			return internalErr("MoveBooking", "get target place", err)
		}

		if source.CandidatID == nil {
			return ErrNoCandidatOnPlace
		}
		if !target.IsFree() {
			return ErrTargetPlaceBooked
		}
		if source.CentreID != target.CentreID {
			return ErrDifferentCentre
		}
		if target.Date.Before(source.Date) {
			return ErrTargetDateBeforeSource
		}

		if err := s.placeRepo.AssignCandidat(txCtx, target.ID, *source.CandidatID); err != nil {
			if errors.Is(err, placeRepo.ErrPlaceAlreadyBooked) {
				return ErrTargetPlaceBooked
			}
			return internalErr("MoveBooking", "assign candidat", err)
		}

		if err := s.placeRepo.Delete(txCtx, source.ID); err != nil {
			return internalErr("MoveBooking", "delete source place", err)
		}

		target.CandidatID = source.CandidatID
		target.Status = domain.StatusBooked
		moved = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("MoveBooking: candidat=%d moved from place id=%d to place id=%d",
		*moved.CandidatID, sourcePlaceID, targetPlaceID)
	return moved, nil
}

// AdminForceRelease односторонняя отмена брони кандидата администратором
//
// Кандидат безусловно получает VIP-приоритет. Результат различает варианты:
// "отменено, письмо отправлено" / "отменено без письма" / "отменено, место
// не удалено" - освобождение при этом всегда зафиксировано.
func (s *Service) AdminForceRelease(ctx context.Context, placeID int64, adminEmail string) (*models.ReleaseResult, error) {
	s.logger.Info("AdminForceRelease: place=%d, admin=%s", placeID, adminEmail)

	place, err := s.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, placeRepo.ErrPlaceNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, internalErr("AdminForceRelease", "get place", err)
	}

	return s.Release(ctx, place, true, domain.ReasonRemoveResaAdmin, adminEmail)
}

// CreatePlace создает свободное место для инспектора в центре
// Примитив, который вызывает и админский обработчик, и bulk-импорт
func (s *Service) CreatePlace(ctx context.Context, matricule, nomCentre, departement string, date time.Time) (*domain.Place, error) {
	s.logger.Info("CreatePlace: matricule=%s, centre=%s, departement=%s, date=%s",
		matricule, nomCentre, departement, date.Format(domain.DateTimeFormat))

	var created *domain.Place

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		centre, err := s.centreRepo.GetByNomAndDepartement(txCtx, nomCentre, departement)
		if err != nil {
			if errors.Is(err, centreRepo.ErrCentreNotFound) {
				return ErrCentreNotFound
			}
			return internalErr("CreatePlace", "get centre", err)
		}

		inspecteur, err := s.inspecteurRepo.GetByMatricule(txCtx, matricule)
		if err != nil {
			if errors.Is(err, inspecteurRepo.ErrInspecteurNotFound) {
				return ErrInspecteurNotFound
			}
			return internalErr("CreatePlace", "get inspecteur", err)
		}

		created, err = s.placeRepo.Create(txCtx, &domain.Place{
			InspecteurID: inspecteur.ID,
			CentreID:     centre.ID,
			Date:         date,
		})
		if err != nil {
			if errors.Is(err, placeRepo.ErrDuplicatePlace) {
				return ErrPlaceExists
			}
			if errors.Is(err, placeRepo.ErrInspecteurBusy) {
				return ErrInspecteurBusy
			}
			return internalErr("CreatePlace", "create place", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreatePlace: created place id=%d", created.ID)
	return created, nil
}

// FindBooked возвращает активную бронь кандидата
// Возвращает ErrNoReservation, если брони нет
func (s *Service) FindBooked(ctx context.Context, candidatID int64) (*models.BookingResult, error) {
	place, err := s.placeRepo.FindBookedByCandidat(ctx, candidatID)
	if err != nil {
		if errors.Is(err, placeRepo.ErrPlaceNotFound) {
			return nil, ErrNoReservation
		}
		return nil, internalErr("FindBooked", "find booked place", err)
	}

	centre, err := s.centreRepo.GetByID(ctx, place.CentreID)
	if err != nil {
		return nil, internalErr("FindBooked", "get centre", err)
	}

	candidat, err := s.candidatRepo.GetByID(ctx, *place.CandidatID)
	if err != nil {
		return nil, internalErr("FindBooked", "get candidat", err)
	}

	return &models.BookingResult{Place: place, Centre: centre, Candidat: candidat}, nil
}
