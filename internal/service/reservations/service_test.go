package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlegeay/examslots/internal/domain"
	candidatRepo "github.com/mlegeay/examslots/internal/infra/storage/candidat"
	centreRepo "github.com/mlegeay/examslots/internal/infra/storage/centre"
	inspecteurRepo "github.com/mlegeay/examslots/internal/infra/storage/inspecteur"
	placeRepo "github.com/mlegeay/examslots/internal/infra/storage/place"
	"github.com/mlegeay/examslots/internal/integrations/mailgateway"
	"github.com/mlegeay/examslots/pkg/pqerrors"
)

// --- фейки ---

type fakePlaceRepo struct {
	places   map[int64]*domain.Place
	nextID   int64
	claimErr error
	delErr   error
	deleted  []int64
}

func newFakePlaceRepo() *fakePlaceRepo {
	return &fakePlaceRepo{places: map[int64]*domain.Place{}, nextID: 1}
}

func (f *fakePlaceRepo) add(p domain.Place) *domain.Place {
	p.ID = f.nextID
	f.nextID++
	if p.Status == "" {
		p.Status = domain.StatusFree
	}
	f.places[p.ID] = &p
	return f.places[p.ID]
}

func (f *fakePlaceRepo) Create(_ context.Context, place *domain.Place) (*domain.Place, error) {
	for _, p := range f.places {
		if p.InspecteurID == place.InspecteurID && p.Date.Equal(place.Date) {
			return nil, placeRepo.ErrDuplicatePlace
		}
	}
	created := f.add(*place)
	return created, nil
}

func (f *fakePlaceRepo) GetByID(_ context.Context, id int64) (*domain.Place, error) {
	p, ok := f.places[id]
	if !ok {
		return nil, placeRepo.ErrPlaceNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlaceRepo) FindBookedByCandidat(_ context.Context, candidatID int64) (*domain.Place, error) {
	for _, p := range f.places {
		if p.Status == domain.StatusBooked && p.CandidatID != nil && *p.CandidatID == candidatID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, placeRepo.ErrPlaceNotFound
}

func (f *fakePlaceRepo) ClaimFree(_ context.Context, centreID int64, date time.Time, candidatID int64) (*domain.Place, error) {
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	for _, p := range f.places {
		if p.CentreID == centreID && p.Date.Equal(date) && p.Status == domain.StatusFree {
			p.Status = domain.StatusBooked
			p.CandidatID = &candidatID
			cp := *p
			return &cp, nil
		}
	}
	return nil, placeRepo.ErrNoFreePlace
}

func (f *fakePlaceRepo) SetStatus(_ context.Context, id int64, from, to domain.PlaceStatus) error {
	p, ok := f.places[id]
	if !ok {
		return placeRepo.ErrPlaceNotFound
	}
	if p.Status != from {
		return placeRepo.ErrStatusConflict
	}
	p.Status = to
	return nil
}

func (f *fakePlaceRepo) AssignCandidat(_ context.Context, id int64, candidatID int64) error {
	p, ok := f.places[id]
	if !ok {
		return placeRepo.ErrPlaceNotFound
	}
	if p.Status != domain.StatusFree {
		return placeRepo.ErrPlaceAlreadyBooked
	}
	p.Status = domain.StatusBooked
	p.CandidatID = &candidatID
	return nil
}

func (f *fakePlaceRepo) Unbind(_ context.Context, id int64) error {
	p, ok := f.places[id]
	if !ok {
		return placeRepo.ErrPlaceNotFound
	}
	p.CandidatID = nil
	p.Status = domain.StatusFree
	return nil
}

func (f *fakePlaceRepo) Delete(_ context.Context, id int64) error {
	if f.delErr != nil {
		return f.delErr
	}
	if _, ok := f.places[id]; !ok {
		return placeRepo.ErrPlaceNotFound
	}
	delete(f.places, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePlaceRepo) DeleteFree(_ context.Context, id int64) error {
	if f.delErr != nil {
		return f.delErr
	}
	p, ok := f.places[id]
	if !ok || p.Status != domain.StatusFree {
		return placeRepo.ErrPlaceNotFound
	}
	delete(f.places, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCandidatRepo struct {
	candidats map[int64]*domain.Candidat
	vipUntil  map[int64]time.Time
}

func newFakeCandidatRepo() *fakeCandidatRepo {
	return &fakeCandidatRepo{candidats: map[int64]*domain.Candidat{}, vipUntil: map[int64]time.Time{}}
}

func (f *fakeCandidatRepo) GetByID(_ context.Context, id int64) (*domain.Candidat, error) {
	c, ok := f.candidats[id]
	if !ok {
		return nil, candidatRepo.ErrCandidatNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCandidatRepo) UpdateDepartement(_ context.Context, id int64, departement string) error {
	c, ok := f.candidats[id]
	if !ok {
		return candidatRepo.ErrCandidatNotFound
	}
	c.Departement = departement
	return nil
}

func (f *fakeCandidatRepo) SetVIP(_ context.Context, id int64, until time.Time) error {
	c, ok := f.candidats[id]
	if !ok {
		return candidatRepo.ErrCandidatNotFound
	}
	c.VIP = true
	c.VIPExpiresAt = &until
	f.vipUntil[id] = until
	return nil
}

type fakeCentreRepo struct {
	centres map[int64]*domain.Centre
}

func (f *fakeCentreRepo) GetByID(_ context.Context, id int64) (*domain.Centre, error) {
	c, ok := f.centres[id]
	if !ok {
		return nil, centreRepo.ErrCentreNotFound
	}
	return c, nil
}

func (f *fakeCentreRepo) GetByNomAndDepartement(_ context.Context, nom, departement string) (*domain.Centre, error) {
	for _, c := range f.centres {
		if c.Nom == nom && c.Departement == departement {
			return c, nil
		}
	}
	return nil, centreRepo.ErrCentreNotFound
}

type fakeInspecteurRepo struct {
	inspecteurs map[int64]*domain.Inspecteur
}

func (f *fakeInspecteurRepo) GetByID(_ context.Context, id int64) (*domain.Inspecteur, error) {
	i, ok := f.inspecteurs[id]
	if !ok {
		return nil, inspecteurRepo.ErrInspecteurNotFound
	}
	return i, nil
}

func (f *fakeInspecteurRepo) GetByMatricule(_ context.Context, matricule string) (*domain.Inspecteur, error) {
	for _, i := range f.inspecteurs {
		if i.Matricule == matricule {
			return i, nil
		}
	}
	return nil, inspecteurRepo.ErrInspecteurNotFound
}

type fakeArchiveRepo struct {
	entries []*domain.ArchiveEntry
}

func (f *fakeArchiveRepo) Append(_ context.Context, entry *domain.ArchiveEntry) (*domain.ArchiveEntry, error) {
	cp := *entry
	f.entries = append(f.entries, &cp)
	return &cp, nil
}

type fakeMailClient struct {
	bookingErr    error
	cancelErr     error
	onCancel      func()
	bookings      []*mailgateway.BookingMessage
	cancellations []*mailgateway.CancellationMessage
}

func (f *fakeMailClient) SendBookingConfirmation(_ context.Context, msg *mailgateway.BookingMessage) error {
	if f.bookingErr != nil {
		return f.bookingErr
	}
	f.bookings = append(f.bookings, msg)
	return nil
}

func (f *fakeMailClient) SendCancellation(_ context.Context, msg *mailgateway.CancellationMessage) error {
	if f.onCancel != nil {
		f.onCancel()
	}
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancellations = append(f.cancellations, msg)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- обвязка ---

type fixture struct {
	svc         *Service
	places      *fakePlaceRepo
	candidats   *fakeCandidatRepo
	centres     *fakeCentreRepo
	inspecteurs *fakeInspecteurRepo
	archive     *fakeArchiveRepo
	mail        *fakeMailClient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fx := &fixture{
		places:      newFakePlaceRepo(),
		candidats:   newFakeCandidatRepo(),
		centres:     &fakeCentreRepo{centres: map[int64]*domain.Centre{}},
		inspecteurs: &fakeInspecteurRepo{inspecteurs: map[int64]*domain.Inspecteur{}},
		archive:     &fakeArchiveRepo{},
		mail:        &fakeMailClient{},
	}
	fx.svc = NewService(
		fx.places, fx.candidats, fx.centres, fx.inspecteurs, fx.archive,
		fx.mail, fakeTxManager{}, nopLogger{},
	)

	fx.centres.centres[1] = &domain.Centre{ID: 1, Nom: "Rouen", Departement: "76", Adresse: "1 rue du Test"}
	fx.centres.centres[2] = &domain.Centre{ID: 2, Nom: "Bobigny", Departement: "93"}
	fx.inspecteurs.inspecteurs[1] = &domain.Inspecteur{ID: 1, Matricule: "001", Active: true}
	fx.inspecteurs.inspecteurs[2] = &domain.Inspecteur{ID: 2, Matricule: "002", Active: true}
	fx.candidats.candidats[10] = &domain.Candidat{ID: 10, NomNaissance: "Dupont", Email: "dupont@test.fr", CodeNeph: "0123456789", Departement: "76"}

	return fx
}

func examDate(day int) time.Time {
	return time.Date(2026, time.September, day, 8, 30, 0, 0, domain.ParisLocation())
}

// --- Book ---

func TestService_Book_Success(t *testing.T) {
	fx := newFixture(t)
	fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20)})

	result, err := fx.svc.Book(context.Background(), 10, "Rouen", "76", examDate(20))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusBooked, result.Place.Status)
	require.NotNil(t, result.Place.CandidatID)
	assert.Equal(t, int64(10), *result.Place.CandidatID)
	assert.True(t, result.MailSent)
	assert.Equal(t, MsgResaConfirmed, result.Message)
	require.Len(t, fx.mail.bookings, 1)
	assert.Equal(t, "dupont@test.fr", fx.mail.bookings[0].Email)
}

func TestService_Book_NoFreePlace(t *testing.T) {
	fx := newFixture(t)
	// место есть, но на другую дату
	fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(21)})

	_, err := fx.svc.Book(context.Background(), 10, "Rouen", "76", examDate(20))
	assert.ErrorIs(t, err, ErrNoPlaceAvailable)
	assert.Empty(t, fx.mail.bookings)
}

func TestService_Book_AlreadyBooked(t *testing.T) {
	fx := newFixture(t)
	cid := int64(10)
	fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(15), Status: domain.StatusBooked, CandidatID: &cid})
	fx.places.add(domain.Place{InspecteurID: 2, CentreID: 1, Date: examDate(20)})

	_, err := fx.svc.Book(context.Background(), 10, "Rouen", "76", examDate(20))
	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestService_Book_MailFailureKeepsBooking(t *testing.T) {
	fx := newFixture(t)
	fx.mail.bookingErr = errors.New("gateway down")
	fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20)})

	result, err := fx.svc.Book(context.Background(), 10, "Rouen", "76", examDate(20))
	require.NoError(t, err)

	assert.False(t, result.MailSent)
	assert.Equal(t, MsgResaConfirmedNoMail, result.Message)

	// бронь осталась зафиксированной
	booked, err := fx.places.FindBookedByCandidat(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, result.Place.ID, booked.ID)
}

func TestService_Book_UpdatesDepartement(t *testing.T) {
	fx := newFixture(t)
	fx.places.add(domain.Place{InspecteurID: 2, CentreID: 2, Date: examDate(20)})

	result, err := fx.svc.Book(context.Background(), 10, "Bobigny", "93", examDate(20))
	require.NoError(t, err)

	assert.Equal(t, "93", result.Candidat.Departement)
	assert.Equal(t, "93", fx.candidats.candidats[10].Departement)
}

func TestService_Book_SingleWinnerForLastPlace(t *testing.T) {
	fx := newFixture(t)
	fx.candidats.candidats[11] = &domain.Candidat{ID: 11, NomNaissance: "Martin", Email: "martin@test.fr", CodeNeph: "9876543210", Departement: "76"}
	place := fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20)})

	first, err := fx.svc.Book(context.Background(), 10, "Rouen", "76", examDate(20))
	require.NoError(t, err)
	assert.Equal(t, place.ID, first.Place.ID)

	// единственное место уже занято: второй кандидат получает отказ,
	// бронь первого не затрагивается
	_, err = fx.svc.Book(context.Background(), 11, "Rouen", "76", examDate(20))
	assert.ErrorIs(t, err, ErrNoPlaceAvailable)

	kept := fx.places.places[place.ID]
	require.NotNil(t, kept.CandidatID)
	assert.Equal(t, int64(10), *kept.CandidatID)
	assert.Equal(t, domain.StatusBooked, kept.Status)
}

func TestService_Book_SerializationFailurePassesThrough(t *testing.T) {
	fx := newFixture(t)
	fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20)})
	fx.places.claimErr = pqerrors.WrapDriver(
		placeRepo.ErrExecQuery, "ClaimFree", "execute update",
		&pq.Error{Code: "40001"},
	)

	_, err := fx.svc.Book(context.Background(), 10, "Rouen", "76", examDate(20))

	// ошибка сериализации не сводится к ErrInternal: менеджер транзакций
	// должен распознать ее и повторить транзакцию
	require.Error(t, err)
	assert.True(t, pqerrors.IsSerializationFailure(err))
	assert.False(t, errors.Is(err, ErrInternal))
}

func TestService_Book_CandidatNotFound(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.Book(context.Background(), 999, "Rouen", "76", examDate(20))
	assert.ErrorIs(t, err, ErrCandidatNotFound)
}

// --- Transfer ---

func TestService_Transfer_Success(t *testing.T) {
	fx := newFixture(t)
	cid := int64(10)
	prev := fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(15), Status: domain.StatusBooked, CandidatID: &cid})
	fx.places.add(domain.Place{InspecteurID: 2, CentreID: 1, Date: examDate(20)})

	result, err := fx.svc.Transfer(context.Background(), 10, "Rouen", "76", examDate(20))
	require.NoError(t, err)

	assert.True(t, result.Place.Date.Equal(examDate(20)))
	assert.Contains(t, fx.places.deleted, prev.ID)

	// перенос архивируется с причиной MODIFY и без письма об отмене
	require.Len(t, fx.archive.entries, 1)
	assert.Equal(t, domain.ReasonModify, fx.archive.entries[0].Reason)
	assert.False(t, fx.archive.entries[0].ByAdmin)
	assert.Empty(t, fx.mail.cancellations)
	require.Len(t, fx.mail.bookings, 1)
}

func TestService_Transfer_FailureKeepsOriginalBooking(t *testing.T) {
	fx := newFixture(t)
	cid := int64(10)
	prev := fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(15), Status: domain.StatusBooked, CandidatID: &cid})

	// свободных мест на целевую дату нет
	_, err := fx.svc.Transfer(context.Background(), 10, "Rouen", "76", examDate(20))
	assert.ErrorIs(t, err, ErrNoPlaceAvailable)

	// исходная бронь восстановлена
	booked, err := fx.places.FindBookedByCandidat(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, prev.ID, booked.ID)
	assert.Equal(t, domain.StatusBooked, booked.Status)
	assert.Empty(t, fx.archive.entries)
}

func TestService_Transfer_NoReservation(t *testing.T) {
	fx := newFixture(t)
	fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20)})

	_, err := fx.svc.Transfer(context.Background(), 10, "Rouen", "76", examDate(20))
	assert.ErrorIs(t, err, ErrNoReservation)
}

// --- Release ---

func TestService_Release_ProtectedWindowGrantsVIP(t *testing.T) {
	fx := newFixture(t)
	cid := int64(10)
	place := fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20), Status: domain.StatusBooked, CandidatID: &cid})

	// отмена за 3 дня до экзамена - внутри защищенного окна
	fx.svc.timeProvider = fixedTime{t: examDate(17)}

	result, err := fx.svc.Release(context.Background(), place, false, domain.ReasonCancel, "dupont@test.fr")
	require.NoError(t, err)

	assert.True(t, result.MailSent)
	assert.Equal(t, MsgResaCancelled, result.Message)
	assert.True(t, fx.candidats.candidats[10].VIP)
	assert.True(t, fx.vipUntilEquals(10, domain.VIPExpiry(examDate(20))))
	assert.Contains(t, fx.places.deleted, place.ID)
	require.Len(t, fx.archive.entries, 1)
	assert.Equal(t, domain.ReasonCancel, fx.archive.entries[0].Reason)
}

func (fx *fixture) vipUntilEquals(candidatID int64, want time.Time) bool {
	got, ok := fx.candidats.vipUntil[candidatID]
	return ok && got.Equal(want)
}

func TestService_Release_EarlyCancelNoVIP(t *testing.T) {
	fx := newFixture(t)
	cid := int64(10)
	place := fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20), Status: domain.StatusBooked, CandidatID: &cid})

	// отмена за месяц до экзамена - окно еще не наступило
	fx.svc.timeProvider = fixedTime{t: time.Date(2026, time.August, 20, 10, 0, 0, 0, domain.ParisLocation())}

	_, err := fx.svc.Release(context.Background(), place, false, domain.ReasonCancel, "dupont@test.fr")
	require.NoError(t, err)

	assert.False(t, fx.candidats.candidats[10].VIP)
}

func TestService_Release_DeleteFailureReported(t *testing.T) {
	fx := newFixture(t)
	cid := int64(10)
	place := fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20), Status: domain.StatusBooked, CandidatID: &cid})
	fx.places.delErr = errors.New("db down")
	fx.svc.timeProvider = fixedTime{t: examDate(17)}

	result, err := fx.svc.Release(context.Background(), place, false, domain.ReasonCancel, "dupont@test.fr")
	require.NoError(t, err)

	// освобождение зафиксировано, но пользователь предупрежден
	assert.Equal(t, MsgDeletePlaceError, result.Message)
	require.Len(t, fx.archive.entries, 1)
	assert.Equal(t, domain.StatusFree, fx.places.places[place.ID].Status)
}

func TestService_Release_KeepsPlaceRebookedBeforeCleanup(t *testing.T) {
	fx := newFixture(t)
	cid := int64(10)
	place := fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20), Status: domain.StatusBooked, CandidatID: &cid})
	fx.svc.timeProvider = fixedTime{t: examDate(17)}

	// между коммитом освобождения и уборкой место занимает другой кандидат
	other := int64(11)
	fx.mail.onCancel = func() {
		fx.places.places[place.ID].Status = domain.StatusBooked
		fx.places.places[place.ID].CandidatID = &other
	}

	result, err := fx.svc.Release(context.Background(), place, false, domain.ReasonCancel, "dupont@test.fr")
	require.NoError(t, err)

	// уборка не удаляет чужую бронь, пользователь видит деградацию
	assert.Equal(t, MsgDeletePlaceError, result.Message)
	assert.Empty(t, fx.places.deleted)
	kept := fx.places.places[place.ID]
	require.NotNil(t, kept)
	require.NotNil(t, kept.CandidatID)
	assert.Equal(t, other, *kept.CandidatID)
	assert.Equal(t, domain.StatusBooked, kept.Status)
}

func TestService_Release_NoCandidat(t *testing.T) {
	fx := newFixture(t)
	place := fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20)})

	_, err := fx.svc.Release(context.Background(), place, false, domain.ReasonCancel, "x@test.fr")
	assert.ErrorIs(t, err, ErrNoCandidatOnPlace)
}

// --- AdminForceRelease ---

func TestService_AdminForceRelease_Success(t *testing.T) {
	fx := newFixture(t)
	cid := int64(10)
	place := fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20), Status: domain.StatusBooked, CandidatID: &cid})
	// далеко до экзамена: VIP полагается только из-за byAdmin
	fx.svc.timeProvider = fixedTime{t: time.Date(2026, time.July, 1, 10, 0, 0, 0, domain.ParisLocation())}

	result, err := fx.svc.AdminForceRelease(context.Background(), place.ID, "admin@test.fr")
	require.NoError(t, err)

	assert.True(t, result.MailSent)
	assert.Equal(t, MsgResaCancelled, result.Message)
	assert.True(t, fx.candidats.candidats[10].VIP)
	require.Len(t, fx.archive.entries, 1)
	assert.Equal(t, domain.ReasonRemoveResaAdmin, fx.archive.entries[0].Reason)
	assert.True(t, fx.archive.entries[0].ByAdmin)
	assert.Equal(t, "admin@test.fr", fx.archive.entries[0].ActorEmail)
	require.Len(t, fx.mail.cancellations, 1)
	assert.True(t, fx.mail.cancellations[0].ByAdmin)
}

func TestService_AdminForceRelease_MailFailure(t *testing.T) {
	fx := newFixture(t)
	cid := int64(10)
	place := fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20), Status: domain.StatusBooked, CandidatID: &cid})
	fx.mail.cancelErr = errors.New("gateway down")
	fx.svc.timeProvider = fixedTime{t: examDate(17)}

	result, err := fx.svc.AdminForceRelease(context.Background(), place.ID, "admin@test.fr")
	require.NoError(t, err)

	assert.False(t, result.MailSent)
	assert.Equal(t, MsgResaCancelledNoMail, result.Message)
	// бронь все равно снята и заархивирована
	assert.Contains(t, fx.places.deleted, place.ID)
	require.Len(t, fx.archive.entries, 1)
}

func TestService_AdminForceRelease_EmptyPlace(t *testing.T) {
	fx := newFixture(t)
	place := fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20)})

	_, err := fx.svc.AdminForceRelease(context.Background(), place.ID, "admin@test.fr")
	assert.ErrorIs(t, err, ErrNoCandidatOnPlace)
}

// --- MoveBooking ---

func TestService_MoveBooking_Success(t *testing.T) {
	fx := newFixture(t)
	cid := int64(10)
	source := fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(15), Status: domain.StatusBooked, CandidatID: &cid})
	target := fx.places.add(domain.Place{InspecteurID: 2, CentreID: 1, Date: examDate(20)})

	moved, err := fx.svc.MoveBooking(context.Background(), source.ID, target.ID)
	require.NoError(t, err)

	assert.Equal(t, target.ID, moved.ID)
	require.NotNil(t, moved.CandidatID)
	assert.Equal(t, int64(10), *moved.CandidatID)
	assert.Contains(t, fx.places.deleted, source.ID)
	// админский перенос - не отмена, архив не трогаем
	assert.Empty(t, fx.archive.entries)
}

func TestService_MoveBooking_Preconditions(t *testing.T) {
	cid := int64(10)
	other := int64(11)

	tests := []struct {
		name    string
		source  domain.Place
		target  domain.Place
		wantErr error
	}{
		{
			name:    "source without candidat",
			source:  domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(15)},
			target:  domain.Place{InspecteurID: 2, CentreID: 1, Date: examDate(20)},
			wantErr: ErrNoCandidatOnPlace,
		},
		{
			name:    "target already booked",
			source:  domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(15), Status: domain.StatusBooked, CandidatID: &cid},
			target:  domain.Place{InspecteurID: 2, CentreID: 1, Date: examDate(20), Status: domain.StatusBooked, CandidatID: &other},
			wantErr: ErrTargetPlaceBooked,
		},
		{
			name:    "different centre",
			source:  domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(15), Status: domain.StatusBooked, CandidatID: &cid},
			target:  domain.Place{InspecteurID: 2, CentreID: 2, Date: examDate(20)},
			wantErr: ErrDifferentCentre,
		},
		{
			name:    "target before source",
			source:  domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20), Status: domain.StatusBooked, CandidatID: &cid},
			target:  domain.Place{InspecteurID: 2, CentreID: 1, Date: examDate(15)},
			wantErr: ErrTargetDateBeforeSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			source := fx.places.add(tt.source)
			target := fx.places.add(tt.target)

			_, err := fx.svc.MoveBooking(context.Background(), source.ID, target.ID)
			assert.ErrorIs(t, err, tt.wantErr)
			// ничего не удалено и не переназначено
			assert.Empty(t, fx.places.deleted)
		})
	}
}

func TestService_MoveBooking_SourceNotFound(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.MoveBooking(context.Background(), 404, 405)
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

// --- CreatePlace ---

func TestService_CreatePlace_Success(t *testing.T) {
	fx := newFixture(t)

	created, err := fx.svc.CreatePlace(context.Background(), "001", "Rouen", "76", examDate(20))
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.InspecteurID)
	assert.Equal(t, int64(1), created.CentreID)
	assert.Equal(t, domain.StatusFree, fx.places.places[created.ID].Status)
}

func TestService_CreatePlace_Duplicate(t *testing.T) {
	fx := newFixture(t)
	fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20)})

	_, err := fx.svc.CreatePlace(context.Background(), "001", "Rouen", "76", examDate(20))
	assert.ErrorIs(t, err, ErrPlaceExists)
}

func TestService_CreatePlace_UnknownInspecteur(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.CreatePlace(context.Background(), "999", "Rouen", "76", examDate(20))
	assert.ErrorIs(t, err, ErrInspecteurNotFound)
}

// --- освобождение и повторное бронирование ---

func TestService_ReleaseThenRebook(t *testing.T) {
	fx := newFixture(t)
	fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20)})

	first, err := fx.svc.Book(context.Background(), 10, "Rouen", "76", examDate(20))
	require.NoError(t, err)

	fx.svc.timeProvider = fixedTime{t: time.Date(2026, time.July, 1, 10, 0, 0, 0, domain.ParisLocation())}
	_, err = fx.svc.Release(context.Background(), first.Place, false, domain.ReasonCancel, "dupont@test.fr")
	require.NoError(t, err)

	// место удалено после освобождения, на ту же дату брони больше нет
	_, err = fx.svc.Book(context.Background(), 10, "Rouen", "76", examDate(20))
	assert.ErrorIs(t, err, ErrNoPlaceAvailable)

	// новое место на эту дату снова можно забронировать
	fx.places.add(domain.Place{InspecteurID: 1, CentreID: 1, Date: examDate(20)})
	second, err := fx.svc.Book(context.Background(), 10, "Rouen", "76", examDate(20))
	require.NoError(t, err)
	assert.NotEqual(t, first.Place.ID, second.Place.ID)
}
