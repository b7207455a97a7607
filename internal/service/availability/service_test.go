package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlegeay/examslots/internal/domain"
	centreRepo "github.com/mlegeay/examslots/internal/infra/storage/centre"
)

type fakePlaceRepo struct {
	dates     []time.Time
	freeAt    map[string]bool
	err       error
	excludeID *int64
}

func (f *fakePlaceRepo) ListAvailableDates(_ context.Context, _ int64, _, _ time.Time, excludeCandidatID *int64) ([]time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.excludeID = excludeCandidatID
	return f.dates, nil
}

func (f *fakePlaceRepo) ExistsFreeAt(_ context.Context, _ int64, date time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.freeAt[date.Format(domain.DateTimeFormat)], nil
}

type fakeCentreRepo struct {
	centre *domain.Centre
}

func (f *fakeCentreRepo) GetByNomAndDepartement(_ context.Context, nom, departement string) (*domain.Centre, error) {
	if f.centre != nil && f.centre.Nom == nom && f.centre.Departement == departement {
		return f.centre, nil
	}
	return nil, centreRepo.ErrCentreNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func parisDate(day, hour int) time.Time {
	return time.Date(2026, time.September, day, hour, 0, 0, 0, domain.ParisLocation())
}

func TestService_ListAvailableDates(t *testing.T) {
	places := &fakePlaceRepo{dates: []time.Time{parisDate(15, 8), parisDate(16, 10)}}
	centres := &fakeCentreRepo{centre: &domain.Centre{ID: 1, Nom: "Rouen", Departement: "76"}}
	svc := NewService(places, centres, nopLogger{})

	exclude := int64(10)
	dates, err := svc.ListAvailableDates(context.Background(), "Rouen", "76", parisDate(1, 0), parisDate(30, 0), &exclude)
	require.NoError(t, err)

	assert.Len(t, dates, 2)
	require.NotNil(t, places.excludeID)
	assert.Equal(t, int64(10), *places.excludeID)
}

func TestService_ListAvailableDates_UnknownCentre(t *testing.T) {
	svc := NewService(&fakePlaceRepo{}, &fakeCentreRepo{}, nopLogger{})

	_, err := svc.ListAvailableDates(context.Background(), "Nulle-Part", "00", parisDate(1, 0), parisDate(30, 0), nil)
	assert.ErrorIs(t, err, ErrCentreNotFound)
}

func TestService_ListAvailableDates_InvalidRange(t *testing.T) {
	svc := NewService(&fakePlaceRepo{}, &fakeCentreRepo{centre: &domain.Centre{ID: 1, Nom: "Rouen", Departement: "76"}}, nopLogger{})

	_, err := svc.ListAvailableDates(context.Background(), "Rouen", "76", parisDate(30, 0), parisDate(1, 0), nil)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestService_ListAvailableDates_RepoError(t *testing.T) {
	places := &fakePlaceRepo{err: errors.New("db down")}
	centres := &fakeCentreRepo{centre: &domain.Centre{ID: 1, Nom: "Rouen", Departement: "76"}}
	svc := NewService(places, centres, nopLogger{})

	_, err := svc.ListAvailableDates(context.Background(), "Rouen", "76", parisDate(1, 0), parisDate(30, 0), nil)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_HasAvailablePlaceAt(t *testing.T) {
	date := parisDate(15, 8)
	places := &fakePlaceRepo{freeAt: map[string]bool{date.Format(domain.DateTimeFormat): true}}
	centres := &fakeCentreRepo{centre: &domain.Centre{ID: 1, Nom: "Rouen", Departement: "76"}}
	svc := NewService(places, centres, nopLogger{})

	ok, err := svc.HasAvailablePlaceAt(context.Background(), "Rouen", "76", date)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasAvailablePlaceAt(context.Background(), "Rouen", "76", parisDate(16, 8))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_HasAvailablePlaceAt_UnknownCentre(t *testing.T) {
	svc := NewService(&fakePlaceRepo{}, &fakeCentreRepo{}, nopLogger{})

	_, err := svc.HasAvailablePlaceAt(context.Background(), "Nulle-Part", "00", parisDate(15, 8))
	assert.ErrorIs(t, err, ErrCentreNotFound)
}
