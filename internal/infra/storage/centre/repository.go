package centre

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mlegeay/examslots/internal/domain"
	"github.com/mlegeay/examslots/pkg/dbmetrics"
	"github.com/mlegeay/examslots/pkg/pqerrors"
	"github.com/mlegeay/examslots/pkg/psqlbuilder"
)

// Repository репозиторий для работы с центрами экзаменов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория центров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает центр по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Centre, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByNomAndDepartement находит активный центр по имени и департаменту
func (r *Repository) GetByNomAndDepartement(ctx context.Context, nom, departement string) (*domain.Centre, error) {
	return r.getOne(ctx, squirrel.Eq{"nom": nom, "departement": departement, "active": true}, "GetByNomAndDepartement")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.Centre, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "nom", "departement", "geo_departement", "adresse", "lon", "lat", "active",
		"created_at", "updated_at",
	).
		From("centres").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var centre domain.Centre
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&centre.ID,
		&centre.Nom,
		&centre.Departement,
		&centre.GeoDepartement,
		&centre.Adresse,
		&centre.Lon,
		&centre.Lat,
		&centre.Active,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCentreNotFound
	}
	if err != nil {
		return nil, pqerrors.WrapDriver(ErrScanRow, method, "scan centre", err)
	}

	centre.CreatedAt = createdAt.Time
	centre.UpdatedAt = updatedAt.Time

	return &centre, nil
}
