package inspecteur

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

// Repository репозиторий для работы с инспекторами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория инспекторов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает инспектора по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Inspecteur, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByMatricule находит активного инспектора по матрикулу
// Используется при импорте мест и при админском создании места
func (r *Repository) GetByMatricule(ctx context.Context, matricule string) (*domain.Inspecteur, error) {
	return r.getOne(ctx, squirrel.Eq{"matricule": matricule, "active": true}, "GetByMatricule")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.Inspecteur, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "nom", "prenom", "matricule", "email", "departement", "active",
		"created_at", "updated_at",
	).
		From("inspecteurs").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var inspecteur domain.Inspecteur
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&inspecteur.ID,
		&inspecteur.Nom,
		&inspecteur.Prenom,
		&inspecteur.Matricule,
		&inspecteur.Email,
		&inspecteur.Departement,
		&inspecteur.Active,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrInspecteurNotFound
	}
	if err != nil {
		return nil, pqerrors.WrapDriver(ErrScanRow, method, "scan inspecteur", err)
	}

	inspecteur.CreatedAt = createdAt.Time
	inspecteur.UpdatedAt = updatedAt.Time

	return &inspecteur, nil
}
