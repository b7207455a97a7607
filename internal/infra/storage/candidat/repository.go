package candidat

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mlegeay/examslots/internal/domain"
	"github.com/mlegeay/examslots/pkg/dbmetrics"
	"github.com/mlegeay/examslots/pkg/pqerrors"
	"github.com/mlegeay/examslots/pkg/psqlbuilder"
)

// Repository репозиторий для работы с кандидатами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория кандидатов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает кандидата по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Candidat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "nom_naissance", "prenom", "email", "code_neph", "departement",
		"vip", "vip_expires_at", "created_at", "updated_at",
	).
		From("candidats").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanCandidat(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// UpdateDepartement обновляет департамент кандидата
// Вызывается при бронировании места в центре из другого департамента
func (r *Repository) UpdateDepartement(ctx context.Context, id int64, departement string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("candidats").
		Set("departement", departement).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateDepartement - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateDepartement")
}

// SetVIP выставляет VIP-приоритет кандидата до указанной даты
func (r *Repository) SetVIP(ctx context.Context, id int64, until time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("candidats").
		Set("vip", true).
		Set("vip_expires_at", until).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetVIP - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetVIP")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return pqerrors.WrapDriver(ErrExecQuery, method, "execute", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrCandidatNotFound
	}
	return nil
}

func (r *Repository) scanCandidat(row *sql.Row, method string) (*domain.Candidat, error) {
	var candidat domain.Candidat
	var vipExpiresAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&candidat.ID,
		&candidat.NomNaissance,
		&candidat.Prenom,
		&candidat.Email,
		&candidat.CodeNeph,
		&candidat.Departement,
		&candidat.VIP,
		&vipExpiresAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCandidatNotFound
	}
	if err != nil {
		return nil, pqerrors.WrapDriver(ErrScanRow, method, "scan candidat", err)
	}

	if vipExpiresAt.Valid {
		candidat.VIPExpiresAt = &vipExpiresAt.Time
	}
	candidat.CreatedAt = createdAt.Time
	candidat.UpdatedAt = updatedAt.Time

	return &candidat, nil
}
