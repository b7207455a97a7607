package archive

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/mlegeay/examslots/internal/domain"
	"github.com/mlegeay/examslots/pkg/dbmetrics"
	"github.com/mlegeay/examslots/pkg/psqlbuilder"
)

// Repository репозиторий архива бронирований
// Архив append-only: записи никогда не изменяются и не удаляются
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория архива
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись о событии брони в архив кандидата
func (r *Repository) Append(ctx context.Context, entry *domain.ArchiveEntry) (*domain.ArchiveEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("archive_entries").
		Columns(
			"id",
			"candidat_id",
			"nom_centre",
			"centre_departement",
			"inspecteur_matricule",
			"place_date",
			"reason",
			"by_admin",
			"actor_email",
		).
		Values(
			entry.ID,
			entry.CandidatID,
			entry.NomCentre,
			entry.CentreDepartement,
			entry.InspecteurMatricule,
			entry.PlaceDate,
			entry.Reason,
			entry.ByAdmin,
			entry.ActorEmail,
		).
		Suffix("RETURNING archived_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	var archivedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&archivedAt); err != nil {
		return nil, fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}
	entry.ArchivedAt = archivedAt.Time

	return entry, nil
}

// ListByCandidat возвращает историю брони кандидата, новые записи первыми
func (r *Repository) ListByCandidat(ctx context.Context, candidatID int64) ([]*domain.ArchiveEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"candidat_id",
		"nom_centre",
		"centre_departement",
		"inspecteur_matricule",
		"place_date",
		"reason",
		"by_admin",
		"actor_email",
		"archived_at",
	).
		From("archive_entries").
		Where(squirrel.Eq{"candidat_id": candidatID}).
		OrderBy("archived_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCandidat - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCandidat - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.ArchiveEntry, 0)
	for rows.Next() {
		var entry domain.ArchiveEntry
		var archivedAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.CandidatID,
			&entry.NomCentre,
			&entry.CentreDepartement,
			&entry.InspecteurMatricule,
			&entry.PlaceDate,
			&entry.Reason,
			&entry.ByAdmin,
			&entry.ActorEmail,
			&archivedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByCandidat - scan row: %v", ErrScanRow, err)
		}

		entry.ArchivedAt = archivedAt.Time
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCandidat - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
