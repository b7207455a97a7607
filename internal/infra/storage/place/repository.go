package place

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mlegeay/examslots/internal/domain"
	"github.com/mlegeay/examslots/pkg/dbmetrics"
	"github.com/mlegeay/examslots/pkg/pqerrors"
	"github.com/mlegeay/examslots/pkg/psqlbuilder"
)

// Repository репозиторий для работы с местами экзаменов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое свободное место
//
// Уникальность (inspecteur_id, date) обеспечивается индексом БД: нарушение
// конвертируется в ErrDuplicatePlace. Перед вставкой проверяется, что
// инспектор в этот день не работает в другом центре (ErrInspecteurBusy).
// Проверка и вставка должны выполняться в одной сериализуемой транзакции.
func (r *Repository) Create(ctx context.Context, place *domain.Place) (*domain.Place, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	busy, err := r.inspecteurBusyElsewhere(ctx, executor, place.InspecteurID, place.CentreID, place.Date)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, ErrInspecteurBusy
	}

	query, args, err := psqlbuilder.Insert("places").
		Columns("inspecteur_id", "centre_id", "date", "status").
		Values(place.InspecteurID, place.CentreID, place.Date, domain.StatusFree).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&place.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if pqerrors.IsUniqueViolation(err) {
			return nil, ErrDuplicatePlace
		}
		return nil, pqerrors.WrapDriver(ErrExecQuery, "Create", "execute insert", err)
	}

	place.Status = domain.StatusFree
	place.CreatedAt = createdAt.Time
	place.UpdatedAt = updatedAt.Time

	return place, nil
}

// GetByID получает место по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Place, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id", "inspecteur_id", "centre_id", "date", "candidat_id", "status", "created_at", "updated_at",
	).
		From("places").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку: админские операции (move, force
	// release) читают и затем изменяют то же место
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanPlace(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// FindBookedByCandidat находит забронированное место кандидата
// Место в статусе held не учитывается: оно скрыто на время переноса
func (r *Repository) FindBookedByCandidat(ctx context.Context, candidatID int64) (*domain.Place, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "inspecteur_id", "centre_id", "date", "candidat_id", "status", "created_at", "updated_at",
	).
		From("places").
		Where(squirrel.Eq{"candidat_id": candidatID, "status": domain.StatusBooked}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindBookedByCandidat - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanPlace(executor.QueryRowContext(ctx, query, args...), "FindBookedByCandidat")
}

// ClaimFree атомарно занимает одно свободное место на центр и дату
//
// Выбор конкретного места не гарантирует порядок: места одного центра на одну
// дату взаимозаменяемы. FOR UPDATE SKIP LOCKED позволяет конкурирующим
// бронированиям занять разные места, не дожидаясь друг друга.
func (r *Repository) ClaimFree(ctx context.Context, centreID int64, date time.Time, candidatID int64) (*domain.Place, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("places").
		Set("candidat_id", candidatID).
		Set("status", domain.StatusBooked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Expr(
			`id = (SELECT id FROM places
			       WHERE centre_id = ? AND date = ? AND status = ?
			       ORDER BY id
			       LIMIT 1
			       FOR UPDATE SKIP LOCKED)`,
			centreID, date, domain.StatusFree,
		)).
		Suffix("RETURNING id, inspecteur_id, centre_id, date, candidat_id, status, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ClaimFree - build update query: %v", ErrBuildQuery, err)
	}

	place, err := r.scanPlace(executor.QueryRowContext(ctx, query, args...), "ClaimFree")
	if errors.Is(err, ErrPlaceNotFound) {
		return nil, ErrNoFreePlace
	}
	return place, err
}

// SetStatus переводит место из ожидаемого статуса в новый
// Возвращает ErrStatusConflict, если место уже не в статусе from
func (r *Repository) SetStatus(ctx context.Context, id int64, from, to domain.PlaceStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("places").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetStatus", ErrStatusConflict)
}

// AssignCandidat закрепляет кандидата за свободным местом (админский перенос)
// Возвращает ErrPlaceAlreadyBooked, если место уже занято или удерживается
func (r *Repository) AssignCandidat(ctx context.Context, id int64, candidatID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("places").
		Set("candidat_id", candidatID).
		Set("status", domain.StatusBooked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusFree}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AssignCandidat - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "AssignCandidat", ErrPlaceAlreadyBooked)
}

// Unbind снимает бронь с места: кандидат очищается, статус возвращается в free
func (r *Repository) Unbind(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("places").
		Set("candidat_id", nil).
		Set("status", domain.StatusFree).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Unbind - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Unbind", ErrPlaceNotFound)
}

// Delete физически удаляет место
// История брони живет в архиве кандидата, не в местах
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("places").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete", ErrPlaceNotFound)
}

// DeleteFree удаляет место только в статусе free
//
// Используется для уборки освобожденного места вне транзакции: между
// освобождением и уборкой место могло быть занято новой бронью, фильтр по
// статусу не дает удалить чужую бронь. Перезанятое место дает
// ErrPlaceNotFound.
func (r *Repository) DeleteFree(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("places").
		Where(squirrel.Eq{"id": id, "status": domain.StatusFree}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteFree - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "DeleteFree", ErrPlaceNotFound)
}

// ListAvailableDates возвращает отсортированные уникальные даты, на которые у
// центра есть хотя бы одно свободное место в диапазоне [begin, end)
func (r *Repository) ListAvailableDates(ctx context.Context, centreID int64, begin, end time.Time, excludeCandidatID *int64) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("DISTINCT date").
		From("places").
		Where(squirrel.Eq{"centre_id": centreID, "status": domain.StatusFree}).
		Where(squirrel.GtOrEq{"date": begin}).
		Where(squirrel.Lt{"date": end}).
		OrderBy("date ASC")

	// Кандидату не предлагаем даты, на которые у него уже есть бронь,
	// в каком бы центре она ни была
	if excludeCandidatID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr(
			`date NOT IN (SELECT date FROM places WHERE candidat_id = ? AND status = ?)`,
			*excludeCandidatID, domain.StatusBooked,
		))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pqerrors.WrapDriver(ErrExecQuery, "ListAvailableDates", "execute query", err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("%w: ListAvailableDates - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailableDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// ExistsFreeAt проверяет наличие свободного места на центр и точную дату
func (r *Repository) ExistsFreeAt(ctx context.Context, centreID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("places").
		Where(squirrel.Eq{"centre_id": centreID, "date": date, "status": domain.StatusFree}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsFreeAt - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, pqerrors.WrapDriver(ErrScanRow, "ExistsFreeAt", "scan", err)
	}
	return true, nil
}

// inspecteurBusyElsewhere проверяет, что инспектор в этот календарный день
// не закреплен за другим центром
func (r *Repository) inspecteurBusyElsewhere(ctx context.Context, executor DBExecutor, inspecteurID, centreID int64, date time.Time) (bool, error) {
	dayStart := startOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("places").
		Where(squirrel.Eq{"inspecteur_id": inspecteurID}).
		Where(squirrel.GtOrEq{"date": dayStart}).
		Where(squirrel.Lt{"date": dayEnd}).
		Where(squirrel.NotEq{"centre_id": centreID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: inspecteurBusyElsewhere - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, pqerrors.WrapDriver(ErrScanRow, "inspecteurBusyElsewhere", "scan", err)
	}
	return count > 0, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string, onZeroRows error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return pqerrors.WrapDriver(ErrExecQuery, method, "execute", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return onZeroRows
	}
	return nil
}

func (r *Repository) scanPlace(row *sql.Row, method string) (*domain.Place, error) {
	var place domain.Place
	var candidatID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&place.ID,
		&place.InspecteurID,
		&place.CentreID,
		&place.Date,
		&candidatID,
		&place.Status,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPlaceNotFound
	}
	if err != nil {
		return nil, pqerrors.WrapDriver(ErrScanRow, method, "scan place", err)
	}

	if candidatID.Valid {
		place.CandidatID = &candidatID.Int64
	}
	place.CreatedAt = createdAt.Time
	place.UpdatedAt = updatedAt.Time

	return &place, nil
}

func startOfDay(date time.Time) time.Time {
	d := date.In(domain.ParisLocation())
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, domain.ParisLocation())
}
