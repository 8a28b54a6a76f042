package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TableService/internal/domain"
	"github.com/m04kA/SMC-TableService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableService/pkg/psqlbuilder"
)

const (
	tableReservations = "reservations r"
	joinClients       = "clients c ON c.id = r.client_id"
	lockRows          = "FOR UPDATE OF r"
)

var columns = []string{
	"r.id",
	"r.client_id",
	"c.name",
	"r.table_id",
	"r.reservation_date",
	"r.start_time",
	"r.duration_minutes",
	"r.guests",
	"r.status",
	"r.created_at",
	"r.updated_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование.
// Если в контексте есть транзакция, запрос выполняется в ней.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"client_id",
			"table_id",
			"reservation_date",
			"start_time",
			"duration_minutes",
			"guests",
			"status",
		).
		Values(
			res.ClientID,
			res.TableID,
			res.Date,
			res.StartTime,
			res.DurationMinutes,
			res.Guests,
			res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID.
// В транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableReservations).
		Join(joinClients).
		Where(squirrel.Eq{"r.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix(lockRows)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// List получает бронирования по фильтру, упорядоченные по дате и времени начала.
// В транзакции найденные строки блокируются, чтобы проверка пересечений и запись были атомарны.
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableReservations).
		Join(joinClients).
		OrderBy("r.reservation_date ASC", "r.start_time ASC", "r.id ASC")

	if filter.TableID != nil {
		builder = builder.Where(squirrel.Eq{"r.table_id": *filter.TableID})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"r.reservation_date": domain.DateOnly(*filter.Date)})
	}
	if len(filter.Statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"r.status": statusStrings(filter.Statuses)})
	}
	if filter.ExcludeID != nil {
		builder = builder.Where(squirrel.NotEq{"r.id": *filter.ExcludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix(lockRows)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListByDate получает все бронирования на дату (любой статус)
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	return r.List(ctx, domain.ReservationsFilter{Date: &date})
}

// Update перезаписывает редактируемые поля бронирования
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("table_id", res.TableID).
		Set("reservation_date", res.Date).
		Set("start_time", res.StartTime).
		Set("duration_minutes", res.DurationMinutes).
		Set("guests", res.Guests).
		Set("status", res.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Update", query, args)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

// HasLiveReservations проверяет, есть ли у стола confirmed/active бронирования (кроме excludeID)
func (r *Repository) HasLiveReservations(ctx context.Context, tableID int64, excludeID *int64) (bool, error) {
	builder := psqlbuilder.Select("1").
		From("reservations").
		Where(squirrel.Eq{"table_id": tableID}).
		Where(squirrel.Eq{"status": statusStrings(domain.LiveStatuses)})

	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeID})
	}

	return r.exists(ctx, "HasLiveReservations", builder)
}

// HasUpcomingReservations проверяет, есть ли у стола неотмененные бронирования начиная с fromDate
func (r *Repository) HasUpcomingReservations(ctx context.Context, tableID int64, fromDate time.Time) (bool, error) {
	builder := psqlbuilder.Select("1").
		From("reservations").
		Where(squirrel.Eq{"table_id": tableID}).
		Where(squirrel.GtOrEq{"reservation_date": domain.DateOnly(fromDate)}).
		Where(squirrel.NotEq{"status": string(domain.ReservationCancelled)})

	return r.exists(ctx, "HasUpcomingReservations", builder)
}

func (r *Repository) exists(ctx context.Context, op string, inner squirrel.SelectBuilder) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := inner.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build exists query: %v", ErrBuildQuery, op, err)
	}

	var found bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&found); err != nil {
		return false, fmt.Errorf("%w: %s - scan exists: %v", ErrScanRow, op, err)
	}

	return found, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.ClientID,
		&res.ClientName,
		&res.TableID,
		&res.Date,
		&res.StartTime,
		&res.DurationMinutes,
		&res.Guests,
		&res.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Date = domain.DateOnly(res.Date)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
