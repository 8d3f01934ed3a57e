package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/smilehub/clinic-booking/internal/domain"
	"github.com/smilehub/clinic-booking/pkg/dbmetrics"
	"github.com/smilehub/clinic-booking/pkg/psqlbuilder"
)

const (
	tableName = "appointments"

	pqUniqueViolation = "23505"
)

var selectColumns = []string{
	"id",
	"full_name",
	"email",
	"phone",
	"age",
	"service",
	"to_char(appointment_date, 'YYYY-MM-DD')",
	"slot_time",
	"notes",
	"status",
	"source",
	"cancellation_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей на прием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись. ID и метки времени назначает БД,
// created_at и updated_at совпадают. Если слот уже занят активной записью,
// уникальный индекс возвращает ErrSlotTaken
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"full_name",
			"email",
			"phone",
			"age",
			"service",
			"appointment_date",
			"slot_time",
			"notes",
			"status",
			"source",
		).
		Values(
			appt.FullName,
			appt.Email,
			appt.Phone,
			appt.Age,
			appt.Service,
			appt.Date,
			appt.Time,
			appt.Notes,
			appt.Status,
			appt.Source,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, mapExecError("Create - execute insert", err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID. Некорректный UUID считается отсутствующей записью
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrAppointmentNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// List возвращает все записи, сначала новые (created_at DESC)
func (r *Repository) List(ctx context.Context) ([]*domain.Appointment, error) {
	return r.ListWithQuery(ctx, domain.AppointmentsQuery{})
}

// ListWithQuery получает записи с фильтрацией по периоду, слоту и статусам.
// Внутри транзакции запрос одного слота блокирует найденные строки (FOR UPDATE),
// это нужно для проверки занятости слота при создании записи
func (r *Repository) ListWithQuery(ctx context.Context, q domain.AppointmentsQuery) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).From(tableName)

	if q.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *q.DateFrom})
	}
	if q.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *q.DateTo})
	}
	if q.Time != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_time": *q.Time})
	}
	if len(q.Statuses) > 0 {
		statuses := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	selectBuilder = selectBuilder.OrderBy("created_at DESC", "id")

	if dbmetrics.IsInTransaction(ctx) && q.IsSingleSlot() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithQuery - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapExecError("ListWithQuery - execute query", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStatus атомарно меняет статус, если текущий статус равен from.
// Возвращает ErrStatusChanged, если строка не обновилась
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.Status, reason *string) (*domain.Appointment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrAppointmentNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", to).
		Set("cancellation_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		Suffix("RETURNING " + strings.Join(selectColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusChanged
	}
	if err != nil {
		return nil, mapExecError("UpdateStatus - execute update", err)
	}

	return appt, nil
}

// Delete удаляет запись без возможности восстановления
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrAppointmentNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapExecError("Delete - execute delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// mapExecError переводит ошибки PostgreSQL в ошибки репозитория.
// Исходная ошибка остается в цепочке, чтобы txmanager мог распознать конфликт сериализации
func mapExecError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return fmt.Errorf("%w: %s: %s", ErrSlotTaken, op, pqErr.Constraint)
	}
	return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.FullName,
		&appt.Email,
		&appt.Phone,
		&appt.Age,
		&appt.Service,
		&appt.Date,
		&appt.Time,
		&appt.Notes,
		&appt.Status,
		&appt.Source,
		&appt.CancellationReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan appointment: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
