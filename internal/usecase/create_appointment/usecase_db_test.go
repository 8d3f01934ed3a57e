package create_appointment

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehub/clinic-booking/internal/domain"
	appointmentRepo "github.com/smilehub/clinic-booking/internal/infra/storage/appointment"
	"github.com/smilehub/clinic-booking/pkg/dbmetrics"
	"github.com/smilehub/clinic-booking/pkg/logger"
	"github.com/smilehub/clinic-booking/pkg/metrics"
	"github.com/smilehub/clinic-booking/pkg/txmanager"
)

var appointmentColumns = []string{
	"id", "full_name", "email", "phone", "age", "service", "appointment_date", "slot_time",
	"notes", "status", "source", "cancellation_reason", "created_at", "updated_at",
}

var (
	selectSlotSQL = regexp.QuoteMeta("FROM appointments")
	insertSQL     = regexp.QuoteMeta("INSERT INTO appointments")
)

// newDBUseCase use case поверх настоящих репозитория и менеджера транзакций с sqlmock
func newDBUseCase(t *testing.T) (*UseCase, sqlmock.Sqlmock, *fakePublisher) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	colombo, err := time.LoadLocation("Asia/Colombo")
	require.NoError(t, err)

	wrapped := dbmetrics.Wrap(db, nil)
	publisher := &fakePublisher{}
	uc := NewUseCase(
		appointmentRepo.NewRepository(wrapped),
		txmanager.NewTransactionManager(wrapped, txmanager.WithMaxRetries(2)),
		&fakeNotifier{},
		publisher,
		metrics.New("create-db-test"),
		domain.ClinicSchedule{
			Slots:              domain.DefaultTimeSlots,
			Location:           colombo,
			ClosedWeekdays:     []time.Weekday{time.Sunday},
			AdvanceBookingDays: 90,
		},
		logger.NewNop(),
	)
	uc.timeProvider = fakeTimeProvider{now: fixedNow}
	return uc, mock, publisher
}

func TestExecute_SerializationRetryEndsInUniqueViolation(t *testing.T) {
	uc, mock, publisher := newDBUseCase(t)

	// первая попытка: конкурент еще не зафиксирован, Postgres прерывает транзакцию
	mock.ExpectBegin()
	mock.ExpectQuery(selectSlotSQL).WillReturnRows(sqlmock.NewRows(appointmentColumns))
	mock.ExpectQuery(insertSQL).WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()

	// повтор: вставка упирается в уникальный индекс активного слота
	mock.ExpectBegin()
	mock.ExpectQuery(selectSlotSQL).WillReturnRows(sqlmock.NewRows(appointmentColumns))
	mock.ExpectQuery(insertSQL).WillReturnError(&pq.Error{Code: "23505", Constraint: "appointments_active_slot_idx"})
	mock.ExpectRollback()

	result, err := uc.Execute(context.Background(), validRequest())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Empty(t, publisher.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_SerializationRetrySeesCommittedBooking(t *testing.T) {
	uc, mock, _ := newDBUseCase(t)
	ts := fixedNow

	mock.ExpectBegin()
	mock.ExpectQuery(selectSlotSQL).WillReturnRows(sqlmock.NewRows(appointmentColumns))
	mock.ExpectQuery(insertSQL).WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectQuery(selectSlotSQL).WillReturnRows(sqlmock.NewRows(appointmentColumns).AddRow(
		"5b0f1f4e-8c7a-4c55-9a0e-1f2a3b4c5d6e", "Kasun Silva", "kasun@example.com", "0719876543", "41",
		"General Consultation", "2025-06-03", "09:30 AM", nil, "pending", "online", nil, ts, ts,
	))
	mock.ExpectRollback()

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_SerializationRetrySucceeds(t *testing.T) {
	uc, mock, publisher := newDBUseCase(t)
	ts := fixedNow

	mock.ExpectBegin()
	mock.ExpectQuery(selectSlotSQL).WillReturnRows(sqlmock.NewRows(appointmentColumns))
	mock.ExpectQuery(insertSQL).WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectQuery(selectSlotSQL).WillReturnRows(sqlmock.NewRows(appointmentColumns))
	mock.ExpectQuery(insertSQL).WillReturnRows(
		sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("5b0f1f4e-8c7a-4c55-9a0e-1f2a3b4c5d6e", ts, ts))
	mock.ExpectCommit()

	result, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, result.Status)
	assert.Len(t, publisher.events, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
