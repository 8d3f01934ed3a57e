package appointments

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehub/clinic-booking/internal/domain"
	appointmentRepo "github.com/smilehub/clinic-booking/internal/infra/storage/appointment"
	"github.com/smilehub/clinic-booking/internal/service/appointments/models"
	"github.com/smilehub/clinic-booking/pkg/logger"
	"github.com/smilehub/clinic-booking/pkg/ptr"
)

type fakeTimeProvider struct{ now time.Time }

func (f fakeTimeProvider) Now() time.Time { return f.now }

type memoryRepo struct {
	items []*domain.Appointment
	err   error
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, a := range r.items {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: GetByID - id=%s", appointmentRepo.ErrAppointmentNotFound, id)
}

func (r *memoryRepo) List(_ context.Context) ([]*domain.Appointment, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]*domain.Appointment(nil), r.items...), nil
}

func (r *memoryRepo) ListWithQuery(_ context.Context, q domain.AppointmentsQuery) ([]*domain.Appointment, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.Appointment, 0)
	for _, a := range r.items {
		if q.DateFrom != nil && a.Date < *q.DateFrom || q.DateTo != nil && a.Date > *q.DateTo {
			continue
		}
		if len(q.Statuses) > 0 && !a.Status.IsBlocking() {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	for i, a := range r.items {
		if a.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: Delete - id=%s", appointmentRepo.ErrAppointmentNotFound, id)
}

type fakePublisher struct {
	events []domain.ChangeEvent
}

func (f *fakePublisher) Publish(_ context.Context, e domain.ChangeEvent) error {
	f.events = append(f.events, e)
	return nil
}

func newTestService(t *testing.T, items []*domain.Appointment) (*Service, *memoryRepo, *fakePublisher) {
	t.Helper()
	colombo, err := time.LoadLocation("Asia/Colombo")
	require.NoError(t, err)

	repo := &memoryRepo{items: items}
	pub := &fakePublisher{}
	svc := NewService(repo, pub, domain.ClinicSchedule{Slots: domain.DefaultTimeSlots, Location: colombo}, logger.NewNop())
	// 2025-06-03 01:00 в Коломбо
	svc.timeProvider = fakeTimeProvider{now: time.Date(2025, 6, 2, 19, 30, 0, 0, time.UTC)}
	return svc, repo, pub
}

func TestService_List(t *testing.T) {
	svc, _, _ := newTestService(t, sample())

	resp, err := svc.List(context.Background(), &models.ListRequest{Status: ptr.Ptr("all"), Query: "perera"})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "a4", resp.Appointments[0].ID)
	assert.Equal(t, "a1", resp.Appointments[1].ID)
}

func TestService_ListInvalidFilter(t *testing.T) {
	svc, _, _ := newTestService(t, sample())

	_, err := svc.List(context.Background(), &models.ListRequest{Status: ptr.Ptr("archived")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListRequest{Sort: "random"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetByID(t *testing.T) {
	svc, _, _ := newTestService(t, sample())

	resp, err := svc.GetByID(context.Background(), "a2")
	require.NoError(t, err)
	assert.Equal(t, "Kamala Silva", resp.FullName)
	assert.Equal(t, "confirmed", resp.Status)

	_, err = svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_DeleteTwice(t *testing.T) {
	svc, repo, pub := newTestService(t, sample())

	require.NoError(t, svc.Delete(context.Background(), "a1"))
	assert.Len(t, repo.items, 3)
	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.EventDeleted, pub.events[0].Type)
	assert.Equal(t, "a1", pub.events[0].ID)

	err := svc.Delete(context.Background(), "a1")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.Len(t, pub.events, 1)
}

func TestService_DeleteUnknownAndEmpty(t *testing.T) {
	svc, _, _ := newTestService(t, sample())

	assert.ErrorIs(t, svc.Delete(context.Background(), "nope"), ErrAppointmentNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), " "), ErrInvalidInput)
}

func TestService_StatsUsesClinicToday(t *testing.T) {
	svc, _, _ := newTestService(t, sample())

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &models.StatsResponse{
		TotalAppointments:     4,
		PendingAppointments:   1,
		ConfirmedAppointments: 1,
		TodayAppointments:     2,
	}, stats)
}

func TestService_CalendarDefaultsToCurrentMonth(t *testing.T) {
	svc, _, _ := newTestService(t, sample())

	cal, err := svc.Calendar(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "2025-06", cal.Month)
	assert.Len(t, cal.Days, 30)
	assert.Equal(t, models.CalendarDayResponse{Date: "2025-06-03", Confirmed: 1, Pending: 1}, cal.Days[2])

	_, err = svc.Calendar(context.Background(), "2025-13")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_DaySchedule(t *testing.T) {
	svc, _, _ := newTestService(t, sample())

	day, err := svc.DaySchedule(context.Background(), "2025-06-03")

	require.NoError(t, err)
	require.Len(t, day.Appointments, 2)
	assert.Equal(t, "09:00 AM", day.Appointments[0].Time)
	assert.Equal(t, "02:00 PM", day.Appointments[1].Time)

	_, err = svc.DaySchedule(context.Background(), "tomorrow")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_RepositoryFailureIsInternal(t *testing.T) {
	svc, repo, _ := newTestService(t, sample())
	repo.err = errors.New("connection refused")

	_, err := svc.List(context.Background(), &models.ListRequest{})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Stats(context.Background())
	assert.ErrorIs(t, err, ErrInternal)

	assert.ErrorIs(t, svc.Delete(context.Background(), "a1"), ErrInternal)
}
