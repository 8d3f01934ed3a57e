package get_booked_slots

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehub/clinic-booking/internal/domain"
	"github.com/smilehub/clinic-booking/internal/validation"
	"github.com/smilehub/clinic-booking/pkg/logger"
)

type fakeRepo struct {
	items []*domain.Appointment
	err   error
	last  domain.AppointmentsQuery
}

func (r *fakeRepo) ListWithQuery(_ context.Context, q domain.AppointmentsQuery) ([]*domain.Appointment, error) {
	r.last = q
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.Appointment, 0)
	for _, a := range r.items {
		if a.Date == *q.DateFrom && a.Status.IsBlocking() {
			out = append(out, a)
		}
	}
	return out, nil
}

func newUseCase(repo *fakeRepo) *UseCase {
	return NewUseCase(repo, domain.ClinicSchedule{Slots: domain.DefaultTimeSlots}, logger.NewNop())
}

func seeded() *fakeRepo {
	return &fakeRepo{items: []*domain.Appointment{
		{ID: "1", Date: "2025-06-02", Time: "02:00 PM", Status: domain.StatusConfirmed},
		{ID: "2", Date: "2025-06-02", Time: "09:30 AM", Status: domain.StatusPending},
		{ID: "3", Date: "2025-06-02", Time: "10:00 AM", Status: domain.StatusCancelled},
		{ID: "4", Date: "2025-06-03", Time: "09:30 AM", Status: domain.StatusConfirmed},
	}}
}

func TestExecute_ReportsBlockingSlotsInDayOrder(t *testing.T) {
	repo := seeded()

	resp, err := newUseCase(repo).Execute(context.Background(), &Request{Date: "2025-06-02"})

	require.NoError(t, err)
	assert.Equal(t, domain.BlockingStatuses, repo.last.Statuses)
	assert.Equal(t, []domain.BookedSlot{
		{Date: "2025-06-02", Time: "09:30 AM", Status: domain.StatusPending},
		{Date: "2025-06-02", Time: "02:00 PM", Status: domain.StatusConfirmed},
	}, resp.Booked)
	assert.False(t, resp.Booked[0].IsBooked())
	assert.True(t, resp.Booked[1].IsBooked())
	assert.Nil(t, resp.Availability)
}

func TestExecute_OtherDateIsEmpty(t *testing.T) {
	resp, err := newUseCase(seeded()).Execute(context.Background(), &Request{Date: "2025-06-04"})

	require.NoError(t, err)
	assert.NotNil(t, resp.Booked)
	assert.Empty(t, resp.Booked)
}

func TestExecute_AvailableView(t *testing.T) {
	resp, err := newUseCase(seeded()).Execute(context.Background(), &Request{Date: "2025-06-02", View: ViewAvailable})

	require.NoError(t, err)
	require.Len(t, resp.Availability, len(domain.DefaultTimeSlots))
	assert.True(t, resp.Availability[0].Selectable)
	assert.Nil(t, resp.Availability[0].Status)
	assert.False(t, resp.Availability[1].Selectable)
	assert.Equal(t, domain.StatusPending, *resp.Availability[1].Status)
	assert.True(t, resp.Availability[2].Selectable, "cancelled appointment frees the slot")
}

func TestExecute_Validation(t *testing.T) {
	for _, req := range []*Request{
		{Date: ""},
		{Date: "2025/06/02"},
		{Date: "2025-06-02", View: "all"},
	} {
		_, err := newUseCase(seeded()).Execute(context.Background(), req)
		assert.ErrorIs(t, err, validation.ErrValidation, "%+v", req)
	}
}

func TestExecute_StoreFailure(t *testing.T) {
	_, err := newUseCase(&fakeRepo{err: errors.New("db down")}).Execute(context.Background(), &Request{Date: "2025-06-02"})
	assert.ErrorIs(t, err, ErrInternal)
}
