package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehub/clinic-booking/internal/domain"
	"github.com/smilehub/clinic-booking/pkg/metrics"
	"github.com/smilehub/clinic-booking/pkg/ptr"
)

type sentEmail struct {
	to, subject, html string
	ctxErr            error
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (f *fakeNotifier) Send(ctx context.Context, to, subject, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, html: html, ctxErr: ctx.Err()})
	return f.err
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(Branding{
		Name:       "Smile Hub Dental Clinic",
		Address:    "Hokandara Road, Athurugiriya",
		BookingURL: "https://smilehub.lk/#appointment",
	})
	require.NoError(t, err)
	r.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return r
}

func appointment(status domain.Status) *domain.Appointment {
	return &domain.Appointment{
		ID:       "appt-1",
		FullName: "Nimal Perera",
		Email:    "nimal@example.com",
		Date:     "2025-06-02",
		Time:     "09:30 AM",
		Status:   status,
	}
}

func TestRenderer_Cancellation(t *testing.T) {
	email, err := newRenderer(t).Cancellation("nimal@example.com", CancellationData{
		Name:   "Nimal <b>Perera</b>",
		Date:   "2025-06-02",
		Time:   "09:30 AM",
		Reason: "Doctor unavailable",
	})

	require.NoError(t, err)
	assert.Equal(t, "Appointment Cancelled", email.Subject)
	assert.Contains(t, email.HTML, "Monday, 2 June 2025")
	assert.Contains(t, email.HTML, "Doctor unavailable")
	assert.Contains(t, email.HTML, "Nimal &lt;b&gt;Perera&lt;/b&gt;")
	assert.Contains(t, email.HTML, "&copy; 2025 Smile Hub Dental Clinic")
	assert.Contains(t, email.HTML, DefaultBrandColor)
}

func TestRenderer_Confirmation(t *testing.T) {
	email, err := newRenderer(t).Confirmation("nimal@example.com", ConfirmationData{
		Name: "Nimal Perera",
		Date: "not-a-date",
		Time: "02:00 PM",
	})

	require.NoError(t, err)
	assert.Equal(t, "Appointment Confirmed!", email.Subject)
	assert.Contains(t, email.HTML, "not-a-date")
	assert.Contains(t, email.HTML, "02:00 PM")
}

func TestDispatcher_CancellationSendsOnceWithReason(t *testing.T) {
	notifier := &fakeNotifier{}
	d := NewDispatcher(notifier, newRenderer(t), metrics.New("notification-test"), time.Second)

	a := appointment(domain.StatusCancelled)
	a.CancellationReason = ptr.Ptr("Doctor unavailable")

	require.NoError(t, d.NotifyStatusChange(context.Background(), a))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "nimal@example.com", notifier.sent[0].to)
	assert.Equal(t, "Appointment Cancelled", notifier.sent[0].subject)
	assert.Contains(t, notifier.sent[0].html, "Doctor unavailable")
}

func TestDispatcher_NoEmailForCompletedOrMissingAddress(t *testing.T) {
	notifier := &fakeNotifier{}
	d := NewDispatcher(notifier, newRenderer(t), metrics.New("notification-test"), time.Second)

	require.NoError(t, d.NotifyStatusChange(context.Background(), appointment(domain.StatusCompleted)))
	require.NoError(t, d.NotifyStatusChange(context.Background(), appointment(domain.StatusPending)))

	noEmail := appointment(domain.StatusConfirmed)
	noEmail.Email = ""
	require.NoError(t, d.NotifyStatusChange(context.Background(), noEmail))

	assert.Empty(t, notifier.sent)
}

func TestDispatcher_FailureIsDeliveryError(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	d := NewDispatcher(notifier, newRenderer(t), metrics.New("notification-test"), time.Second)

	err := d.NotifyStatusChange(context.Background(), appointment(domain.StatusConfirmed))

	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestDispatcher_DetachedFromCallerCancellation(t *testing.T) {
	notifier := &fakeNotifier{}
	d := NewDispatcher(notifier, newRenderer(t), metrics.New("notification-test"), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, d.NotifyStatusChange(ctx, appointment(domain.StatusConfirmed)))
	require.Len(t, notifier.sent, 1)
	assert.NoError(t, notifier.sent[0].ctxErr)
}
