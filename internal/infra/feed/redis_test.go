package feed

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehub/clinic-booking/internal/domain"
	"github.com/smilehub/clinic-booking/pkg/logger"
	"github.com/smilehub/clinic-booking/pkg/metrics"
)

const testChannel = "clinic:appointments:test"

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestPublishSubscribe(t *testing.T) {
	_, client := newClient(t)
	log := logger.NewNop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := NewSubscriber(client, testChannel, log).Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	pub := NewPublisher(client, testChannel, metrics.New("feed-test"), log)
	reason := "Doctor unavailable"
	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	err = pub.Publish(ctx, domain.ChangeEvent{
		Type: domain.EventUpdated,
		ID:   "appt-1",
		At:   at,
		Appointment: &domain.Appointment{
			ID:                 "appt-1",
			FullName:           "Nimal Perera",
			Date:               "2025-06-02",
			Time:               "09:30 AM",
			Status:             domain.StatusCancelled,
			Source:             domain.SourceOnline,
			CancellationReason: &reason,
		},
	})
	require.NoError(t, err)

	select {
	case event := <-sub.Events():
		assert.Equal(t, domain.EventUpdated, event.Type)
		assert.Equal(t, "appt-1", event.ID)
		assert.True(t, at.Equal(event.At))
		require.NotNil(t, event.Appointment)
		assert.Equal(t, domain.StatusCancelled, event.Appointment.Status)
		require.NotNil(t, event.Appointment.CancellationReason)
		assert.Equal(t, reason, *event.Appointment.CancellationReason)
	case <-ctx.Done():
		t.Fatal("event was not delivered")
	}
}

func TestSubscription_CloseEndsEvents(t *testing.T) {
	_, client := newClient(t)

	sub, err := NewSubscriber(client, testChannel, logger.NewNop()).Subscribe(context.Background())
	require.NoError(t, err)
	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel was not closed")
	}
}

func TestPublish_RedisDown(t *testing.T) {
	mr, client := newClient(t)
	mr.Close()

	err := NewPublisher(client, testChannel, metrics.New("feed-test"), logger.NewNop()).
		Publish(context.Background(), domain.ChangeEvent{Type: domain.EventDeleted, ID: "x"})

	assert.ErrorIs(t, err, ErrPublish)
}
