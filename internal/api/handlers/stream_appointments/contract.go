package stream_appointments

import (
	"context"

	"github.com/smilehub/clinic-booking/internal/infra/feed"
	"github.com/smilehub/clinic-booking/internal/service/appointments/models"
)

type AppointmentsService interface {
	Snapshot(ctx context.Context) ([]models.AppointmentResponse, error)
}

// FeedSubscriber источник событий изменений записей
type FeedSubscriber interface {
	Subscribe(ctx context.Context) (*feed.Subscription, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
