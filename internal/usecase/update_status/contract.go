package update_status

import (
	"context"

	"github.com/smilehub/clinic-booking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.Status, reason *string) (*domain.Appointment, error)
}

// Notifier отправляет письмо, соответствующее новому статусу
type Notifier interface {
	NotifyStatusChange(ctx context.Context, appt *domain.Appointment) error
}

// EventPublisher публикует изменения в ленту событий
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
}

type Metrics interface {
	IncStatusTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
