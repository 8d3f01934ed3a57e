package create_appointment

import (
	"context"
	"time"

	"github.com/smilehub/clinic-booking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	ListWithQuery(ctx context.Context, q domain.AppointmentsQuery) ([]*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправляет письмо, соответствующее статусу записи
type Notifier interface {
	NotifyStatusChange(ctx context.Context, appt *domain.Appointment) error
}

// EventPublisher публикует изменения в ленту событий
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
}

type Metrics interface {
	IncAppointmentCreated(source string)
	IncSlotConflict()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
