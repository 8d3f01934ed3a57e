package appointments

import (
	"context"
	"time"

	"github.com/smilehub/clinic-booking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context) ([]*domain.Appointment, error)
	ListWithQuery(ctx context.Context, q domain.AppointmentsQuery) ([]*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// EventPublisher публикует изменения в ленту событий
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

// Now возвращает текущее время
func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
