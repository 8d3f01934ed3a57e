package apptclient

import "context"

// StatusUpdater удаленная смена статуса, реализуется Client
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id, status string, reason *string) (*Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
