package middleware

import (
	"time"

	"github.com/smilehub/clinic-booking/internal/auth"
)

// Authorizer проверяет токен и права оператора
type Authorizer interface {
	Authorize(token string) (*auth.Identity, error)
}

// MetricsCollector интерфейс сбора HTTP метрик
type MetricsCollector interface {
	ObserveHTTPRequest(method, route string, code int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
