package admin_dashboard

import (
	"context"

	"github.com/smilehub/clinic-booking/internal/service/appointments/models"
)

type AppointmentsService interface {
	Stats(ctx context.Context) (*models.StatsResponse, error)
	Calendar(ctx context.Context, month string) (*models.CalendarResponse, error)
	DaySchedule(ctx context.Context, date string) (*models.DayScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
