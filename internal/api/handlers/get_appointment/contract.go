package get_appointment

import (
	"context"

	"github.com/smilehub/clinic-booking/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
