package update_status

import (
	"context"

	"github.com/smilehub/clinic-booking/internal/domain"
	updateStatus "github.com/smilehub/clinic-booking/internal/usecase/update_status"
)

type UpdateStatusUseCase interface {
	Execute(ctx context.Context, req *updateStatus.Request) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
