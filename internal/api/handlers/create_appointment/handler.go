package create_appointment

import (
	"errors"
	"net/http"

	"github.com/smilehub/clinic-booking/internal/api/handlers"
	"github.com/smilehub/clinic-booking/internal/service/appointments/models"
	createAppointment "github.com/smilehub/clinic-booking/internal/usecase/create_appointment"
	"github.com/smilehub/clinic-booking/internal/validation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSlotConflict       = "this time slot is already booked, please choose another one"
	msgBooked             = "Appointment booked successfully!"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	manual  bool
	logger  Logger
}

// NewHandler создает handler онлайн записи пациентом
func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// NewManualHandler создает handler записи, которую вносит оператор (сразу confirmed)
func NewManualHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		manual:  true,
		logger:  logger,
	}
}

// Handle POST /appointments, POST /admin/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST %s - Invalid request body: %v", r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(h.manual))
	if err != nil {
		var vErr *validation.Error
		switch {
		case errors.As(err, &vErr):
			h.logger.Warn("POST %s - Validation failed: %v", r.URL.Path, vErr)
			handlers.RespondValidation(w, vErr)

		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST %s - Slot conflict: date=%s, time=%s", r.URL.Path, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotConflict)

		default:
			h.logger.Error("POST %s - Failed to create appointment: date=%s, time=%s, error=%v",
				r.URL.Path, req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST %s - Appointment created: id=%s, status=%s", r.URL.Path, result.ID, result.Status)
	handlers.RespondMessage(w, http.StatusOK, msgBooked, models.FromDomainAppointment(result))
}
