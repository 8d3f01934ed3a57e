package update_status

import (
	"errors"
	"net/http"

	"github.com/smilehub/clinic-booking/internal/api/handlers"
	"github.com/smilehub/clinic-booking/internal/api/middleware"
	"github.com/smilehub/clinic-booking/internal/service/appointments/models"
	updateStatus "github.com/smilehub/clinic-booking/internal/usecase/update_status"
	"github.com/smilehub/clinic-booking/internal/validation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "appointment not found"
	msgInvalidTransition  = "status change is not allowed for this appointment"
	msgStatusChanged      = "appointment was changed by someone else, reload and try again"
	msgUpdated            = "Appointment updated"
)

type Handler struct {
	useCase UpdateStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var vErr *validation.Error
		switch {
		case errors.As(err, &vErr):
			h.logger.Warn("PUT /appointments - Validation failed: id=%s, error=%v", req.ID, vErr)
			handlers.RespondValidation(w, vErr)

		case errors.Is(err, updateStatus.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments - Appointment not found: id=%s", req.ID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateStatus.ErrInvalidTransition):
			h.logger.Warn("PUT /appointments - Invalid transition: id=%s, error=%v", req.ID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, updateStatus.ErrStatusChanged):
			h.logger.Warn("PUT /appointments - Concurrent change: id=%s", req.ID)
			handlers.RespondConflict(w, msgStatusChanged)

		default:
			h.logger.Error("PUT /appointments - Failed to update status: id=%s, error=%v", req.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments - Status updated: id=%s, status=%s, operator=%s",
		result.ID, result.Status, middleware.OperatorEmail(r.Context()))
	handlers.RespondMessage(w, http.StatusOK, msgUpdated, models.FromDomainAppointment(result))
}
