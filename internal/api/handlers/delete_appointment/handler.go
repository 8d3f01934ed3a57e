package delete_appointment

import (
	"errors"
	"net/http"
	"strings"

	"github.com/smilehub/clinic-booking/internal/api/handlers"
	"github.com/smilehub/clinic-booking/internal/api/middleware"
	"github.com/smilehub/clinic-booking/internal/service/appointments"
)

const (
	msgMissingID = "ID required"
	msgNotFound  = "appointment not found"
	msgDeleted   = "Deleted successfully"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /appointments?id=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		h.logger.Warn("DELETE /appointments - Missing id")
		handlers.RespondBadRequest(w, msgMissingID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments - Appointment not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingID)

		default:
			h.logger.Error("DELETE /appointments - Failed to delete appointment: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments - Appointment deleted: id=%s, operator=%s",
		id, middleware.OperatorEmail(r.Context()))
	handlers.RespondMessage(w, http.StatusOK, msgDeleted, nil)
}
