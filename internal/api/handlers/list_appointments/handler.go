package list_appointments

import (
	"errors"
	"net/http"

	"github.com/smilehub/clinic-booking/internal/api/handlers"
	"github.com/smilehub/clinic-booking/internal/service/appointments"
	"github.com/smilehub/clinic-booking/internal/service/appointments/models"
)

const msgInvalidFilter = "invalid filter: status must be pending, confirmed, cancelled, completed or all; sort must be newest, oldest or schedule"

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

// Handle GET /appointments
// Query params: status, q, sort (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListRequest{
		Query: query.Get("q"),
		Sort:  query.Get("sort"),
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Appointments)
}
