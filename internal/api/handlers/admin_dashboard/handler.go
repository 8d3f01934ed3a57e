package admin_dashboard

import (
	"errors"
	"net/http"

	"github.com/smilehub/clinic-booking/internal/api/handlers"
	"github.com/smilehub/clinic-booking/internal/service/appointments"
)

const (
	msgInvalidMonth = "invalid month, expected YYYY-MM"
	msgMissingDate  = "date is required"
	msgInvalidDate  = "invalid date, expected YYYY-MM-DD"
)

// Handler операторский дашборд: счетчики, календарь месяца и расписание дня
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

// HandleStats GET /admin/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/stats - Failed to compute stats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCalendar GET /admin/calendar?month=YYYY-MM (по умолчанию текущий месяц)
func (h *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	result, err := h.service.Calendar(r.Context(), month)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/calendar - Invalid month=%q", month)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /admin/calendar - Failed to build calendar: month=%s, error=%v", month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleSchedule GET /admin/schedule?date=YYYY-MM-DD
func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /admin/schedule - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.service.DaySchedule(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/schedule - Invalid date=%q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /admin/schedule - Failed to get schedule: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
