package get_booked_slots

import (
	"errors"
	"net/http"

	"github.com/smilehub/clinic-booking/internal/api/handlers"
	getBookedSlots "github.com/smilehub/clinic-booking/internal/usecase/get_booked_slots"
	"github.com/smilehub/clinic-booking/internal/validation"
)

type Handler struct {
	useCase GetBookedSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetBookedSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /slots
// Query params: date (required, YYYY-MM-DD), view (booked | available, по умолчанию booked)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &getBookedSlots.Request{
		Date: query.Get("date"),
		View: getBookedSlots.View(query.Get("view")),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		var vErr *validation.Error
		switch {
		case errors.As(err, &vErr):
			h.logger.Warn("GET /slots - Validation failed: %v", vErr)
			handlers.RespondValidation(w, vErr)

		default:
			h.logger.Error("GET /slots - Failed to get booked slots: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if req.View == getBookedSlots.ViewAvailable {
		handlers.RespondJSON(w, http.StatusOK, FromAvailability(result))
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromBookedSlots(result))
}
