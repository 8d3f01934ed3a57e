package get_booked_slots

import (
	getBookedSlots "github.com/smilehub/clinic-booking/internal/usecase/get_booked_slots"
)

// BookedSlotResponse занятый слот
type BookedSlotResponse struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status string `json:"status"`
	Booked bool   `json:"booked"` // confirmed - окончательно занят, pending - ожидает подтверждения
}

// SlotAvailabilityResponse слот дня для формы записи
type SlotAvailabilityResponse struct {
	Time       string  `json:"time"`
	Status     *string `json:"status,omitempty"`
	Selectable bool    `json:"selectable"`
}

// FromBookedSlots ответ для view=booked
func FromBookedSlots(resp *getBookedSlots.Response) []BookedSlotResponse {
	out := make([]BookedSlotResponse, 0, len(resp.Booked))
	for _, s := range resp.Booked {
		out = append(out, BookedSlotResponse{
			Date:   s.Date,
			Time:   s.Time,
			Status: string(s.Status),
			Booked: s.IsBooked(),
		})
	}
	return out
}

// FromAvailability ответ для view=available
func FromAvailability(resp *getBookedSlots.Response) []SlotAvailabilityResponse {
	out := make([]SlotAvailabilityResponse, 0, len(resp.Availability))
	for _, s := range resp.Availability {
		item := SlotAvailabilityResponse{Time: s.Time, Selectable: s.Selectable}
		if s.Status != nil {
			status := string(*s.Status)
			item.Status = &status
		}
		out = append(out, item)
	}
	return out
}
