package stream_appointments

import (
	"time"

	"github.com/smilehub/clinic-booking/internal/domain"
	"github.com/smilehub/clinic-booking/internal/service/appointments/models"
)

const TypeSnapshot = "snapshot"

// Message сообщение WebSocket ленты.
// Первое сообщение - snapshot со всеми записями, дальше по одному на каждое изменение
type Message struct {
	Type         string                       `json:"type"`
	Appointments []models.AppointmentResponse `json:"appointments,omitempty"`
	Appointment  *models.AppointmentResponse  `json:"appointment,omitempty"`
	ID           string                       `json:"id,omitempty"`
	At           time.Time                    `json:"at"`
}

// FromChangeEvent конвертирует событие ленты в сообщение
func FromChangeEvent(e domain.ChangeEvent) Message {
	return Message{
		Type:        string(e.Type),
		Appointment: models.FromDomainAppointment(e.Appointment),
		ID:          e.ID,
		At:          e.At,
	}
}
