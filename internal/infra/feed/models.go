package feed

import (
	"time"

	"github.com/smilehub/clinic-booking/internal/domain"
)

// message формат события в канале Redis
type message struct {
	Type        string       `json:"type"`
	ID          string       `json:"id"`
	Appointment *appointment `json:"appointment,omitempty"`
	At          time.Time    `json:"at"`
}

type appointment struct {
	ID                 string    `json:"id"`
	FullName           string    `json:"fullName"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Age                string    `json:"age"`
	Service            string    `json:"service"`
	Date               string    `json:"date"`
	Time               string    `json:"time"`
	Notes              *string   `json:"notes,omitempty"`
	Status             string    `json:"status"`
	Source             string    `json:"source"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func toMessage(e domain.ChangeEvent) message {
	msg := message{
		Type: string(e.Type),
		ID:   e.ID,
		At:   e.At.UTC(),
	}
	if a := e.Appointment; a != nil {
		msg.Appointment = &appointment{
			ID:                 a.ID,
			FullName:           a.FullName,
			Email:              a.Email,
			Phone:              a.Phone,
			Age:                a.Age,
			Service:            a.Service,
			Date:               a.Date,
			Time:               a.Time,
			Notes:              a.Notes,
			Status:             string(a.Status),
			Source:             string(a.Source),
			CancellationReason: a.CancellationReason,
			CreatedAt:          a.CreatedAt,
			UpdatedAt:          a.UpdatedAt,
		}
	}
	return msg
}

func (m message) toDomain() domain.ChangeEvent {
	e := domain.ChangeEvent{
		Type: domain.EventType(m.Type),
		ID:   m.ID,
		At:   m.At,
	}
	if a := m.Appointment; a != nil {
		e.Appointment = &domain.Appointment{
			ID:                 a.ID,
			FullName:           a.FullName,
			Email:              a.Email,
			Phone:              a.Phone,
			Age:                a.Age,
			Service:            a.Service,
			Date:               a.Date,
			Time:               a.Time,
			Notes:              a.Notes,
			Status:             domain.Status(a.Status),
			Source:             domain.Source(a.Source),
			CancellationReason: a.CancellationReason,
			CreatedAt:          a.CreatedAt,
			UpdatedAt:          a.UpdatedAt,
		}
	}
	return e
}
