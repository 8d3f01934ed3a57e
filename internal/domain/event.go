package domain

import "time"

// EventType kind of a change feed event
type EventType string

const (
	EventCreated EventType = "appointment.created"
	EventUpdated EventType = "appointment.updated"
	EventDeleted EventType = "appointment.deleted"
)

// ChangeEvent a committed change of the appointment set
type ChangeEvent struct {
	Type        EventType
	ID          string
	Appointment *Appointment // nil для EventDeleted
	At          time.Time
}
