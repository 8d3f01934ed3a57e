package apptclient

import (
	"time"

	"github.com/goccy/go-json"
)

// Appointment запись в ответах API
type Appointment struct {
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

// CreateRequest запрос на запись
type CreateRequest struct {
	FullName string  `json:"fullName"`
	Age      string  `json:"age"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Service  string  `json:"service,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type updateStatusRequest struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

// ListOptions фильтры списка записей
type ListOptions struct {
	Status string
	Query  string
	Sort   string
}

// BookedSlot занятый слот даты
type BookedSlot struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status string `json:"status"`
	Booked bool   `json:"booked"`
}

// Event событие live-ленты
type Event struct {
	Type         string        `json:"type"`
	Appointments []Appointment `json:"appointments,omitempty"`
	Appointment  *Appointment  `json:"appointment,omitempty"`
	ID           string        `json:"id,omitempty"`
	At           time.Time     `json:"at"`
}

const (
	EventSnapshot = "snapshot"
	EventCreated  = "appointment.created"
	EventUpdated  = "appointment.updated"
	EventDeleted  = "appointment.deleted"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
	Fields  []fieldError    `json:"fields,omitempty"`
}
