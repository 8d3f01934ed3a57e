package models

import (
	"errors"
	"strings"
	"time"

	"github.com/smilehub/clinic-booking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidSort возвращается при некорректном порядке сортировки
	ErrInvalidSort = errors.New("invalid sort order")
)

// Request модели

// ListRequest фильтр списка записей оператора
type ListRequest struct {
	Status *string `json:"status,omitempty"` // pending | confirmed | cancelled | completed
	Query  string  `json:"q,omitempty"`      // подстрока имени, email или телефона
	Sort   string  `json:"sort,omitempty"`   // newest (по умолчанию) | oldest | schedule
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{Query: strings.TrimSpace(r.Query)}

	if r.Status != nil && *r.Status != "" && *r.Status != "all" {
		status, ok := domain.ParseStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	sortOrder, ok := domain.ParseSortOrder(r.Sort)
	if !ok {
		return filter, ErrInvalidSort
	}
	filter.Sort = sortOrder

	return filter, nil
}

// Response модели

// AppointmentResponse запись в ответах API
type AppointmentResponse struct {
	ID                 string    `json:"id"`
	FullName           string    `json:"fullName"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Age                string    `json:"age"`
	Service            string    `json:"service"`
	Date               string    `json:"date"` // "2025-06-03"
	Time               string    `json:"time"` // "09:30 AM"
	Notes              *string   `json:"notes,omitempty"`
	Status             string    `json:"status"`
	Source             string    `json:"source"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// StatsResponse счетчики дашборда
type StatsResponse struct {
	TotalAppointments     int `json:"totalAppointments"`
	PendingAppointments   int `json:"pendingAppointments"`
	ConfirmedAppointments int `json:"confirmedAppointments"`
	TodayAppointments     int `json:"todayAppointments"`
}

// CalendarDayResponse счетчики одного дня календаря
type CalendarDayResponse struct {
	Date      string `json:"date"`
	Confirmed int    `json:"confirmed"`
	Pending   int    `json:"pending"`
}

// CalendarResponse календарь месяца
type CalendarResponse struct {
	Month string                `json:"month"`
	Days  []CalendarDayResponse `json:"days"`
}

// DayScheduleResponse записи дня в порядке слотов
type DayScheduleResponse struct {
	Date         string                `json:"date"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
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

// FromDomainAppointments конвертирует список domain моделей в DTO
func FromDomainAppointments(items []*domain.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, *FromDomainAppointment(a))
	}
	return out
}

// FromDomainStats конвертирует счетчики дашборда
func FromDomainStats(s domain.DashboardStats) *StatsResponse {
	return &StatsResponse{
		TotalAppointments:     s.Total,
		PendingAppointments:   s.Pending,
		ConfirmedAppointments: s.Confirmed,
		TodayAppointments:     s.Today,
	}
}

// FromDomainCalendar конвертирует календарь месяца
func FromDomainCalendar(month string, days []domain.CalendarDay) *CalendarResponse {
	resp := &CalendarResponse{Month: month, Days: make([]CalendarDayResponse, 0, len(days))}
	for _, d := range days {
		resp.Days = append(resp.Days, CalendarDayResponse{Date: d.Date, Confirmed: d.Confirmed, Pending: d.Pending})
	}
	return resp
}
