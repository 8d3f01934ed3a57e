package create_appointment

import (
	createAppointment "github.com/smilehub/clinic-booking/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	FullName string  `json:"fullName"`
	Age      string  `json:"age"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Service  string  `json:"service,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(manual bool) *createAppointment.Request {
	return &createAppointment.Request{
		FullName: r.FullName,
		Age:      r.Age,
		Email:    r.Email,
		Phone:    r.Phone,
		Date:     r.Date,
		Time:     r.Time,
		Service:  r.Service,
		Notes:    r.Notes,
		Manual:   manual,
	}
}
