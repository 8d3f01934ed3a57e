package update_status

import (
	updateStatus "github.com/smilehub/clinic-booking/internal/usecase/update_status"
)

// UpdateStatusRequest HTTP request model.
// Контактные поля принимаются для совместимости со старыми клиентами и не используются:
// письмо строится по сохраненной записи
type UpdateStatusRequest struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`

	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest() *updateStatus.Request {
	return &updateStatus.Request{
		ID:     r.ID,
		Status: r.Status,
		Reason: r.Reason,
	}
}
