package update_status

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_status: appointment not found")

	// ErrInvalidTransition возвращается, когда переход из текущего статуса запрещен
	ErrInvalidTransition = errors.New("update_status: status transition not allowed")

	// ErrStatusChanged возвращается, когда статус изменили параллельно
	ErrStatusChanged = errors.New("update_status: appointment status changed concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_status: internal error")
)
