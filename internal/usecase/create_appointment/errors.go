package create_appointment

import "errors"

var (
	// ErrSlotConflict возвращается, когда на выбранные дату и время уже есть активная запись
	ErrSlotConflict = errors.New("create_appointment: slot is already booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
