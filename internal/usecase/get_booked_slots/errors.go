package get_booked_slots

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_booked_slots: internal error")
)
