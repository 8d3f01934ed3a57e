package apptclient

import "errors"

var (
	// ErrValidation сервер отклонил запрос как некорректный (400)
	ErrValidation = errors.New("apptclient: validation failed")

	// ErrUnauthorized нет токена или он невалиден (401)
	ErrUnauthorized = errors.New("apptclient: unauthorized")

	// ErrForbidden пользователь не оператор (403)
	ErrForbidden = errors.New("apptclient: forbidden")

	// ErrNotFound запись не найдена (404)
	ErrNotFound = errors.New("apptclient: appointment not found")

	// ErrConflict слот занят, переход запрещен или запись изменена параллельно (409)
	ErrConflict = errors.New("apptclient: conflict")

	// ErrRateLimited слишком много запросов (429)
	ErrRateLimited = errors.New("apptclient: rate limited")

	// ErrInvalidResponse неожиданный ответ сервера
	ErrInvalidResponse = errors.New("apptclient: invalid response")

	// ErrInternal ошибка транспорта или 5xx
	ErrInternal = errors.New("apptclient: internal error")
)
