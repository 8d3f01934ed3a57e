package notification

import "errors"

var (
	// ErrDeliveryFailed письмо не доставлено. Статус записи при этом уже сохранен
	ErrDeliveryFailed = errors.New("notification: delivery failed")

	// ErrRender ошибка шаблона письма
	ErrRender = errors.New("notification: failed to render template")
)
