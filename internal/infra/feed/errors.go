package feed

import "errors"

var (
	// ErrPublish возвращается, когда событие не удалось отправить в Redis
	ErrPublish = errors.New("feed: failed to publish event")

	// ErrSubscribe возвращается, когда не удалось подписаться на канал
	ErrSubscribe = errors.New("feed: failed to subscribe")

	// ErrEncode возвращается при ошибке сериализации события
	ErrEncode = errors.New("feed: failed to encode event")

	// ErrDecode возвращается при ошибке разбора события
	ErrDecode = errors.New("feed: failed to decode event")
)
