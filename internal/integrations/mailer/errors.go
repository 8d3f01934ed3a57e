package mailer

import "errors"

var (
	// ErrNotConfigured возвращается, когда у отправителя нет клиента или адреса отправителя
	ErrNotConfigured = errors.New("mailer: sender not configured")

	// ErrInvalidRecipient возвращается для пустого адреса получателя
	ErrInvalidRecipient = errors.New("mailer: invalid recipient")

	// ErrSendFailed возвращается, когда провайдер не принял письмо
	ErrSendFailed = errors.New("mailer: send failed")
)
