package notification

import "context"

// Notifier доставляет HTML письмо получателю
type Notifier interface {
	Send(ctx context.Context, to, subject, html string) error
}

type Metrics interface {
	IncNotification(template, result string)
}
