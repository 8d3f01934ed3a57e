package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/smilehub/clinic-booking/internal/domain"
	"github.com/smilehub/clinic-booking/pkg/ptr"
)

const (
	DefaultTimeout = 10 * time.Second

	templateCancellation = "cancellation"
	templateConfirmation = "confirmation"
)

type buildFunc func(a *domain.Appointment) (*Email, error)

type handler struct {
	template string
	build    buildFunc
}

// Dispatcher выбирает письмо по новому статусу записи и отправляет его
type Dispatcher struct {
	notifier Notifier
	metrics  Metrics
	timeout  time.Duration
	handlers map[domain.Status]handler
}

// NewDispatcher создает диспетчер уведомлений. timeout ограничивает одну отправку
func NewDispatcher(notifier Notifier, renderer *Renderer, metrics Metrics, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	d := &Dispatcher{
		notifier: notifier,
		metrics:  metrics,
		timeout:  timeout,
	}

	// completed и pending писем не отправляют
	d.handlers = map[domain.Status]handler{
		domain.StatusCancelled: {
			template: templateCancellation,
			build: func(a *domain.Appointment) (*Email, error) {
				reason := ptr.Deref(a.CancellationReason)
				if reason == "" {
					reason = domain.DefaultCancellationReason
				}
				return renderer.Cancellation(a.Email, CancellationData{
					Name:   a.FullName,
					Date:   a.Date,
					Time:   a.Time,
					Reason: reason,
				})
			},
		},
		domain.StatusConfirmed: {
			template: templateConfirmation,
			build: func(a *domain.Appointment) (*Email, error) {
				return renderer.Confirmation(a.Email, ConfirmationData{
					Name: a.FullName,
					Date: a.Date,
					Time: a.Time,
				})
			},
		},
	}

	return d
}

// NotifyStatusChange отправляет письмо для текущего статуса записи.
// Отправка не зависит от отмены ctx вызывающего, но ограничена собственным таймаутом.
// Ошибки оборачиваются в ErrDeliveryFailed
func (d *Dispatcher) NotifyStatusChange(ctx context.Context, a *domain.Appointment) error {
	h, ok := d.handlers[a.Status]
	if !ok {
		return nil
	}
	if !a.HasEmail() {
		d.metrics.IncNotification(h.template, "skipped")
		return nil
	}

	email, err := h.build(a)
	if err != nil {
		d.metrics.IncNotification(h.template, "failed")
		return fmt.Errorf("%w: template=%s id=%s: %v", ErrDeliveryFailed, h.template, a.ID, err)
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	if err := d.notifier.Send(sendCtx, email.To, email.Subject, email.HTML); err != nil {
		d.metrics.IncNotification(h.template, "failed")
		return fmt.Errorf("%w: template=%s id=%s to=%s: %v", ErrDeliveryFailed, h.template, a.ID, email.To, err)
	}

	d.metrics.IncNotification(h.template, "sent")
	return nil
}
