package update_status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smilehub/clinic-booking/internal/domain"
	appointmentRepo "github.com/smilehub/clinic-booking/internal/infra/storage/appointment"
	"github.com/smilehub/clinic-booking/internal/validation"
)

// UseCase use case смены статуса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	notifier        Notifier
	publisher       EventPublisher
	metrics         Metrics
	policy          Policy
	validator       *validation.Validator
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	notifier Notifier,
	publisher EventPublisher,
	metrics Metrics,
	policy Policy,
	logger Logger,
) *UseCase {
	if policy.DefaultCancellationReason == "" {
		policy.DefaultCancellationReason = domain.DefaultCancellationReason
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		publisher:       publisher,
		metrics:         metrics,
		policy:          policy,
		validator:       validation.New(),
		logger:          logger,
	}
}

// Execute меняет статус записи по таблице переходов.
// Запись выполняется как compare-and-set по текущему статусу; письмо пациенту
// отправляется после записи, и его ошибка не отменяет смену статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("UpdateStatus: id=%s, status=%s", req.ID, req.Status)

	// 1. Валидация входных данных
	target, reason, err := validateRequest(uc.validator, req, uc.policy)
	if err != nil {
		uc.logger.Warn("UpdateStatus: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущая запись
	current, err := uc.appointmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateStatus: appointment id=%s not found", req.ID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateStatus: failed to get appointment id=%s: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Проверяем переход
	if !domain.CanTransition(current.Status, target) {
		uc.logger.Warn("UpdateStatus: transition %s -> %s not allowed for id=%s", current.Status, target, req.ID)
		return nil, fmt.Errorf("%w: %s -> %s (allowed: %s)",
			ErrInvalidTransition, current.Status, target, describeTransitions(current.Status))
	}

	// 4. Compare-and-set по статусу
	updated, err := uc.appointmentRepo.UpdateStatus(ctx, req.ID, current.Status, target, reason)
	if err != nil {
		return nil, uc.mapUpdateError(ctx, req.ID, err)
	}

	uc.metrics.IncStatusTransition(string(current.Status), string(updated.Status))
	uc.logger.Info("UpdateStatus: appointment id=%s moved %s -> %s", updated.ID, current.Status, updated.Status)

	// 5. Побочные эффекты: ошибки только логируются
	if err := uc.notifier.NotifyStatusChange(ctx, updated); err != nil {
		uc.logger.Warn("UpdateStatus: notification for id=%s not delivered, status %s kept: %v", updated.ID, updated.Status, err)
	}

	event := domain.ChangeEvent{Type: domain.EventUpdated, ID: updated.ID, Appointment: updated, At: updated.UpdatedAt}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("UpdateStatus: failed to publish event for id=%s: %v", updated.ID, err)
	}

	return updated, nil
}

// mapUpdateError отличает удаленную запись от параллельной смены статуса
func (uc *UseCase) mapUpdateError(ctx context.Context, id string, err error) error {
	if !errors.Is(err, appointmentRepo.ErrStatusChanged) {
		uc.logger.Error("UpdateStatus: failed to update appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
	}

	if _, getErr := uc.appointmentRepo.GetByID(ctx, id); errors.Is(getErr, appointmentRepo.ErrAppointmentNotFound) {
		uc.logger.Warn("UpdateStatus: appointment id=%s deleted during update", id)
		return ErrAppointmentNotFound
	}

	uc.logger.Warn("UpdateStatus: appointment id=%s changed concurrently", id)
	return ErrStatusChanged
}

// describeTransitions список допустимых статусов для сообщения об ошибке
func describeTransitions(from domain.Status) string {
	allowed := domain.AllowedTransitions(from)
	if len(allowed) == 0 {
		return "none, status is final"
	}
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
