package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smilehub/clinic-booking/internal/domain"
	appointmentRepo "github.com/smilehub/clinic-booking/internal/infra/storage/appointment"
	"github.com/smilehub/clinic-booking/internal/validation"
	"github.com/smilehub/clinic-booking/pkg/ptr"
)

// UseCase use case для создания записи на прием
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifier        Notifier
	publisher       EventPublisher
	metrics         Metrics
	schedule        domain.ClinicSchedule
	validator       *validation.Validator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	publisher EventPublisher,
	metrics Metrics,
	schedule domain.ClinicSchedule,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		notifier:        notifier,
		publisher:       publisher,
		metrics:         metrics,
		schedule:        schedule,
		validator:       validation.New(),
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute создает запись. Проверка слота и вставка выполняются в одной
// сериализуемой транзакции, поэтому из двух одновременных запросов на один
// слот успешен только один, второй получает ErrSlotConflict
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("CreateAppointment: date=%s, time=%s, manual=%t", req.Date, req.Time, req.Manual)

	// 1. Валидация входных данных и календаря клиники
	now := uc.timeProvider.Now()
	date, err := validateRequest(uc.validator, req, uc.schedule, now)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Собираем запись
	appt := buildAppointment(req, date)

	// 3. Проверка слота и вставка в сериализуемой транзакции
	var result *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Активные записи на этот слот (с блокировкой FOR UPDATE)
		active, err := uc.appointmentRepo.ListWithQuery(txCtx, domain.AppointmentsQuery{
			DateFrom: &appt.Date,
			DateTo:   &appt.Date,
			Time:     &appt.Time,
			Statuses: domain.BlockingStatuses,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
		}

		if len(active) > 0 {
			return ErrSlotConflict
		}

		// 3.2. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return ErrSlotConflict
			}
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			uc.metrics.IncSlotConflict()
			uc.logger.Warn("CreateAppointment: slot date=%s time=%s is already booked", appt.Date, appt.Time)
			return nil, err
		}
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.IncAppointmentCreated(string(result.Source))
	uc.logger.Info("CreateAppointment: successfully created appointment id=%s status=%s", result.ID, result.Status)

	// 4. Побочные эффекты после фиксации транзакции: ошибки только логируются
	if req.Manual {
		if err := uc.notifier.NotifyStatusChange(ctx, result); err != nil {
			uc.logger.Warn("CreateAppointment: confirmation for id=%s not delivered: %v", result.ID, err)
		}
	}

	event := domain.ChangeEvent{Type: domain.EventCreated, ID: result.ID, Appointment: result, At: result.CreatedAt}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for id=%s: %v", result.ID, err)
	}

	return result, nil
}

func buildAppointment(req *Request, date string) *domain.Appointment {
	appt := &domain.Appointment{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Age:      strings.TrimSpace(req.Age),
		Service:  strings.TrimSpace(req.Service),
		Date:     date,
		Time:     strings.TrimSpace(req.Time),
		Status:   domain.StatusPending,
		Source:   domain.SourceOnline,
	}

	if appt.Service == "" {
		appt.Service = domain.DefaultService
	}

	if req.Notes != nil {
		if notes := strings.TrimSpace(*req.Notes); notes != "" {
			appt.Notes = ptr.Ptr(notes)
		}
	}

	if req.Manual {
		appt.Status = domain.StatusConfirmed
		appt.Source = domain.SourceManual
	}

	return appt
}
