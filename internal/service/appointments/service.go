package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smilehub/clinic-booking/internal/domain"
	appointmentRepo "github.com/smilehub/clinic-booking/internal/infra/storage/appointment"
	"github.com/smilehub/clinic-booking/internal/service/appointments/models"
)

// Service сервис операторских запросов к записям
type Service struct {
	appointmentRepo AppointmentRepository
	publisher       EventPublisher
	schedule        domain.ClinicSchedule
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	publisher EventPublisher,
	schedule domain.ClinicSchedule,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		publisher:       publisher,
		schedule:        schedule,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// List возвращает записи с фильтром по статусу и поиском по имени, email и телефону.
// По умолчанию новые сверху
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	items, err := s.appointmentRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	items = FilterAppointments(items, filter)
	SortAppointments(items, filter.Sort, s.schedule.Slots)

	s.logger.Info("List: fetched %d appointments (status=%v, q=%q, sort=%s)", len(items), filter.Status, filter.Query, filter.Sort)
	return &models.AppointmentListResponse{
		Appointments: models.FromDomainAppointments(items),
		Total:        len(items),
	}, nil
}

// Snapshot все записи, новые сверху; начальное состояние live-ленты
func (s *Service) Snapshot(ctx context.Context) ([]models.AppointmentResponse, error) {
	resp, err := s.List(ctx, &models.ListRequest{})
	if err != nil {
		return nil, err
	}
	return resp.Appointments, nil
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// Delete удаляет запись без возможности восстановления.
// Повторное удаление возвращает ErrAppointmentNotFound
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting appointment id=%s", id)

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: appointment id is required", ErrInvalidInput)
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%s not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	event := domain.ChangeEvent{Type: domain.EventDeleted, ID: id, At: s.timeProvider.Now()}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Delete: failed to publish event for id=%s: %v", id, err)
	}

	s.logger.Info("Delete: appointment id=%s deleted", id)
	return nil
}

// Stats счетчики дашборда; "сегодня" - дата в часовом поясе клиники
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	items, err := s.appointmentRepo.List(ctx)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	today := domain.Today(s.timeProvider.Now(), s.schedule.Loc())
	return models.FromDomainStats(ComputeStats(items, today)), nil
}

// Calendar счетчики confirmed и pending по дням месяца YYYY-MM.
// Пустой month - текущий месяц клиники
func (s *Service) Calendar(ctx context.Context, month string) (*models.CalendarResponse, error) {
	if strings.TrimSpace(month) == "" {
		month = s.timeProvider.Now().In(s.schedule.Loc()).Format(domain.MonthFormat)
	}

	from, to, err := MonthRange(month)
	if err != nil {
		s.logger.Warn("Calendar: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	items, err := s.appointmentRepo.ListWithQuery(ctx, domain.AppointmentsQuery{
		DateFrom: &from,
		DateTo:   &to,
		Statuses: domain.BlockingStatuses,
	})
	if err != nil {
		s.logger.Error("Calendar: repository error for month=%s: %v", month, err)
		return nil, fmt.Errorf("%w: Calendar - repository error: %v", ErrInternal, err)
	}

	days, err := BuildCalendar(items, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return models.FromDomainCalendar(strings.TrimSpace(month), days), nil
}

// DaySchedule записи на дату в порядке слотов дня
func (s *Service) DaySchedule(ctx context.Context, date string) (*models.DayScheduleResponse, error) {
	normalized, err := domain.NormalizeDate(date, s.schedule.Loc())
	if err != nil {
		s.logger.Warn("DaySchedule: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	items, err := s.appointmentRepo.ListWithQuery(ctx, domain.AppointmentsQuery{
		DateFrom: &normalized,
		DateTo:   &normalized,
	})
	if err != nil {
		s.logger.Error("DaySchedule: repository error for date=%s: %v", normalized, err)
		return nil, fmt.Errorf("%w: DaySchedule - repository error: %v", ErrInternal, err)
	}

	return &models.DayScheduleResponse{
		Date:         normalized,
		Appointments: models.FromDomainAppointments(DaySchedule(items, normalized, s.schedule.Slots)),
	}, nil
}
