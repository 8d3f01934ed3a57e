package get_booked_slots

import (
	"context"
	"fmt"
	"sort"

	"github.com/smilehub/clinic-booking/internal/domain"
	"github.com/smilehub/clinic-booking/internal/validation"
)

// UseCase use case для получения занятых слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	schedule        domain.ClinicSchedule
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, schedule domain.ClinicSchedule, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		schedule:        schedule,
		logger:          logger,
	}
}

// Execute возвращает слоты даты, занятые записями в статусах pending и confirmed.
// Пустой день - пустой список, не ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	date, err := uc.validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetBookedSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Активные записи на дату
	appointments, err := uc.appointmentRepo.ListWithQuery(ctx, domain.AppointmentsQuery{
		DateFrom: &date,
		DateTo:   &date,
		Statuses: domain.BlockingStatuses,
	})
	if err != nil {
		uc.logger.Error("GetBookedSlots: failed to get appointments for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 3. Занятые слоты в порядке дня
	booked := make([]domain.BookedSlot, 0, len(appointments))
	for _, a := range appointments {
		booked = append(booked, domain.BookedSlot{Date: a.Date, Time: a.Time, Status: a.Status})
	}
	sort.SliceStable(booked, func(i, j int) bool {
		return slotRank(uc.schedule.Slots, booked[i].Time) < slotRank(uc.schedule.Slots, booked[j].Time)
	})

	resp := &Response{Date: date, Booked: booked}

	if req.View == ViewAvailable {
		resp.Availability = buildAvailability(uc.schedule.Slots, booked)
	}

	uc.logger.Info("GetBookedSlots: date=%s, booked=%d", date, len(booked))
	return resp, nil
}

func (uc *UseCase) validateRequest(req *Request) (string, error) {
	if req.Date == "" {
		return "", validation.Field("date", "is required")
	}

	date, err := domain.NormalizeDate(req.Date, uc.schedule.Loc())
	if err != nil {
		return "", validation.Field("date", "must be a date in YYYY-MM-DD format")
	}

	switch req.View {
	case "":
		req.View = ViewBooked
	case ViewBooked, ViewAvailable:
	default:
		return "", validation.Field("view", "must be one of: booked, available")
	}

	return date, nil
}

// buildAvailability все слоты дня; слот выбираем, если на нем нет активной записи
func buildAvailability(slots domain.SlotLabels, booked []domain.BookedSlot) []domain.SlotAvailability {
	byTime := make(map[string]domain.Status, len(booked))
	for _, b := range booked {
		byTime[b.Time] = b.Status
	}

	out := make([]domain.SlotAvailability, 0, len(slots))
	for _, label := range slots {
		item := domain.SlotAvailability{Time: label, Selectable: true}
		if status, ok := byTime[label]; ok {
			s := status
			item.Status = &s
			item.Selectable = false
		}
		out = append(out, item)
	}
	return out
}

// slotRank позиция слота в дне; неизвестные метки в конце
func slotRank(slots domain.SlotLabels, label string) int {
	if i := slots.Index(label); i >= 0 {
		return i
	}
	return len(slots)
}
