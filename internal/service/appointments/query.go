package appointments

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/smilehub/clinic-booking/internal/domain"
)

// FilterAppointments оставляет записи со статусом filter.Status и с подстрокой
// filter.Query в имени, email (без учета регистра) или телефоне
func FilterAppointments(items []*domain.Appointment, filter domain.AppointmentFilter) []*domain.Appointment {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]*domain.Appointment, 0, len(items))
	for _, a := range items {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if query != "" && !matches(a, query) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matches(a *domain.Appointment, query string) bool {
	return strings.Contains(strings.ToLower(a.FullName), query) ||
		strings.Contains(strings.ToLower(a.Email), query) ||
		strings.Contains(a.Phone, query)
}

// SortAppointments упорядочивает записи на месте. Для SortSchedule порядок слотов
// внутри дня берется из slots
func SortAppointments(items []*domain.Appointment, order domain.SortOrder, slots domain.SlotLabels) {
	switch order {
	case domain.SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		})
	case domain.SortSchedule:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Date != items[j].Date {
				return items[i].Date < items[j].Date
			}
			return slotRank(slots, items[i].Time) < slotRank(slots, items[j].Time)
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}

// ComputeStats счетчики дашборда; today - дата клиники в формате YYYY-MM-DD
func ComputeStats(items []*domain.Appointment, today string) domain.DashboardStats {
	stats := domain.DashboardStats{Total: len(items)}
	for _, a := range items {
		switch a.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusConfirmed:
			stats.Confirmed++
		}
		if a.Date == today {
			stats.Today++
		}
	}
	return stats
}

// MonthRange первый и последний день месяца YYYY-MM
func MonthRange(month string) (string, string, error) {
	start, err := time.Parse(domain.MonthFormat, strings.TrimSpace(month))
	if err != nil {
		return "", "", fmt.Errorf("invalid month %q: expected YYYY-MM", month)
	}
	end := start.AddDate(0, 1, -1)
	return start.Format(domain.DateFormat), end.Format(domain.DateFormat), nil
}

// BuildCalendar счетчики confirmed и pending по каждому дню месяца.
// Дни без записей присутствуют с нулями
func BuildCalendar(items []*domain.Appointment, month string) ([]domain.CalendarDay, error) {
	from, to, err := MonthRange(month)
	if err != nil {
		return nil, err
	}

	start, _ := time.Parse(domain.DateFormat, from)
	end, _ := time.Parse(domain.DateFormat, to)

	days := make([]domain.CalendarDay, 0, end.Day())
	index := make(map[string]int, end.Day())
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(domain.DateFormat)
		index[date] = len(days)
		days = append(days, domain.CalendarDay{Date: date})
	}

	for _, a := range items {
		i, ok := index[a.Date]
		if !ok {
			continue
		}
		switch a.Status {
		case domain.StatusConfirmed:
			days[i].Confirmed++
		case domain.StatusPending:
			days[i].Pending++
		}
	}

	return days, nil
}

// DaySchedule записи на дату в порядке слотов
func DaySchedule(items []*domain.Appointment, date string, slots domain.SlotLabels) []*domain.Appointment {
	out := make([]*domain.Appointment, 0)
	for _, a := range items {
		if a.Date == date {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return slotRank(slots, out[i].Time) < slotRank(slots, out[j].Time)
	})
	return out
}

// slotRank позиция слота в дне; неизвестные метки в конце
func slotRank(slots domain.SlotLabels, label string) int {
	if i := slots.Index(label); i >= 0 {
		return i
	}
	return len(slots)
}
