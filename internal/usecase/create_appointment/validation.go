package create_appointment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smilehub/clinic-booking/internal/domain"
	"github.com/smilehub/clinic-booking/internal/validation"
)

const (
	msgInvalidDate     = "must be a date in YYYY-MM-DD format"
	msgPastDate        = "must not be in the past"
	msgClinicClosed    = "the clinic is closed on %s"
	msgTooFarAhead     = "can be at most %d days ahead"
	msgUnknownTimeSlot = "must be one of the clinic time slots"
)

// validateRequest проверяет поля запроса и календарные правила клиники.
// Возвращает нормализованную дату
func validateRequest(v *validation.Validator, req *Request, schedule domain.ClinicSchedule, now time.Time) (string, error) {
	fieldErrs := &validation.Error{}

	if err := v.Struct(req); err != nil {
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			return "", fmt.Errorf("%w: validate request: %v", ErrInternal, err)
		}
		fieldErrs = vErr
	}

	var date string
	if !hasField(fieldErrs, "date") {
		var msg string
		date, msg = validateDate(req.Date, schedule, now)
		if msg != "" {
			fieldErrs.Add("date", msg)
		}
	}

	if !hasField(fieldErrs, "time") && !schedule.Slots.Contains(strings.TrimSpace(req.Time)) {
		fieldErrs.Add("time", msgUnknownTimeSlot)
	}

	if err := fieldErrs.OrNil(); err != nil {
		return "", err
	}
	return date, nil
}

// validateDate нормализует дату и проверяет, что клиника принимает в этот день
func validateDate(value string, schedule domain.ClinicSchedule, now time.Time) (string, string) {
	loc := schedule.Loc()

	date, err := domain.NormalizeDate(value, loc)
	if err != nil {
		return "", msgInvalidDate
	}

	day, err := domain.ParseDate(date, loc)
	if err != nil {
		return "", msgInvalidDate
	}

	today, _ := domain.ParseDate(domain.Today(now, loc), loc)
	if day.Before(today) {
		return "", msgPastDate
	}

	if schedule.IsClosedOn(day) {
		return "", fmt.Sprintf(msgClinicClosed, day.Weekday())
	}

	if schedule.HasAdvanceBookingLimit() && day.After(today.AddDate(0, 0, schedule.AdvanceBookingDays)) {
		return "", fmt.Sprintf(msgTooFarAhead, schedule.AdvanceBookingDays)
	}

	return date, ""
}

func hasField(e *validation.Error, field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
