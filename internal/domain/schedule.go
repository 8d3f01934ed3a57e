package domain

import (
	"fmt"
	"strings"
	"time"
)

// ClinicSchedule calendar rules applied to new bookings
type ClinicSchedule struct {
	Slots              SlotLabels
	Location           *time.Location
	ClosedWeekdays     []time.Weekday
	AdvanceBookingDays int // 0 = unlimited
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c ClinicSchedule) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// IsClosedOn returns true if the clinic does not take appointments on the date's weekday
func (c ClinicSchedule) IsClosedOn(date time.Time) bool {
	for _, d := range c.ClosedWeekdays {
		if date.Weekday() == d {
			return true
		}
	}
	return false
}

// Loc returns the clinic location, UTC if unset
func (c ClinicSchedule) Loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// NormalizeDate converts a date value to the canonical YYYY-MM-DD form.
// Plain dates are taken as-is; timestamps are converted to the clinic location first.
func NormalizeDate(value string, loc *time.Location) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("empty date")
	}
	if loc == nil {
		loc = time.UTC
	}
	if d, err := time.ParseInLocation(DateFormat, value, loc); err == nil {
		return d.Format(DateFormat), nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return ts.In(loc).Format(DateFormat), nil
}

// ParseDate parses a canonical date as midnight in the clinic location
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateFormat, value, loc)
}

// Today returns the clinic-local calendar date of now
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DateFormat)
}
