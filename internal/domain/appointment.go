package domain

import "time"

// Status represents the lifecycle state of an appointment
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// BlockingStatuses hold a slot: at most one appointment in these states per (date, time)
var BlockingStatuses = []Status{StatusPending, StatusConfirmed}

// ParseStatus returns the status for a known status name
func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return st, true
	default:
		return "", false
	}
}

// IsTerminal returns true if no further transitions are allowed
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsBlocking returns true if an appointment in this status occupies its slot
func (s Status) IsBlocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Source tells how the appointment entered the system
type Source string

const (
	SourceOnline Source = "online"
	SourceManual Source = "manual"
)

// Appointment represents a patient's booking of one slot on one date
type Appointment struct {
	ID       string
	FullName string
	Email    string
	Phone    string
	Age      string
	Service  string
	Date     string // YYYY-MM-DD, clinic-local
	Time     string // slot label, e.g. "09:30 AM"
	Notes    *string
	Status   Status
	Source   Source

	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasEmail returns true if the patient left an email to notify
func (a *Appointment) HasEmail() bool {
	return a.Email != ""
}

// IsBlocking returns true if the appointment occupies its slot
func (a *Appointment) IsBlocking() bool {
	return a.Status.IsBlocking()
}

// AppointmentFilter operator list filter
type AppointmentFilter struct {
	Status *Status   // nil - все статусы
	Query  string    // подстрока имени, email или телефона
	Sort   SortOrder // по умолчанию SortNewest
}

// SortOrder ordering of operator lists
type SortOrder string

const (
	SortNewest   SortOrder = "newest"   // createdAt desc
	SortOldest   SortOrder = "oldest"   // createdAt asc
	SortSchedule SortOrder = "schedule" // date asc, then slot order
)

// ParseSortOrder returns SortNewest for an empty value
func ParseSortOrder(s string) (SortOrder, bool) {
	switch so := SortOrder(s); so {
	case "":
		return SortNewest, true
	case SortNewest, SortOldest, SortSchedule:
		return so, true
	default:
		return "", false
	}
}

// DashboardStats operator dashboard counters
type DashboardStats struct {
	Total     int
	Pending   int
	Confirmed int
	Today     int
}

// CalendarDay per-day counters of the operator calendar
type CalendarDay struct {
	Date      string
	Confirmed int
	Pending   int
}

// AppointmentsQuery storage-level selection of appointments
type AppointmentsQuery struct {
	DateFrom *string  // включительно, YYYY-MM-DD
	DateTo   *string  // включительно, YYYY-MM-DD
	Time     *string  // метка слота
	Statuses []Status // пусто - все статусы
}

// IsSingleSlot returns true if the query targets exactly one (date, time) pair
func (q AppointmentsQuery) IsSingleSlot() bool {
	return q.DateFrom != nil && q.DateTo != nil && *q.DateFrom == *q.DateTo && q.Time != nil
}
