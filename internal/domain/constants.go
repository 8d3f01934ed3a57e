package domain

// Default values
const (
	DefaultService            = "General Consultation"
	DefaultCancellationReason = "Schedule conflict"
	DefaultAdvanceBookingDays = 90 // 0 = unlimited
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxFieldLength              = 200
)

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// DefaultTimeSlots slot labels of a regular clinic day in day order
var DefaultTimeSlots = SlotLabels{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM", "12:00 PM",
	"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM", "04:00 PM", "04:30 PM", "05:00 PM",
}
