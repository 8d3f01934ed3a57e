package domain

// SlotLabels ordered list of bookable slot labels of a day
type SlotLabels []string

// Contains returns true if label is one of the configured slots
func (s SlotLabels) Contains(label string) bool {
	return s.Index(label) >= 0
}

// Index returns the position of the label in day order, or -1
func (s SlotLabels) Index(label string) int {
	for i, l := range s {
		if l == label {
			return i
		}
	}
	return -1
}

// BookedSlot a slot occupied by a blocking appointment
type BookedSlot struct {
	Date   string
	Time   string
	Status Status
}

// IsBooked returns true once the clinic confirmed the appointment
func (s BookedSlot) IsBooked() bool {
	return s.Status == StatusConfirmed
}

// SlotAvailability state of one configured slot on a date
type SlotAvailability struct {
	Time       string
	Status     *Status // nil - свободен
	Selectable bool
}
