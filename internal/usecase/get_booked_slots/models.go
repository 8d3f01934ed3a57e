package get_booked_slots

import "github.com/smilehub/clinic-booking/internal/domain"

// View вид ответа
type View string

const (
	ViewBooked    View = "booked"    // только занятые слоты
	ViewAvailable View = "available" // все слоты дня с признаком доступности
)

// Request модель запроса занятых слотов на дату
type Request struct {
	Date string // YYYY-MM-DD
	View View   // по умолчанию ViewBooked
}

// Response модель ответа
type Response struct {
	Date         string
	Booked       []domain.BookedSlot       // занятые слоты в порядке дня
	Availability []domain.SlotAvailability // только для ViewAvailable
}
