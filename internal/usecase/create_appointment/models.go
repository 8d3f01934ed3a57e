package create_appointment

// Request модель запроса на создание записи на прием
type Request struct {
	FullName string  `json:"fullName" validate:"notblank,max=200"`
	Age      string  `json:"age" validate:"notblank,max=10"`
	Email    string  `json:"email" validate:"notblank,email,max=200"`
	Phone    string  `json:"phone" validate:"notblank,max=30"`
	Date     string  `json:"date" validate:"notblank"` // YYYY-MM-DD или RFC3339
	Time     string  `json:"time" validate:"notblank"` // метка слота, например "09:30 AM"
	Service  string  `json:"service" validate:"max=200"`
	Notes    *string `json:"notes" validate:"omitempty,max=500"`

	// Manual запись создает оператор: сразу confirmed, пациенту уходит подтверждение
	Manual bool `json:"-"`
}
