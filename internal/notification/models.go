package notification

// Branding данные клиники для шаблонов писем
type Branding struct {
	Name       string
	Address    string
	Phone      string
	Email      string
	BookingURL string
	LogoURL    string
	Color      string
}

// DefaultBrandColor основной цвет писем
const DefaultBrandColor = "#32B5C8"

// Email готовое к отправке письмо
type Email struct {
	To      string
	Subject string
	HTML    string
}

// CancellationData данные письма об отмене
type CancellationData struct {
	Name   string
	Date   string
	Time   string
	Reason string
}

// ConfirmationData данные письма о подтверждении
type ConfirmationData struct {
	Name string
	Date string
	Time string
}

type templateData struct {
	Brand  Branding
	Title  string
	Year   int
	Name   string
	Date   string
	Time   string
	Reason string
}
