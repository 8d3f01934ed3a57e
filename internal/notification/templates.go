package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/smilehub/clinic-booking/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	subjectCancellation = "Appointment Cancelled"
	subjectConfirmation = "Appointment Confirmed!"

	displayDateFormat = "Monday, 2 January 2006"
)

// Renderer рендерит HTML письма. Значения экранируются html/template
type Renderer struct {
	brand        Branding
	cancellation *template.Template
	confirmation *template.Template
	now          func() time.Time
}

// NewRenderer разбирает встроенные шаблоны
func NewRenderer(brand Branding) (*Renderer, error) {
	if brand.Color == "" {
		brand.Color = DefaultBrandColor
	}

	cancellation, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/cancellation.html")
	if err != nil {
		return nil, fmt.Errorf("%w: cancellation: %v", ErrRender, err)
	}
	confirmation, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/confirmation.html")
	if err != nil {
		return nil, fmt.Errorf("%w: confirmation: %v", ErrRender, err)
	}

	return &Renderer{
		brand:        brand,
		cancellation: cancellation,
		confirmation: confirmation,
		now:          time.Now,
	}, nil
}

// Cancellation письмо об отмене записи с причиной
func (r *Renderer) Cancellation(to string, data CancellationData) (*Email, error) {
	html, err := r.render(r.cancellation, templateData{
		Brand:  r.brand,
		Title:  subjectCancellation,
		Name:   data.Name,
		Date:   displayDate(data.Date),
		Time:   data.Time,
		Reason: data.Reason,
	})
	if err != nil {
		return nil, err
	}
	return &Email{To: to, Subject: subjectCancellation, HTML: html}, nil
}

// Confirmation письмо о подтверждении записи
func (r *Renderer) Confirmation(to string, data ConfirmationData) (*Email, error) {
	html, err := r.render(r.confirmation, templateData{
		Brand: r.brand,
		Title: subjectConfirmation,
		Name:  data.Name,
		Date:  displayDate(data.Date),
		Time:  data.Time,
	})
	if err != nil {
		return nil, err
	}
	return &Email{To: to, Subject: subjectConfirmation, HTML: html}, nil
}

func (r *Renderer) render(tmpl *template.Template, data templateData) (string, error) {
	data.Year = r.now().Year()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.String(), nil
}

// displayDate "2025-06-02" -> "Monday, 2 June 2025"; нераспознанные значения без изменений
func displayDate(date string) string {
	t, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return date
	}
	return t.Format(displayDateFormat)
}
