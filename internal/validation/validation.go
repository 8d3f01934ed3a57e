package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation корневая ошибка всех ошибок валидации
var ErrValidation = errors.New("validation failed")

var messages = map[string]string{
	"required": "is required",
	"notblank": "is required",
	"email":    "must be a valid email address",
	"max":      "must be at most %s characters",
	"min":      "must be at least %s characters",
	"oneof":    "must be one of: %s",
	"uuid":     "must be a valid id",
}

// FieldError ошибка одного поля запроса
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error набор ошибок полей. errors.Is(err, ErrValidation) == true
type Error struct {
	Fields []FieldError
}

// NewError создает ошибку из списка полей
func NewError(fields ...FieldError) *Error {
	return &Error{Fields: fields}
}

// Field ошибка одного поля
func Field(field, message string) *Error {
	return NewError(FieldError{Field: field, Message: message})
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *Error) Unwrap() error {
	return ErrValidation
}

// FieldNames имена полей с ошибками
func (e *Error) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}

// Add добавляет ошибку поля
func (e *Error) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil возвращает nil, если ошибок нет
func (e *Error) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Validator обёртка над go-playground/validator, имена полей берутся из json тегов
type Validator struct {
	validate *validator.Validate
}

// New создает валидатор с тегом notblank (строка не пустая после TrimSpace)
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				return false
			}
			field = field.Elem()
		}
		return strings.TrimSpace(field.String()) != ""
	})
	return &Validator{validate: v}
}

// Struct проверяет структуру по тегам validate и возвращает *Error
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	out := &Error{}
	for _, fe := range validationErrors {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	msg, ok := messages[fe.Tag()]
	if !ok {
		return "is invalid"
	}
	if strings.Contains(msg, "%s") {
		param := fe.Param()
		if fe.Tag() == "oneof" {
			param = strings.Join(strings.Fields(param), ", ")
		}
		msg = strings.Replace(msg, "%s", param, 1)
	}
	return msg
}
