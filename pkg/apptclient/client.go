package apptclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Client клиент HTTP API записей
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// Option настройка клиента
type Option func(*Client)

// WithToken токен оператора для защищенных методов
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient свой http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateAppointment создает запись пациента
func (c *Client) CreateAppointment(ctx context.Context, req CreateRequest) (*Appointment, error) {
	var out Appointment
	if err := c.do(ctx, http.MethodPost, "/api/v1/appointments", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAppointments список записей оператора
func (c *Client) ListAppointments(ctx context.Context, opts ListOptions) ([]Appointment, error) {
	query := url.Values{}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Query != "" {
		query.Set("q", opts.Query)
	}
	if opts.Sort != "" {
		query.Set("sort", opts.Sort)
	}

	var out []Appointment
	if err := c.do(ctx, http.MethodGet, "/api/v1/appointments", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAppointment запись по ID
func (c *Client) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	var out Appointment
	if err := c.do(ctx, http.MethodGet, "/api/v1/appointments/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus меняет статус записи
func (c *Client) UpdateStatus(ctx context.Context, id, status string, reason *string) (*Appointment, error) {
	var out Appointment
	body := updateStatusRequest{ID: id, Status: status, Reason: reason}
	if err := c.do(ctx, http.MethodPut, "/api/v1/appointments", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAppointment удаляет запись
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/appointments", url.Values{"id": {id}}, nil, nil)
}

// BookedSlots занятые слоты даты
func (c *Client) BookedSlots(ctx context.Context, date string) ([]BookedSlot, error) {
	var out []BookedSlot
	if err := c.do(ctx, http.MethodGet, "/api/v1/slots", url.Values{"date": {date}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: %s %s: status %d: failed to decode response: %v", ErrInvalidResponse, method, path, resp.StatusCode, err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		c.log.Warn("%s %s - request failed: status=%d, error=%s", method, path, resp.StatusCode, env.Error)
		return statusError(resp.StatusCode, env)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %s %s: failed to decode data: %v", ErrInvalidResponse, method, path, err)
	}
	return nil
}

// Обработка статус-кодов
func statusError(code int, env envelope) error {
	detail := env.Error
	if len(env.Fields) > 0 {
		parts := make([]string, 0, len(env.Fields))
		for _, f := range env.Fields {
			parts = append(parts, f.Field+" "+f.Message)
		}
		detail = strings.Join(parts, ", ")
	}

	switch code {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrValidation, detail)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, detail)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, detail)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return fmt.Errorf("%w: status %d: %s", ErrInternal, code, detail)
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, code, detail)
	}
}
