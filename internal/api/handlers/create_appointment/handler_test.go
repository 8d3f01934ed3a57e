package create_appointment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehub/clinic-booking/internal/domain"
	createAppointment "github.com/smilehub/clinic-booking/internal/usecase/create_appointment"
	"github.com/smilehub/clinic-booking/internal/validation"
	"github.com/smilehub/clinic-booking/pkg/logger"
)

type fakeUseCase struct {
	got    *createAppointment.Request
	result *domain.Appointment
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*domain.Appointment, error) {
	f.got = req
	return f.result, f.err
}

const body = `{"fullName":"Nimal Perera","age":"34","email":"nimal@example.com","phone":"0771234567","date":"2025-06-03","time":"09:30 AM"}`

func serve(h *Handler, payload string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(payload)))
	return rec
}

func TestHandle_BookedRespondsOK(t *testing.T) {
	uc := &fakeUseCase{result: &domain.Appointment{
		ID: "a1", FullName: "Nimal Perera", Date: "2025-06-03", Time: "09:30 AM",
		Status: domain.StatusPending, Source: domain.SourceOnline, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}}

	rec := serve(NewHandler(uc, logger.NewNop()), body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, uc.got.Manual)
	assert.Equal(t, "Nimal Perera", uc.got.FullName)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, msgBooked, resp.Message)
	assert.Equal(t, "a1", resp.Data.ID)
	assert.Equal(t, "pending", resp.Data.Status)
}

func TestHandle_ManualMarksRequest(t *testing.T) {
	uc := &fakeUseCase{result: &domain.Appointment{ID: "a1", Status: domain.StatusConfirmed}}

	rec := serve(NewManualHandler(uc, logger.NewNop()), body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.got.Manual)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		err     error
		want    int
	}{
		{name: "broken body", payload: "{", want: http.StatusBadRequest},
		{name: "validation", payload: body, err: validation.Field("email", "is required"), want: http.StatusBadRequest},
		{name: "slot conflict", payload: body, err: createAppointment.ErrSlotConflict, want: http.StatusConflict},
		{name: "internal", payload: body, err: errors.Join(createAppointment.ErrInternal, errors.New("db down")), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop()), tt.payload)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
