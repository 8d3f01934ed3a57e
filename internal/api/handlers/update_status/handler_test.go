package update_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehub/clinic-booking/internal/api/middleware"
	"github.com/smilehub/clinic-booking/internal/auth"
	"github.com/smilehub/clinic-booking/internal/domain"
	updateStatus "github.com/smilehub/clinic-booking/internal/usecase/update_status"
	"github.com/smilehub/clinic-booking/internal/validation"
	"github.com/smilehub/clinic-booking/pkg/logger"
)

type fakeUseCase struct {
	got    *updateStatus.Request
	result *domain.Appointment
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateStatus.Request) (*domain.Appointment, error) {
	f.got = req
	return f.result, f.err
}

func serve(uc *fakeUseCase, payload string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodPut, "/appointments", strings.NewReader(payload)))
	return rec
}

func TestHandle_ContactFieldsAreIgnored(t *testing.T) {
	uc := &fakeUseCase{result: &domain.Appointment{ID: "a1", Status: domain.StatusCancelled}}

	rec := serve(uc, `{"id":"a1","status":"cancelled","reason":"Doctor ill","email":"spoof@example.com","fullName":"X"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "a1", uc.got.ID)
	assert.Equal(t, "cancelled", uc.got.Status)
	require.NotNil(t, uc.got.Reason)
	assert.Equal(t, "Doctor ill", *uc.got.Reason)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: validation.Field("reason", "is required"), want: http.StatusBadRequest},
		{name: "not found", err: updateStatus.ErrAppointmentNotFound, want: http.StatusNotFound},
		{name: "invalid transition", err: fmt.Errorf("%w: cancelled -> confirmed", updateStatus.ErrInvalidTransition), want: http.StatusConflict},
		{name: "concurrent change", err: updateStatus.ErrStatusChanged, want: http.StatusConflict},
		{name: "internal", err: updateStatus.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, `{"id":"a1","status":"confirmed"}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	rec := serve(&fakeUseCase{}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type recordingLogger struct {
	infos []string
}

func (l *recordingLogger) Info(format string, v ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, v...))
}
func (l *recordingLogger) Warn(string, ...interface{})  {}
func (l *recordingLogger) Error(string, ...interface{}) {}

func TestHandle_LogsOperator(t *testing.T) {
	uc := &fakeUseCase{result: &domain.Appointment{ID: "a1", Status: domain.StatusConfirmed}}
	log := &recordingLogger{}

	req := httptest.NewRequest(http.MethodPut, "/appointments", strings.NewReader(`{"id":"a1","status":"confirmed"}`))
	req = req.WithContext(middleware.WithIdentity(req.Context(), &auth.Identity{Email: "admin@smilehub.lk"}))
	rec := httptest.NewRecorder()

	NewHandler(uc, log).Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, log.infos, 1)
	assert.Contains(t, log.infos[0], "operator=admin@smilehub.lk")
}
