package delete_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smilehub/clinic-booking/internal/service/appointments"
	"github.com/smilehub/clinic-booking/pkg/logger"
)

type fakeService struct {
	ids map[string]bool
	err error
}

func (f *fakeService) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if !f.ids[id] {
		return appointments.ErrAppointmentNotFound
	}
	delete(f.ids, id)
	return nil
}

func call(svc AppointmentsService, target string) int {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodDelete, target, nil))
	return rec.Code
}

func TestHandle_DeleteTwice(t *testing.T) {
	svc := &fakeService{ids: map[string]bool{"a1": true}}

	assert.Equal(t, http.StatusOK, call(svc, "/appointments?id=a1"))
	assert.Equal(t, http.StatusNotFound, call(svc, "/appointments?id=a1"))
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, call(&fakeService{}, "/appointments"))
	assert.Equal(t, http.StatusNotFound, call(&fakeService{}, "/appointments?id=unknown"))
	assert.Equal(t, http.StatusInternalServerError, call(&fakeService{err: appointments.ErrInternal}, "/appointments?id=a1"))
}
