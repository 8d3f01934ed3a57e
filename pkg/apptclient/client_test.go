package apptclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehub/clinic-booking/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second, logger.NewNop(), WithToken("tok"))
}

func TestClient_UpdateStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/appointments", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"id":"a1","status":"cancelled","reason":"Doctor ill"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"message":"Appointment updated","data":{"id":"a1","status":"cancelled","cancellationReason":"Doctor ill"}}`)
	})

	reason := "Doctor ill"
	got, err := c.UpdateStatus(context.Background(), "a1", "cancelled", &reason)

	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	require.NotNil(t, got.CancellationReason)
	assert.Equal(t, "Doctor ill", *got.CancellationReason)
}

func TestClient_ListAppointmentsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		assert.Equal(t, "perera", r.URL.Query().Get("q"))
		_, _ = io.WriteString(w, `{"success":true,"data":[{"id":"a2"},{"id":"a1"}]}`)
	})

	got, err := c.ListAppointments(context.Background(), ListOptions{Status: "pending", Query: "perera"})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a2", got[0].ID)
}

func TestClient_DeleteAndSlots(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/appointments":
			assert.Equal(t, "a1", r.URL.Query().Get("id"))
			_, _ = io.WriteString(w, `{"success":true,"message":"Deleted successfully"}`)
		case "/api/v1/slots":
			assert.Equal(t, "2025-06-03", r.URL.Query().Get("date"))
			_, _ = io.WriteString(w, `{"success":true,"data":[{"date":"2025-06-03","time":"09:00 AM","status":"confirmed","booked":true}]}`)
		}
	})

	require.NoError(t, c.DeleteAppointment(context.Background(), "a1"))

	slots, err := c.BookedSlots(context.Background(), "2025-06-03")
	require.NoError(t, err)
	assert.Equal(t, []BookedSlot{{Date: "2025-06-03", Time: "09:00 AM", Status: "confirmed", Booked: true}}, slots)
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		code int
		body string
		want error
	}{
		{http.StatusBadRequest, `{"success":false,"error":"validation failed","fields":[{"field":"email","message":"is required"}]}`, ErrValidation},
		{http.StatusUnauthorized, `{"success":false,"error":"authentication required"}`, ErrUnauthorized},
		{http.StatusForbidden, `{"success":false,"error":"access denied"}`, ErrForbidden},
		{http.StatusNotFound, `{"success":false,"error":"appointment not found"}`, ErrNotFound},
		{http.StatusConflict, `{"success":false,"error":"slot taken"}`, ErrConflict},
		{http.StatusTooManyRequests, `{"success":false,"error":"slow down"}`, ErrRateLimited},
		{http.StatusInternalServerError, `{"success":false,"error":"internal server error"}`, ErrInternal},
		{http.StatusOK, `not json`, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.GetAppointment(context.Background(), "a1")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_ValidationErrorListsFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success":false,"error":"validation failed","fields":[{"field":"email","message":"is required"}]}`)
	})

	_, err := c.CreateAppointment(context.Background(), CreateRequest{FullName: "Nimal"})

	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "email is required")
}
