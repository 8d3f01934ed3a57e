package main

import (
	"net/http"

	"github.com/gorilla/mux"

	adminDashboardHandler "github.com/smilehub/clinic-booking/internal/api/handlers/admin_dashboard"
	createAppointmentHandler "github.com/smilehub/clinic-booking/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/smilehub/clinic-booking/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/smilehub/clinic-booking/internal/api/handlers/get_appointment"
	getBookedSlotsHandler "github.com/smilehub/clinic-booking/internal/api/handlers/get_booked_slots"
	listAppointmentsHandler "github.com/smilehub/clinic-booking/internal/api/handlers/list_appointments"
	streamAppointmentsHandler "github.com/smilehub/clinic-booking/internal/api/handlers/stream_appointments"
	updateStatusHandler "github.com/smilehub/clinic-booking/internal/api/handlers/update_status"
)

// routeHandlers собранные handlers и обертки доступа
type routeHandlers struct {
	createAppointment  *createAppointmentHandler.Handler
	manualAppointment  *createAppointmentHandler.Handler
	listAppointments   *listAppointmentsHandler.Handler
	getAppointment     *getAppointmentHandler.Handler
	updateStatus       *updateStatusHandler.Handler
	deleteAppointment  *deleteAppointmentHandler.Handler
	getBookedSlots     *getBookedSlotsHandler.Handler
	adminDashboard     *adminDashboardHandler.Handler
	streamAppointments *streamAppointmentsHandler.Handler // nil без Redis

	// operator требует JWT оператора, limit ограничивает публичную запись
	operator func(http.Handler) http.Handler
	limit    func(http.Handler) http.Handler
}

func (h routeHandlers) register(r *mux.Router) {
	op := func(f http.HandlerFunc) http.Handler { return h.operator(f) }

	// Публичные маршруты
	r.Handle("/appointments", h.limit(http.HandlerFunc(h.createAppointment.Handle))).Methods(http.MethodPost)
	r.HandleFunc("/slots", h.getBookedSlots.Handle).Methods(http.MethodGet)

	// Маршруты оператора
	r.Handle("/appointments", op(h.listAppointments.Handle)).Methods(http.MethodGet)
	r.Handle("/appointments", op(h.updateStatus.Handle)).Methods(http.MethodPut)
	r.Handle("/appointments", op(h.deleteAppointment.Handle)).Methods(http.MethodDelete)
	if h.streamAppointments != nil {
		// до /appointments/{id}, иначе "live" будет принят за id
		r.Handle("/appointments/live", op(h.streamAppointments.Handle)).Methods(http.MethodGet)
	}
	r.Handle("/appointments/{id}", op(h.getAppointment.Handle)).Methods(http.MethodGet)

	r.Handle("/admin/appointments", op(h.manualAppointment.Handle)).Methods(http.MethodPost)
	r.Handle("/admin/stats", op(h.adminDashboard.HandleStats)).Methods(http.MethodGet)
	r.Handle("/admin/calendar", op(h.adminDashboard.HandleCalendar)).Methods(http.MethodGet)
	r.Handle("/admin/schedule", op(h.adminDashboard.HandleSchedule)).Methods(http.MethodGet)
}
