package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clinic"

// Metrics все метрики сервиса. Методы безопасны для nil-получателя,
// поэтому выключенные метрики можно передавать как (*Metrics)(nil)
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueries  *prometheus.CounterVec
	dbDuration *prometheus.HistogramVec
	dbPool     *prometheus.GaugeVec

	appointmentsCreated *prometheus.CounterVec
	slotConflicts       prometheus.Counter
	statusTransitions   *prometheus.CounterVec
	notifications       *prometheus.CounterVec
	feedEvents          *prometheus.CounterVec
}

// New создает метрики в собственном реестре с константной меткой service
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registerer := prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, registry)

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route, method and status code",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "queries_total",
			Help:      "Total database queries by operation and result",
		}, []string{"operation", "result"}),
		dbDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbPool: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "pool_connections",
			Help:      "Database connection pool state",
		}, []string{"state"}),
		appointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appointments",
			Name:      "created_total",
			Help:      "Appointments created by source",
		}, []string{"source"}),
		slotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appointments",
			Name:      "slot_conflicts_total",
			Help:      "Booking attempts rejected because the slot was taken",
		}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appointments",
			Name:      "status_transitions_total",
			Help:      "Applied status transitions",
		}, []string{"from", "to"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "sent_total",
			Help:      "Notification attempts by template and result",
		}, []string{"template", "result"}),
		feedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "events_total",
			Help:      "Change feed events by type and result",
		}, []string{"type", "result"}),
	}

	registerer.MustRegister(
		m.httpRequests, m.httpDuration,
		m.dbQueries, m.dbDuration, m.dbPool,
		m.appointmentsCreated, m.slotConflicts, m.statusTransitions,
		m.notifications, m.feedEvents,
	)
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler HTTP обработчик для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry реестр метрик (нужен тестам)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.dbQueries.WithLabelValues(operation, result).Inc()
	m.dbDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbPool.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.dbPool.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.dbPool.WithLabelValues("idle").Set(float64(stats.Idle))
	m.dbPool.WithLabelValues("max_open").Set(float64(stats.MaxOpenConnections))
}

func (m *Metrics) IncAppointmentCreated(source string) {
	if m == nil {
		return
	}
	m.appointmentsCreated.WithLabelValues(source).Inc()
}

func (m *Metrics) IncSlotConflict() {
	if m == nil {
		return
	}
	m.slotConflicts.Inc()
}

func (m *Metrics) IncStatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) IncNotification(template, result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(template, result).Inc()
}

func (m *Metrics) IncFeedEvent(eventType, result string) {
	if m == nil {
		return
	}
	m.feedEvents.WithLabelValues(eventType, result).Inc()
}
