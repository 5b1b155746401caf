package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллектор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration  *prometheus.HistogramVec
	DBOpenConns      *prometheus.GaugeVec
	DBInUseConns     *prometheus.GaugeVec
	DBIdleConns      *prometheus.GaugeVec
	DBWaitCountTotal *prometheus.GaugeVec

	BookingsCommitted *prometheus.CounterVec
	BookingConflicts  *prometheus.CounterVec
	SlotsComputed     *prometheus.HistogramVec

	serviceName string
}

// New создает коллектор и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает коллектор с указанным registry (для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdleConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCountTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count_total",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		BookingsCommitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_committed_total",
			Help: "Bookings successfully committed",
		}, []string{"service", "status"}),
		BookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Booking attempts rejected because the range was occupied",
		}, []string{"service", "stage"}),
		SlotsComputed: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "slots_computed",
			Help:    "Number of slots returned per availability request",
			Buckets: []float64{0, 1, 5, 10, 20, 40, 80},
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConns,
		m.DBInUseConns,
		m.DBIdleConns,
		m.DBWaitCountTotal,
		m.BookingsCommitted,
		m.BookingConflicts,
		m.SlotsComputed,
	)

	return m
}

// ServiceName имя сервиса, используемое как label
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// ObserveHTTPRequest записывает метрики HTTP запроса
// Методы записи безопасно вызывать на nil *Metrics (метрики выключены)
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// BookingCommitted увеличивает счетчик созданных бронирований
func (m *Metrics) BookingCommitted(status string) {
	if m == nil {
		return
	}
	m.BookingsCommitted.WithLabelValues(m.serviceName, status).Inc()
}

// BookingConflict увеличивает счетчик конфликтов; stage = precheck | commit
func (m *Metrics) BookingConflict(stage string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(m.serviceName, stage).Inc()
}

// SlotsReturned записывает количество отданных слотов
func (m *Metrics) SlotsReturned(count int) {
	if m == nil {
		return
	}
	m.SlotsComputed.WithLabelValues(m.serviceName).Observe(float64(count))
}
