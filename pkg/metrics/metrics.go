package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge
	dbIdleConns     prometheus.Gauge
	dbWaitCount     prometheus.Gauge

	reservationWrites     *prometheus.CounterVec
	availabilityConflicts prometheus.Counter
	slotSearches          *prometheus.CounterVec
	tableStatusChanges    *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: labels,
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		reservationWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_writes_total",
			Help:        "Reservation write operations by outcome",
			ConstLabels: labels,
		}, []string{"operation", "result"}),
		availabilityConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "availability_conflicts_total",
			Help:        "Availability checks that found an overlapping reservation",
			ConstLabels: labels,
		}),
		slotSearches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_searches_total",
			Help:        "Slot searches by kind and result",
			ConstLabels: labels,
		}, []string{"kind", "result"}),
		tableStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "table_status_changes_total",
			Help:        "Derived table status writes by target status",
			ConstLabels: labels,
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.reservationWrites,
		m.availabilityConflicts,
		m.slotSearches,
		m.tableStatusChanges,
	)

	return m
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполнение запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(open))
	m.dbInUseConns.Set(float64(inUse))
	m.dbIdleConns.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
}

// IncReservationWrite фиксирует результат операции записи бронирования
func (m *Metrics) IncReservationWrite(operation, result string) {
	if m == nil {
		return
	}
	m.reservationWrites.WithLabelValues(operation, result).Inc()
}

// IncAvailabilityConflict фиксирует найденное пересечение интервалов
func (m *Metrics) IncAvailabilityConflict() {
	if m == nil {
		return
	}
	m.availabilityConflicts.Inc()
}

// IncSlotSearch фиксирует поиск слота
func (m *Metrics) IncSlotSearch(kind string, found bool) {
	if m == nil {
		return
	}
	result := "none"
	if found {
		result = "found"
	}
	m.slotSearches.WithLabelValues(kind, result).Inc()
}

// IncTableStatusChange фиксирует запись производного статуса стола
func (m *Metrics) IncTableStatusChange(status string) {
	if m == nil {
		return
	}
	m.tableStatusChanges.WithLabelValues(status).Inc()
}
