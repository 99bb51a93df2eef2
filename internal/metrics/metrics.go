package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics wraps the Prometheus collectors of the POS API.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	loginAttempts   *prometheus.CounterVec
	salesRecorded   prometheus.Counter
	salesAmountUSD  prometheus.Counter
	offersRejected  *prometheus.CounterVec
	wsClients       prometheus.Gauge
	permissionDenys *prometheus.CounterVec
}

// New creates a registry and registers the API metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})

	requestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pos_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	loginAttempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_login_attempts_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	salesRecorded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_total",
		Help: "Total number of recorded sales.",
	})

	salesAmountUSD := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_amount_usd_total",
		Help: "Sum of recorded sale amounts in USD.",
	})

	offersRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_offers_rejected_total",
		Help: "Offers rejected by price or date validation.",
	}, []string{"field"})

	wsClients := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pos_ws_clients",
		Help: "Currently connected websocket clients.",
	})

	permissionDenys := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_permission_denied_total",
		Help: "Requests rejected for missing privileges.",
	}, []string{"route"})

	registry.MustRegister(requests, requestLatency, loginAttempts, salesRecorded, salesAmountUSD,
		offersRejected, wsClients, permissionDenys)

	return &Metrics{
		registry:        registry,
		requests:        requests,
		requestLatency:  requestLatency,
		loginAttempts:   loginAttempts,
		salesRecorded:   salesRecorded,
		salesAmountUSD:  salesAmountUSD,
		offersRejected:  offersRejected,
		wsClients:       wsClients,
		permissionDenys: permissionDenys,
	}
}

// Handler exposes the metrics registry via HTTP.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts and times every request by its route pattern.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.requestLatency.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

func (m *Metrics) IncLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.loginAttempts.WithLabelValues(result).Inc()
}

// ObserveSale records one sale of amountUSD.
func (m *Metrics) ObserveSale(amountUSD float64) {
	m.salesRecorded.Inc()
	m.salesAmountUSD.Add(amountUSD)
}

func (m *Metrics) IncOfferRejected(field string) {
	m.offersRejected.WithLabelValues(field).Inc()
}

func (m *Metrics) IncPermissionDenied(route string) {
	m.permissionDenys.WithLabelValues(route).Inc()
}

func (m *Metrics) IncWSClients() {
	m.wsClients.Inc()
}

func (m *Metrics) DecWSClients() {
	m.wsClients.Dec()
}
