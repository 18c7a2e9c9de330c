package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bryanwahyu/earnings-analyst/internal/domain/queries"
)

// Metrics holds the collectors for routing and HTTP traffic.
type Metrics struct {
	routes        *prometheus.CounterVec
	routeDuration *prometheus.HistogramVec
	requests      *prometheus.CounterVec
	inFlight      prometheus.Gauge
	reqDuration   *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		routes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "earnings",
			Name:      "routed_queries_total",
			Help:      "Queries routed, by path, classifier outcome and command.",
		}, []string{"path", "outcome", "command"}),
		routeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "earnings",
			Name:      "route_duration_seconds",
			Help:      "Time to answer one query, classifier call included.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30},
		}, []string{"path"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "earnings",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "earnings",
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests being served.",
		}),
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "earnings",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.routes, m.routeDuration, m.requests, m.inFlight, m.reqDuration)
	return m
}

// ObserveRoute implements queries.Observer.
func (m *Metrics) ObserveRoute(path queries.Path, outcome queries.Outcome, command string, elapsed time.Duration) {
	if command == "" {
		command = "none"
	}
	m.routes.WithLabelValues(string(path), outcome.String(), command).Inc()
	m.routeDuration.WithLabelValues(string(path)).Observe(elapsed.Seconds())
}

// RequestStarted and RequestFinished bracket one HTTP request.
func (m *Metrics) RequestStarted() { m.inFlight.Inc() }

func (m *Metrics) RequestFinished(method, route string, code int, elapsed time.Duration) {
	m.inFlight.Dec()
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.reqDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
