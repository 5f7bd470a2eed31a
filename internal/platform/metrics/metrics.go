package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Gate decision outcomes.
const (
	OutcomeAllowed         = "allowed"
	OutcomeDenied          = "denied"
	OutcomeUnauthenticated = "unauthenticated"
)

// Metrics owns a private Prometheus registry and the collectors of the service.
type Metrics struct {
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	gateDecisions   *prometheus.CounterVec
	domainEvents    *prometheus.CounterVec
}

// NewMetrics creates the registry and registers every collector.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "member_admin",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "member_admin",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
	gate := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "member_admin",
		Name:      "authz_gate_decisions_total",
		Help:      "Authorization gate decisions by operation and outcome.",
	}, []string{"operation", "outcome"})
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "member_admin",
		Name:      "domain_events_total",
		Help:      "Published domain events by topic.",
	}, []string{"topic"})

	registry.MustRegister(
		requests,
		duration,
		gate,
		events,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		gateDecisions:   gate,
		domainEvents:    events,
	}
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records count and latency for every request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// RecordGateDecision counts one authorization gate decision.
func (m *Metrics) RecordGateDecision(operation, outcome string) {
	if m == nil {
		return
	}
	m.gateDecisions.WithLabelValues(operation, outcome).Inc()
}

// RecordEvent counts one published domain event.
func (m *Metrics) RecordEvent(topic string) {
	if m == nil {
		return
	}
	m.domainEvents.WithLabelValues(topic).Inc()
}

// GateDecisions exposes the decision counter for assertions in tests.
func (m *Metrics) GateDecisions() *prometheus.CounterVec {
	return m.gateDecisions
}

// DomainEvents exposes the event counter for assertions in tests.
func (m *Metrics) DomainEvents() *prometheus.CounterVec {
	return m.domainEvents
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
