package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values used when the real value would be unbounded.
const (
	ActionUnknown = "unknown"
	ActionInvalid = "invalid"
)

// DefaultBuckets are latency buckets in seconds sized for in-process
// test traffic.
var DefaultBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1}

// Metrics holds one gateway instance's collectors. Each instance owns its
// registry so that parallel servers in one test binary do not collide.
type Metrics struct {
	registry *prometheus.Registry

	// ControlCallsTotal counts control calls.
	// Labels: action (catalog name, "unknown" or "invalid"), outcome.
	ControlCallsTotal *prometheus.CounterVec

	// ControlCallDuration tracks time from body read to response write.
	// Labels: action.
	ControlCallDuration *prometheus.HistogramVec

	// MockHitsTotal counts calls answered per mock.
	// Labels: mock_id.
	MockHitsTotal *prometheus.CounterVec

	// ResponderFailuresTotal counts custom responders that errored or panicked.
	ResponderFailuresTotal prometheus.Counter

	// DiscoveryResponsesTotal counts answered M-SEARCH requests.
	// Labels: st.
	DiscoveryResponsesTotal *prometheus.CounterVec

	// HTTPRequestsTotal counts every HTTP request the gateway served.
	// Labels: method, route (mux pattern or "unmatched"), status.
	HTTPRequestsTotal *prometheus.CounterVec

	// MocksRegistered is the number of mocks in the registry.
	MocksRegistered prometheus.Gauge

	// UptimeSeconds is refreshed on every scrape.
	UptimeSeconds prometheus.GaugeFunc
}

// New creates a Metrics with a private registry. Go runtime collectors are
// registered alongside the gateway metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	start := time.Now()

	m := &Metrics{
		registry: reg,
		ControlCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockigd_control_calls_total",
			Help: "Total number of control calls by action and resolution outcome",
		}, []string{"action", "outcome"}),
		ControlCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mockigd_control_call_duration_seconds",
			Help:    "Duration of control calls in seconds",
			Buckets: DefaultBuckets,
		}, []string{"action"}),
		MockHitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockigd_mock_hits_total",
			Help: "Number of calls answered by each mock",
		}, []string{"mock_id"}),
		ResponderFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mockigd_responder_failures_total",
			Help: "Custom responders that returned an error or panicked",
		}),
		DiscoveryResponsesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockigd_discovery_responses_total",
			Help: "Answered SSDP M-SEARCH requests by search target",
		}, []string{"st"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockigd_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		MocksRegistered: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mockigd_mocks_registered",
			Help: "Number of registered mocks, exhausted ones included",
		}),
		UptimeSeconds: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "mockigd_uptime_seconds",
			Help: "Seconds since the gateway was created",
		}, func() float64 { return time.Since(start).Seconds() }),
	}

	reg.MustRegister(
		m.ControlCallsTotal,
		m.ControlCallDuration,
		m.MockHitsTotal,
		m.ResponderFailuresTotal,
		m.DiscoveryResponsesTotal,
		m.HTTPRequestsTotal,
		m.MocksRegistered,
		m.UptimeSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCall records one control call.
func (m *Metrics) ObserveCall(action, outcome, mockID string, d time.Duration) {
	m.ControlCallsTotal.WithLabelValues(action, outcome).Inc()
	m.ControlCallDuration.WithLabelValues(action).Observe(d.Seconds())
	if mockID != "" {
		m.MockHitsTotal.WithLabelValues(mockID).Inc()
	}
}

// ObserveDiscovery records one answered search.
func (m *Metrics) ObserveDiscovery(st string) {
	m.DiscoveryResponsesTotal.WithLabelValues(st).Inc()
}

// ObserveHTTP records one served HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, status int) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
