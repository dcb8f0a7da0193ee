package service

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	solveDuration   prometheus.Histogram
	solvePatterns   prometheus.Histogram
	solveOutcomes   *prometheus.CounterVec
	suggestionTotal *prometheus.CounterVec
	groupingTotal   prometheus.Counter
}

// NewMetricsService registers the engine's Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	solveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_duration_seconds",
		Help:    "Wall-clock duration of timetable solve runs",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})

	solvePatterns := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_patterns_generated",
		Help:    "Number of distinct feasible patterns per solve run",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
	})

	solveOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_outcomes_total",
		Help: "Solve outcomes by kind",
	}, []string{"outcome"})

	suggestionTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "suggestion_requests_total",
		Help: "Suggestion ranking requests by flavor",
	}, []string{"flavor"})

	groupingTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "elective_grouping_requests_total",
		Help: "Elective grouping requests",
	})

	registry.MustRegister(requestDuration, requestTotal, solveDuration, solvePatterns, solveOutcomes, suggestionTotal, groupingTotal)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		solveDuration:   solveDuration,
		solvePatterns:   solvePatterns,
		solveOutcomes:   solveOutcomes,
		suggestionTotal: suggestionTotal,
		groupingTotal:   groupingTotal,
	}
}

// Handler exposes the /metrics endpoint.
func (m *MetricsService) Handler() http.Handler {
	return m.handler
}

// ObserveHTTPRequest records one served HTTP request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{"method": method, "path": path, "status": httpStatusLabel(status)}
	m.requestDuration.With(labels).Observe(duration.Seconds())
	m.requestTotal.With(labels).Inc()
}

// ObserveSolve records the outcome of one solve run.
func (m *MetricsService) ObserveSolve(duration time.Duration, patterns int, outcome string) {
	m.solveDuration.Observe(duration.Seconds())
	m.solvePatterns.Observe(float64(patterns))
	m.solveOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveSuggestion records one suggestion ranking request.
func (m *MetricsService) ObserveSuggestion(flavor string) {
	m.suggestionTotal.WithLabelValues(flavor).Inc()
}

// ObserveGrouping records one elective grouping request.
func (m *MetricsService) ObserveGrouping() {
	m.groupingTotal.Inc()
}

func httpStatusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
