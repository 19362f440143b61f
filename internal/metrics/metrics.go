package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPCollector exposes Prometheus metrics for inbound HTTP requests.
type HTTPCollector struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

// NewHTTPCollector constructs a collector with default histograms/counters.
func NewHTTPCollector() (*HTTPCollector, error) {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "campusmatch",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for inbound HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusmatch",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of inbound HTTP requests.",
	}, []string{"method", "path", "status"})

	if err := registry.Register(requestDuration); err != nil {
		return nil, err
	}

	if err := registry.Register(requestTotal); err != nil {
		return nil, err
	}

	collector := &HTTPCollector{
		registry:        registry,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}

	return collector, nil
}

// Registry returns the underlying registry so other collectors can share the
// same /metrics endpoint.
func (c *HTTPCollector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *HTTPCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler to record HTTP metrics.
func (c *HTTPCollector) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.status)
		path := r.URL.Path

		c.requestTotal.WithLabelValues(r.Method, path, status).Inc()
		c.requestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// MatchingCollector exposes Prometheus metrics for matching runs.
type MatchingCollector struct {
	pairsScored    *prometheus.CounterVec
	matchesCreated prometheus.Counter
	runDuration    prometheus.Histogram
}

// NewMatchingCollector constructs matching-run metrics registered on the
// provided registerer.
func NewMatchingCollector(reg prometheus.Registerer) (*MatchingCollector, error) {
	pairsScored := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusmatch",
		Subsystem: "matching",
		Name:      "pairs_scored_total",
		Help:      "Total number of candidate pairs sent to the scorer.",
	}, []string{"outcome"})

	matchesCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "campusmatch",
		Subsystem: "matching",
		Name:      "matches_created_total",
		Help:      "Total number of matches persisted by matching runs.",
	})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "campusmatch",
		Subsystem: "matching",
		Name:      "run_duration_seconds",
		Help:      "Latency distribution for full matching passes.",
		Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600},
	})

	if err := reg.Register(pairsScored); err != nil {
		return nil, err
	}
	if err := reg.Register(matchesCreated); err != nil {
		return nil, err
	}
	if err := reg.Register(runDuration); err != nil {
		return nil, err
	}

	return &MatchingCollector{
		pairsScored:    pairsScored,
		matchesCreated: matchesCreated,
		runDuration:    runDuration,
	}, nil
}

// ObservePair records one scored pair. Failed pairs are those that collapsed
// to the sentinel assessment.
func (c *MatchingCollector) ObservePair(failed bool) {
	if c == nil {
		return
	}
	outcome := "scored"
	if failed {
		outcome = "failed"
	}
	c.pairsScored.WithLabelValues(outcome).Inc()
}

// ObserveRun records the duration of a full matching pass and how many
// matches it created.
func (c *MatchingCollector) ObserveRun(duration time.Duration, created int) {
	if c == nil {
		return
	}
	c.runDuration.Observe(duration.Seconds())
	c.matchesCreated.Add(float64(created))
}
