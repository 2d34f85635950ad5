package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hrm"

// Collector owns a private registry so tests and multiple servers never
// collide on the default one.
type Collector struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	evaluationRuns  *prometheus.CounterVec
	evaluationTime  *prometheus.HistogramVec
	rejectedRecords prometheus.Counter
}

func New() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c := &Collector{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status_code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		evaluationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "evaluation",
			Name:      "runs_total",
			Help:      "Evaluation engine runs by operation.",
		}, []string{"operation"}),
		evaluationTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "evaluation",
			Name:      "run_duration_seconds",
			Help:      "Time spent loading and deriving evaluation views.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		rejectedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "evaluation",
			Name:      "rejected_records_total",
			Help:      "Malformed evaluation records excluded from processing.",
		}),
	}
	registry.MustRegister(c.requests, c.requestDuration, c.evaluationRuns, c.evaluationTime, c.rejectedRecords)
	return c
}

// Record counts one finished HTTP request. route is the matched pattern, not
// the raw path, to keep label cardinality bounded.
func (c *Collector) Record(route, method string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func (c *Collector) ObserveEvaluationRun(operation string, _ int, rejected int, duration time.Duration) {
	c.evaluationRuns.WithLabelValues(operation).Inc()
	c.evaluationTime.WithLabelValues(operation).Observe(duration.Seconds())
	if rejected > 0 {
		c.rejectedRecords.Add(float64(rejected))
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
