package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vqms"

// Join outcomes.
const (
	JoinAccepted = "accepted"
	JoinInvalid  = "invalid"
	JoinFailed   = "failed"
)

// Metrics owns its registry so tests can build as many as they like.
// Every recorder is safe on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	// Request metrics
	requestDuration *prometheus.HistogramVec
	requests        *prometheus.CounterVec
	errors          *prometheus.CounterVec

	// Domain metrics
	projectsCreated    prometheus.Counter
	projectsDeleted    prometheus.Counter
	apiKeysRegenerated prometheus.Counter
	entrantsJoined     *prometheus.CounterVec
	entrantsServed     prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "path"},
		),
		errors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_errors_total",
				Help:      "Total number of API responses with status >= 400",
			},
			[]string{"method", "path", "status"},
		),

		projectsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projects_created_total",
			Help:      "Projects created",
		}),
		projectsDeleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projects_deleted_total",
			Help:      "Projects deleted",
		}),
		apiKeysRegenerated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_keys_regenerated_total",
			Help:      "Project api keys replaced",
		}),
		entrantsJoined: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entrant_join_attempts_total",
				Help:      "Join form submissions by outcome",
			},
			[]string{"result"},
		),
		entrantsServed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entrants_served_total",
			Help:      "Entrants taken from the head of a queue",
		}),
	}
}

// Handler serves this registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware tracks request count, duration and errors by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.requests.With(prometheus.Labels{"method": method, "path": path}).Inc()
		m.requestDuration.With(prometheus.Labels{
			"method": method,
			"path":   path,
			"status": status,
		}).Observe(time.Since(start).Seconds())

		if c.Writer.Status() >= 400 {
			m.errors.With(prometheus.Labels{
				"method": method,
				"path":   path,
				"status": status,
			}).Inc()
		}
	}
}

func (m *Metrics) RecordProjectCreated() {
	if m != nil {
		m.projectsCreated.Inc()
	}
}

func (m *Metrics) RecordProjectDeleted() {
	if m != nil {
		m.projectsDeleted.Inc()
	}
}

func (m *Metrics) RecordAPIKeyRegenerated() {
	if m != nil {
		m.apiKeysRegenerated.Inc()
	}
}

func (m *Metrics) RecordJoin(result string) {
	if m != nil {
		m.entrantsJoined.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) RecordServed() {
	if m != nil {
		m.entrantsServed.Inc()
	}
}
