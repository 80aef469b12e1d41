// Package metrics exposes Prometheus counters for the outreach pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generate outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeInternalError   = "internal_error"
	OutcomeGenerationError = "generation_error"
)

// Recorder is what services and middleware report to.
type Recorder interface {
	RecordGenerate(outcome string)
	RecordGenerationLatency(d time.Duration)
	RecordUserCreated()
	RecordHistoryServed(items int)
	RecordHTTPStatus(statusCode int)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	generate          *prometheus.CounterVec
	generationLatency prometheus.Histogram
	usersCreated      prometheus.Counter
	historyItems      prometheus.Counter
	httpStatus        *prometheus.CounterVec
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		generate: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outreach_generate_total",
			Help: "Generate requests by outcome.",
		}, []string{"outcome"}),
		generationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "outreach_generation_latency_seconds",
			Help:    "Latency of the message generation call.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}),
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outreach_users_created_total",
			Help: "Application users created on first sight.",
		}),
		historyItems: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outreach_history_items_served_total",
			Help: "History items returned to callers.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outreach_http_responses_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.generate,
		c.generationLatency,
		c.usersCreated,
		c.historyItems,
		c.httpStatus,
	)

	return c
}

func (c *Collector) RecordGenerate(outcome string) {
	c.generate.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordGenerationLatency(d time.Duration) {
	c.generationLatency.Observe(d.Seconds())
}

func (c *Collector) RecordUserCreated() {
	c.usersCreated.Inc()
}

func (c *Collector) RecordHistoryServed(items int) {
	c.historyItems.Add(float64(items))
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordGenerate(string) {}
func (Nop) RecordGenerationLatency(time.Duration) {}
func (Nop) RecordUserCreated() {}
func (Nop) RecordHistoryServed(int) {}
func (Nop) RecordHTTPStatus(int) {}

var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = Nop{}
)
