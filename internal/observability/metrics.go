package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collect outcomes.
const (
	OutcomeStored      = "stored"
	OutcomeDoNotTrack  = "dnt"
	OutcomeInvalidHit  = "invalid_hit"
	OutcomeRateLimited = "rate_limited"
	OutcomeInvalidSite = "invalid_site"
	OutcomeError       = "error"
)

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	registry *prometheus.Registry

	HitsCollected    *prometheus.CounterVec
	OverviewDuration prometheus.Histogram
}

// NewMetrics creates and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		HitsCollected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_hits_collected_total",
				Help: "Collect calls by outcome",
			},
			[]string{"outcome"},
		),
		OverviewDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "analytics_overview_duration_seconds",
				Help:    "Time spent building an overview",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	reg.MustRegister(
		m.HitsCollected,
		m.OverviewDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// TrackKeys exposes the number of keys currently held by the rate limiter.
func (m *Metrics) TrackKeys(count func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "analytics_ratelimit_keys",
			Help: "Keys tracked by the in-memory rate limiter",
		},
		func() float64 { return float64(count()) },
	))
}

// ObserveCollect is safe to call on a nil receiver.
func (m *Metrics) ObserveCollect(outcome string) {
	if m == nil {
		return
	}
	m.HitsCollected.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveOverview(d time.Duration) {
	if m == nil {
		return
	}
	m.OverviewDuration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
