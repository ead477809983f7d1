// Package metrics exposes Prometheus instruments for the waitlist flow.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Its-donkey/contractually/internal/waitlist"
)

// Metrics holds the instruments registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Submissions     *prometheus.CounterVec
	UpstreamLatency prometheus.Histogram
	ActiveVisits    prometheus.Gauge
	RateLimited     prometheus.Counter
}

// New registers the instruments plus Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "waitlist_submissions_total",
			Help: "Waitlist submit attempts by outcome",
		}, []string{"outcome"}),
		UpstreamLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "waitlist_upstream_request_seconds",
			Help:    "Duration of requests to the form-collection endpoint",
			Buckets: prometheus.DefBuckets,
		}),
		ActiveVisits: factory.NewGauge(prometheus.GaugeOpts{
			Name: "waitlist_active_visits",
			Help: "Visits currently held in memory",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "waitlist_rate_limited_total",
			Help: "Submit requests rejected by the rate limiter",
		}),
	}
	for _, outcome := range []waitlist.Outcome{
		waitlist.OutcomeSucceeded,
		waitlist.OutcomeFailed,
		waitlist.OutcomeInvalid,
		waitlist.OutcomeIgnored,
	} {
		m.Submissions.WithLabelValues(string(outcome))
	}
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// RecordSubmit counts one Submit call under the outcome the controller
// reported for it.
func (m *Metrics) RecordSubmit(outcome waitlist.Outcome) {
	m.Submissions.WithLabelValues(string(outcome)).Inc()
}

// InstrumentSubmitter wraps next so every outbound call is timed.
func (m *Metrics) InstrumentSubmitter(next waitlist.Submitter) waitlist.Submitter {
	return waitlist.SubmitterFunc(func(ctx context.Context, input waitlist.FormInput) error {
		start := time.Now()
		err := next.Submit(ctx, input)
		m.UpstreamLatency.Observe(time.Since(start).Seconds())
		return err
	})
}
