package fetch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for resolvers. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	CacheLookups  *prometheus.CounterVec
	Resolutions   *prometheus.CounterVec
	Substitutions *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trustboard_cache_lookups_total",
				Help: "Cache lookups by resource and result (hit or miss)",
			},
			[]string{"resource", "result"},
		),
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trustboard_resolutions_total",
				Help: "Completed resolutions by resource and final origin",
			},
			[]string{"resource", "origin"},
		),
		Substitutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trustboard_fixture_substitutions_total",
				Help: "Fixture data served in place of a failed fetch, by reason",
			},
			[]string{"resource", "reason"},
		),
		FetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trustboard_fetch_duration_seconds",
				Help:    "Duration of source fetches in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"resource", "result"},
		),
	}

	reg.MustRegister(m.CacheLookups, m.Resolutions, m.Substitutions, m.FetchDuration)
	return m
}

func (m *Metrics) cacheLookup(resource string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(resource, result).Inc()
}

func (m *Metrics) resolved(resource string, origin Origin) {
	if m == nil {
		return
	}
	label := string(origin)
	if origin == OriginNone {
		label = "error"
	}
	m.Resolutions.WithLabelValues(resource, label).Inc()
}

func (m *Metrics) substituted(resource, reason string) {
	if m == nil {
		return
	}
	m.Substitutions.WithLabelValues(resource, reason).Inc()
}

func (m *Metrics) fetched(resource string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.FetchDuration.WithLabelValues(resource, failureReason(err)).Observe(d.Seconds())
}
