// Package metrics exposes Prometheus instrumentation for the activity log.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	envelopesRecorded *prometheus.CounterVec
	pagesServed       *prometheus.CounterVec
	pageDuration      *prometheus.HistogramVec
	unknownEventShape *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		envelopesRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "activity_envelopes_recorded_total",
			Help: "Number of activity envelopes appended, by event kind.",
		}, []string{"kind"}),
		pagesServed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "activity_pages_served_total",
			Help: "Number of activity pages served, by entity type.",
		}, []string{"entity_type"}),
		pageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "activity_page_duration_seconds",
			Help:    "Time to assemble an activity page, by entity type.",
			Buckets: prometheus.DefBuckets,
		}, []string{"entity_type"}),
		unknownEventShape: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "activity_unknown_event_shape_total",
			Help: "Envelopes whose (kind, version) had no registered decoder.",
		}, []string{"kind"}),
	}
}

func (m *Metrics) IncrementEnvelopesRecorded(kind string) {
	if m == nil {
		return
	}
	m.envelopesRecorded.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObservePageServed(entityType string, d time.Duration) {
	if m == nil {
		return
	}
	m.pagesServed.WithLabelValues(entityType).Inc()
	m.pageDuration.WithLabelValues(entityType).Observe(d.Seconds())
}

func (m *Metrics) IncrementUnknownEventShape(kind string) {
	if m == nil {
		return
	}
	m.unknownEventShape.WithLabelValues(kind).Inc()
}
