package snapshot

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Saves         prometheus.Counter
	SaveFailures  prometheus.Counter
	SavedRevision prometheus.Gauge
	SaveDuration  prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Saves: factory.NewCounter(prometheus.CounterOpts{
			Name: "tally_snapshot_saves_total",
			Help: "Total number of snapshots persisted",
		}),
		SaveFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "tally_snapshot_save_failures_total",
			Help: "Total number of failed snapshot saves",
		}),
		SavedRevision: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tally_snapshot_saved_revision",
			Help: "Election revision of the most recent persisted snapshot",
		}),
		SaveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tally_snapshot_save_duration_seconds",
			Help:    "Duration of snapshot saves",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncFailure() {
	m.SaveFailures.Inc()
}

// ObserveSave records a successful save started at start.
func (m *Metrics) ObserveSave(revision uint64, start time.Time) {
	m.Saves.Inc()
	m.SavedRevision.Set(float64(revision))
	m.SaveDuration.Observe(time.Since(start).Seconds())
}
