package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the election engine.
type Metrics struct {
	VotesCast          *prometheus.CounterVec
	VotersRegistered   prometheus.Counter
	VotersRemoved      prometheus.Counter
	CandidatesAdded    prometheus.Counter
	Rejections         *prometheus.CounterVec
	RegisteredVoters   prometheus.Gauge
	TurnoutBasisPoints prometheus.Gauge
	Finalized          prometheus.Gauge
	OperationDuration  *prometheus.HistogramVec
}

// New registers the election metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VotesCast: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tally_votes_cast_total",
			Help: "Total number of accepted ballots by voter gender",
		}, []string{"gender"}),
		VotersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "tally_voters_registered_total",
			Help: "Total number of successful voter registrations",
		}),
		VotersRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "tally_voters_removed_total",
			Help: "Total number of voter removals",
		}),
		CandidatesAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "tally_candidates_added_total",
			Help: "Total number of candidates added",
		}),
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tally_rejections_total",
			Help: "Total number of rejected operations by operation and reason",
		}, []string{"operation", "reason"}),
		RegisteredVoters: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tally_registered_voters",
			Help: "Current number of registered voters",
		}),
		TurnoutBasisPoints: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tally_turnout_basis_points",
			Help: "Current turnout scaled by 10000",
		}),
		Finalized: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tally_election_finalized",
			Help: "1 once the election has been finalized",
		}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tally_operation_duration_seconds",
			Help:    "Duration of election operations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncVoteCast(gender string) {
	m.VotesCast.WithLabelValues(gender).Inc()
}

func (m *Metrics) IncVoterRegistered() {
	m.VotersRegistered.Inc()
}

func (m *Metrics) IncVoterRemoved() {
	m.VotersRemoved.Inc()
}

func (m *Metrics) IncCandidateAdded() {
	m.CandidatesAdded.Inc()
}

func (m *Metrics) IncRejection(operation, reason string) {
	m.Rejections.WithLabelValues(operation, reason).Inc()
}

// SetTally publishes the current registration and turnout gauges.
func (m *Metrics) SetTally(registered, turnout uint64) {
	m.RegisteredVoters.Set(float64(registered))
	m.TurnoutBasisPoints.Set(float64(turnout))
}

func (m *Metrics) SetFinalized() {
	m.Finalized.Set(1)
}

// ObserveOperation records the duration of an operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
