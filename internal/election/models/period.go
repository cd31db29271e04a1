package models

import "time"

// Phase is the state of the voting window relative to a point in time.
type Phase string

const (
	PhaseUnscheduled Phase = "unscheduled"
	PhaseBefore      Phase = "before"
	PhaseActive      Phase = "active"
	PhaseAfter       Phase = "after"
)

// Period is the inclusive voting window [Start, End].
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriod validates a window requested at now. The ordering check runs
// before the clock check, so an empty window is always InvalidVotingPeriod.
func NewPeriod(start, end, now time.Time) (Period, error) {
	if !start.Before(end) {
		return Period{}, InvalidVotingPeriod()
	}
	if !start.After(now) {
		return Period{}, StartTimeNotInFuture()
	}
	return Period{Start: start, End: end}, nil
}

// Scheduled reports whether a window has been set.
func (p Period) Scheduled() bool {
	return !p.Start.IsZero() || !p.End.IsZero()
}

// Window pairs a period with its phase at one instant.
type Window struct {
	Period Period
	Phase  Phase
}

// WindowAt returns p together with its phase at now.
func (p Period) WindowAt(now time.Time) Window {
	return Window{Period: p, Phase: p.PhaseAt(now)}
}

// PhaseAt classifies now against the window.
func (p Period) PhaseAt(now time.Time) Phase {
	switch {
	case !p.Scheduled():
		return PhaseUnscheduled
	case now.Before(p.Start):
		return PhaseBefore
	case now.After(p.End):
		return PhaseAfter
	default:
		return PhaseActive
	}
}

// OpenedBy reports whether the window start has been reached at now.
func (p Period) OpenedBy(now time.Time) bool {
	return p.Scheduled() && !now.Before(p.Start)
}
