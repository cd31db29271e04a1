package service

import (
	"context"
	"time"

	"tally/internal/election/models"
	"tally/pkg/requestcontext"
)

// SetPeriod replaces the voting window. It may be called repeatedly until
// the election is finalized; the new start must lie in the future.
func (s *Service) SetPeriod(ctx context.Context, caller models.Identity, start, end time.Time) (period models.Period, err error) {
	ctx, done := s.begin(ctx, "set_period")
	defer done(&err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(caller); err != nil {
		return models.Period{}, err
	}
	if err := s.requireNotFinalized(); err != nil {
		return models.Period{}, err
	}
	now := requestcontext.Now(ctx)
	period, err = models.NewPeriod(start, end, now)
	if err != nil {
		return models.Period{}, err
	}

	s.period = period
	s.commit()
	s.logAudit(ctx, models.EventPeriodSet,
		"start", period.Start,
		"end", period.End,
	)
	s.emit(ctx, models.EventPeriodSet, electionKey, now, models.PeriodSet{
		Start: period.Start,
		End:   period.End,
	})
	return period, nil
}

// Period returns the current voting window; zero when unscheduled.
func (s *Service) Period() models.Period {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.period
}

// Phase classifies the request time against the voting window.
func (s *Service) Phase(ctx context.Context) models.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.period.PhaseAt(requestcontext.Now(ctx))
}

// Window returns the period and its phase at the request time from one read.
func (s *Service) Window(ctx context.Context) models.Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.period.WindowAt(requestcontext.Now(ctx))
}
