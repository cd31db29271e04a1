package service

import (
	"context"

	"tally/internal/election/models"
	"tally/pkg/requestcontext"
)

// Finalize closes the election and resolves the winners. It is accepted
// once, after the voting window has ended.
func (s *Service) Finalize(ctx context.Context, caller models.Identity) (results models.Results, err error) {
	ctx, end := s.begin(ctx, "finalize")
	defer end(&err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(caller); err != nil {
		return models.Results{}, err
	}
	now := requestcontext.Now(ctx)
	if s.period.PhaseAt(now) != models.PhaseAfter {
		return models.Results{}, models.VotingWindowNotClosed()
	}
	if err := s.requireNotFinalized(); err != nil {
		return models.Results{}, err
	}

	total := s.stats.TotalVotes()
	winners := models.ResolveWinners(s.candidates, total)
	s.finalized = true
	s.finalizedAt = now
	s.winners = make([]int, 0, len(winners))
	for _, w := range winners {
		s.winners = append(s.winners, w.ID)
	}
	s.commit()
	if s.metrics != nil {
		s.metrics.SetFinalized()
	}

	s.logAudit(ctx, models.EventElectionFinalized,
		"total_votes", total,
		"winner_count", len(winners),
	)
	s.emit(ctx, models.EventElectionFinalized, electionKey, now, models.ElectionFinalized{
		TotalVotes:  total,
		WinnerCount: len(winners),
	})
	for _, w := range winners {
		s.emit(ctx, models.EventWinnerDeclared, electionKey, now, models.WinnerDeclared{
			CandidateID: w.ID,
			Name:        w.Name,
			VoteCount:   w.VoteCount,
		})
	}
	return s.resultsLocked(), nil
}
