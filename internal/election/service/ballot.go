package service

import (
	"context"
	"strings"

	"tally/internal/election/models"
	"tally/pkg/requestcontext"
)

// Vote records one ballot for candidateID on behalf of identity.
//
// Checks run in order: window active, voter registered, not yet voted, card
// unexpired, candidate exists. This is the only path that changes a
// candidate's vote count.
func (s *Service) Vote(ctx context.Context, identity models.Identity, candidateID int) (err error) {
	ctx, end := s.begin(ctx, "vote")
	defer end(&err)

	identity = models.Identity(strings.TrimSpace(string(identity)))

	s.mu.Lock()
	defer s.mu.Unlock()

	now := requestcontext.Now(ctx)
	if s.period.PhaseAt(now) != models.PhaseActive {
		return models.VotingNotActive(now)
	}
	v, ok := s.voters[identity]
	if !ok {
		return models.VoterNotRegistered(identity)
	}
	if v.Voted {
		return models.AlreadyVoted(identity)
	}
	if !v.CardValidAt(now) {
		return models.CardExpired(v.CardID)
	}
	if candidateID < 0 || candidateID >= len(s.candidates) {
		return models.InvalidCandidate(candidateID)
	}

	// Counter first: it is the only step that can fail.
	if err := s.stats.Apply(models.CounterVotes, v.Gender, models.Increment); err != nil {
		return err
	}
	v.Voted = true
	s.candidates[candidateID].VoteCount++
	s.commit()
	if s.metrics != nil {
		s.metrics.IncVoteCast(v.Gender.String())
	}
	s.logAudit(ctx, models.EventVoteCast,
		"identity", identity.String(),
		"candidate_id", candidateID,
	)
	s.emit(ctx, models.EventVoteCast, identity.String(), now, models.VoteCast{
		Identity:    identity,
		CandidateID: candidateID,
	})
	return nil
}
