package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"tally/internal/election/models"
	dErrors "tally/pkg/domain-errors"
	"tally/pkg/platform/sentinel"
	"tally/pkg/requestcontext"
)

// Snapshot copies the authoritative election state. Voters are ordered by
// identity so equal states produce equal documents.
func (s *Service) Snapshot(ctx context.Context) models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	voters := make([]models.Voter, 0, len(s.voters))
	for _, id := range slices.Sorted(maps.Keys(s.voters)) {
		voters = append(voters, *s.voters[id])
	}
	return models.Snapshot{
		Version:       models.SnapshotVersion,
		Revision:      s.revision,
		Administrator: s.admin,
		Period:        s.period,
		Finalized:     s.finalized,
		FinalizedAt:   s.finalizedAt,
		Candidates:    slices.Clone(s.candidates),
		Voters:        voters,
		WinnerIDs:     slices.Clone(s.winners),
		Stats:         s.stats,
		TakenAt:       requestcontext.Now(ctx),
	}
}

// Restore replaces the election state with snap after checking it is
// internally consistent. Voter counters and the used-card set are rebuilt
// from the voter records; vote counters must agree with candidate totals.
func (s *Service) Restore(ctx context.Context, snap models.Snapshot) (err error) {
	ctx, end := s.begin(ctx, "restore")
	defer end(&err)

	if err := s.checkSnapshot(snap); err != nil {
		return dErrors.Wrap(fmt.Errorf("%w: %w", sentinel.ErrCorrupt, err), dErrors.CodeInvariantViolation, "snapshot rejected")
	}

	voters := make(map[models.Identity]*models.Voter, len(snap.Voters))
	usedCards := make(map[string]models.Identity, len(snap.Voters))
	for i := range snap.Voters {
		v := snap.Voters[i]
		voters[v.Identity] = &v
		usedCards[v.CardID] = v.Identity
	}
	stats := snap.Stats
	stats.RecountVoters(snap.Voters)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.period = snap.Period
	s.finalized = snap.Finalized
	s.finalizedAt = snap.FinalizedAt
	s.candidates = slices.Clone(snap.Candidates)
	s.voters = voters
	s.usedCards = usedCards
	s.stats = stats
	s.winners = slices.Clone(snap.WinnerIDs)
	s.revision = snap.Revision
	if s.metrics != nil {
		s.metrics.SetTally(stats.TotalVoters(), models.Turnout(stats.TotalVotes(), stats.TotalVoters()))
		if s.finalized {
			s.metrics.SetFinalized()
		}
	}
	s.logger.InfoContext(ctx, "election restored",
		"revision", snap.Revision,
		"candidates", len(snap.Candidates),
		"voters", len(snap.Voters),
		"finalized", snap.Finalized,
		"taken_at", snap.TakenAt,
	)
	return nil
}

func (s *Service) checkSnapshot(snap models.Snapshot) error {
	if snap.Version != models.SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if snap.Administrator != s.admin {
		return fmt.Errorf("snapshot administrator %q does not match %q", snap.Administrator, s.admin)
	}
	var candidateVotes uint64
	for i, c := range snap.Candidates {
		if c.ID != i {
			return fmt.Errorf("candidate at position %d has id %d", i, c.ID)
		}
		if !c.Gender.Valid() {
			return fmt.Errorf("candidate %d has invalid gender", c.ID)
		}
		candidateVotes += c.VoteCount
	}
	if total := snap.Stats.TotalVotes(); total != candidateVotes {
		return fmt.Errorf("vote counters total %d, candidates total %d", total, candidateVotes)
	}
	identities := make(map[models.Identity]struct{}, len(snap.Voters))
	cards := make(map[string]struct{}, len(snap.Voters))
	var voted uint64
	for _, v := range snap.Voters {
		if v.Identity == "" || v.CardID == "" {
			return errors.New("voter record missing identity or card")
		}
		if !v.Gender.Valid() {
			return fmt.Errorf("voter %q has invalid gender", v.Identity)
		}
		if _, dup := identities[v.Identity]; dup {
			return fmt.Errorf("voter %q appears twice", v.Identity)
		}
		if _, dup := cards[v.CardID]; dup {
			return fmt.Errorf("card %q bound twice", v.CardID)
		}
		identities[v.Identity] = struct{}{}
		cards[v.CardID] = struct{}{}
		if v.Voted {
			voted++
		}
	}
	if voted > candidateVotes {
		return fmt.Errorf("%d voters marked voted but only %d ballots counted", voted, candidateVotes)
	}
	if !snap.Finalized && len(snap.WinnerIDs) > 0 {
		return errors.New("winners recorded before finalization")
	}
	for _, id := range snap.WinnerIDs {
		if id < 0 || id >= len(snap.Candidates) {
			return fmt.Errorf("winner id %d out of range", id)
		}
	}
	return nil
}
