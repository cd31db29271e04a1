package service

import (
	"context"
	"strings"

	"tally/internal/election/models"
	"tally/pkg/requestcontext"
)

// AddCandidate appends a candidate with the next sequential id.
func (s *Service) AddCandidate(ctx context.Context, caller models.Identity, name string, gender models.Gender, party string) (candidate models.Candidate, err error) {
	ctx, end := s.begin(ctx, "add_candidate")
	defer end(&err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(caller); err != nil {
		return models.Candidate{}, err
	}
	if err := s.requireNotFinalized(); err != nil {
		return models.Candidate{}, err
	}
	candidate, err = models.NewCandidate(len(s.candidates), name, gender, party)
	if err != nil {
		return models.Candidate{}, err
	}

	now := requestcontext.Now(ctx)
	s.candidates = append(s.candidates, candidate)
	s.commit()
	if s.metrics != nil {
		s.metrics.IncCandidateAdded()
	}
	s.logAudit(ctx, models.EventCandidateAdded,
		"candidate_id", candidate.ID,
		"party", candidate.Party,
	)
	s.emit(ctx, models.EventCandidateAdded, electionKey, now, models.CandidateAdded{
		CandidateID: candidate.ID,
		Name:        candidate.Name,
		Party:       candidate.Party,
		Gender:      candidate.Gender,
	})
	return candidate, nil
}

// RegisterVoter binds an identity card to a new registration.
//
// Eligibility is checked in a fixed order: age, card reuse, card expiry,
// duplicate identity. The first failing rule decides the rejection.
func (s *Service) RegisterVoter(ctx context.Context, caller models.Identity, req models.RegisterVoterRequest) (voter models.Voter, err error) {
	ctx, end := s.begin(ctx, "register_voter")
	defer end(&err)

	req.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(caller); err != nil {
		return models.Voter{}, err
	}
	if err := req.Validate(); err != nil {
		return models.Voter{}, err
	}
	now := requestcontext.Now(ctx)
	if req.Age < models.MinimumVoterAge {
		return models.Voter{}, models.VoterUnderage(req.Age)
	}
	if _, used := s.usedCards[req.CardID]; used {
		return models.Voter{}, models.CardAlreadyUsed(req.CardID)
	}
	if !req.CardExpiry.After(now) {
		return models.Voter{}, models.CardExpired(req.CardID)
	}
	if _, exists := s.voters[req.Identity]; exists {
		return models.Voter{}, models.VoterAlreadyRegistered(req.Identity)
	}

	if err := s.stats.Apply(models.CounterVoters, req.Gender, models.Increment); err != nil {
		return models.Voter{}, err
	}
	v := &models.Voter{
		Identity:     req.Identity,
		Age:          req.Age,
		CardID:       req.CardID,
		CardExpiry:   req.CardExpiry,
		Gender:       req.Gender,
		RegisteredAt: now,
	}
	s.voters[v.Identity] = v
	s.usedCards[v.CardID] = v.Identity
	s.commit()
	if s.metrics != nil {
		s.metrics.IncVoterRegistered()
	}
	s.logAudit(ctx, models.EventVoterRegistered,
		"identity", v.Identity.String(),
		"gender", v.Gender.String(),
	)
	s.emit(ctx, models.EventVoterRegistered, v.Identity.String(), now, models.VoterRegistered{
		Identity: v.Identity,
		Gender:   v.Gender,
	})
	return *v, nil
}

// RemoveVoter erases a registration and frees its card. Removal is only
// possible before the voting window opens.
func (s *Service) RemoveVoter(ctx context.Context, caller models.Identity, identity models.Identity) (err error) {
	ctx, end := s.begin(ctx, "remove_voter")
	defer end(&err)

	identity = models.Identity(strings.TrimSpace(string(identity)))

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	if err := s.requireNotFinalized(); err != nil {
		return err
	}
	now := requestcontext.Now(ctx)
	if s.period.OpenedBy(now) {
		return models.RemovalAfterWindowOpened()
	}
	v, ok := s.voters[identity]
	if !ok {
		return models.VoterNotRegistered(identity)
	}

	if err := s.stats.Apply(models.CounterVoters, v.Gender, models.Decrement); err != nil {
		return err
	}
	delete(s.usedCards, v.CardID)
	delete(s.voters, identity)
	s.commit()
	if s.metrics != nil {
		s.metrics.IncVoterRemoved()
	}
	s.logAudit(ctx, models.EventVoterRemoved, "identity", identity.String())
	s.emit(ctx, models.EventVoterRemoved, identity.String(), now, models.VoterRemoved{Identity: identity})
	return nil
}
