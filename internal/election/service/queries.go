package service

import (
	"strings"

	"tally/internal/election/models"
)

// Candidate returns a single candidate with its current vote count.
func (s *Service) Candidate(id int) (models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 0 || id >= len(s.candidates) {
		return models.Candidate{}, models.InvalidCandidate(id)
	}
	return s.candidates[id], nil
}

// Candidates returns the candidate table in ascending id order.
func (s *Service) Candidates() models.CandidateListing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.NewCandidateListing(s.candidates)
}

// VoterStatus reports whether identity is registered and whether it has
// voted. Unknown identities are simply unregistered.
func (s *Service) VoterStatus(identity models.Identity) models.VoterStatus {
	identity = models.Identity(strings.TrimSpace(string(identity)))
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.voters[identity]
	if !ok {
		return models.VoterStatus{}
	}
	return models.VoterStatus{Registered: true, Voted: v.Voted}
}

func (s *Service) GenderStats() models.GenderStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *Service) TotalVotes() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.TotalVotes()
}

func (s *Service) TotalRegisteredVoters() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.TotalVoters()
}

// Tally reads the gender counters, totals and turnout under one lock.
func (s *Service) Tally() models.Tally {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.NewTally(s.stats)
}

// Turnout is total votes per registered voter in basis points.
func (s *Service) Turnout() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Turnout(s.stats.TotalVotes(), s.stats.TotalVoters())
}

// Results returns the finalized flag and the winners. Before finalization
// the winner list is empty.
func (s *Service) Results() models.Results {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resultsLocked()
}

func (s *Service) resultsLocked() models.Results {
	r := models.Results{
		Finalized:   s.finalized,
		FinalizedAt: s.finalizedAt,
		TotalVotes:  s.stats.TotalVotes(),
		Winners:     make([]models.Candidate, 0, len(s.winners)),
	}
	for _, id := range s.winners {
		r.Winners = append(r.Winners, s.candidates[id])
	}
	return r
}
