package models

import (
	"encoding/json"
	"fmt"

	dErrors "tally/pkg/domain-errors"
)

// CounterKind selects which family of gender counters to adjust.
type CounterKind uint8

const (
	CounterVoters CounterKind = iota
	CounterVotes
)

// Direction is the sign of a counter adjustment.
type Direction int8

const (
	Increment Direction = 1
	Decrement Direction = -1
)

// GenderStats holds registered-voter and cast-vote counts per gender.
// It is a derived cache of the voter and candidate records; the election
// service adjusts it in the same critical section as the underlying change.
type GenderStats struct {
	voters [genderCount]uint64
	votes  [genderCount]uint64
}

// Apply adjusts one counter. Decrementing a zero counter is an invariant
// violation and leaves the stats untouched.
func (s *GenderStats) Apply(kind CounterKind, g Gender, dir Direction) error {
	if !g.Valid() {
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("invalid gender %d", uint8(g)))
	}
	counters := &s.voters
	if kind == CounterVotes {
		counters = &s.votes
	}
	if dir == Decrement {
		if counters[g] == 0 {
			return dErrors.New(dErrors.CodeInvariantViolation, "gender counter underflow")
		}
		counters[g]--
		return nil
	}
	counters[g]++
	return nil
}

func (s GenderStats) Voters(g Gender) uint64 { return s.voters[g] }
func (s GenderStats) Votes(g Gender) uint64  { return s.votes[g] }

func (s GenderStats) TotalVoters() uint64 {
	return s.voters[GenderMale] + s.voters[GenderFemale] + s.voters[GenderOther]
}

func (s GenderStats) TotalVotes() uint64 {
	return s.votes[GenderMale] + s.votes[GenderFemale] + s.votes[GenderOther]
}

// Recount rebuilds the stats from voter records. A voter who has voted
// contributes one vote in their own category.
func Recount(voters []Voter) GenderStats {
	var s GenderStats
	for _, v := range voters {
		s.voters[v.Gender]++
		if v.Voted {
			s.votes[v.Gender]++
		}
	}
	return s
}

// RecountVoters rebuilds the voter counters from voter records and leaves
// the vote counters untouched. Votes cannot be derived from voters alone:
// a voter removed after voting keeps their ballot in the tally.
func (s *GenderStats) RecountVoters(voters []Voter) {
	s.voters = [genderCount]uint64{}
	for _, v := range voters {
		s.voters[v.Gender]++
	}
}

// Turnout returns votes per registered voter scaled by 10000 with floor
// division, so 6666 reads as 66.66%. Zero voters yields zero.
func Turnout(votes, voters uint64) uint64 {
	if voters == 0 {
		return 0
	}
	return votes * 10000 / voters
}

// Tally is one consistent reading of the aggregate counters.
type Tally struct {
	Stats                 GenderStats
	TotalVotes            uint64
	TotalRegisteredVoters uint64
	TurnoutBasisPoints    uint64
}

// NewTally derives the totals and turnout from stats.
func NewTally(stats GenderStats) Tally {
	votes, voters := stats.TotalVotes(), stats.TotalVoters()
	return Tally{
		Stats:                 stats,
		TotalVotes:            votes,
		TotalRegisteredVoters: voters,
		TurnoutBasisPoints:    Turnout(votes, voters),
	}
}

type genderCounts struct {
	Male   uint64 `json:"male"`
	Female uint64 `json:"female"`
	Other  uint64 `json:"other"`
}

type genderStatsJSON struct {
	Voters genderCounts `json:"voters"`
	Votes  genderCounts `json:"votes"`
}

func (s GenderStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(genderStatsJSON{
		Voters: genderCounts{s.voters[GenderMale], s.voters[GenderFemale], s.voters[GenderOther]},
		Votes:  genderCounts{s.votes[GenderMale], s.votes[GenderFemale], s.votes[GenderOther]},
	})
}

func (s *GenderStats) UnmarshalJSON(data []byte) error {
	var raw genderStatsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.voters = [genderCount]uint64{raw.Voters.Male, raw.Voters.Female, raw.Voters.Other}
	s.votes = [genderCount]uint64{raw.Votes.Male, raw.Votes.Female, raw.Votes.Other}
	return nil
}
