package models

import "time"

// Results is the outcome of the election. Winners is empty until the
// election is finalized with at least one vote cast.
type Results struct {
	Finalized   bool        `json:"finalized"`
	FinalizedAt time.Time   `json:"finalized_at,omitzero"`
	TotalVotes  uint64      `json:"total_votes"`
	Winners     []Candidate `json:"winners"`
}

// ResolveWinners returns every candidate holding the maximum vote count, in
// ascending id order. It scans twice: once for the maximum, once to collect.
// No votes means no winners.
func ResolveWinners(candidates []Candidate, totalVotes uint64) []Candidate {
	if totalVotes == 0 {
		return nil
	}
	var highest uint64
	for _, c := range candidates {
		if c.VoteCount > highest {
			highest = c.VoteCount
		}
	}
	var winners []Candidate
	for _, c := range candidates {
		if c.VoteCount == highest {
			winners = append(winners, c)
		}
	}
	return winners
}
