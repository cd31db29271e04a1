package models

import "time"

// EventType names a state-change notification.
type EventType string

const (
	EventVoteCast          EventType = "vote_cast"
	EventVoterRegistered   EventType = "voter_registered"
	EventVoterRemoved      EventType = "voter_removed"
	EventCandidateAdded    EventType = "candidate_added"
	EventPeriodSet         EventType = "period_set"
	EventElectionFinalized EventType = "election_finalized"
	EventWinnerDeclared    EventType = "winner_declared"
)

type VoteCast struct {
	Identity    Identity `json:"identity"`
	CandidateID int      `json:"candidate_id"`
}

type VoterRegistered struct {
	Identity Identity `json:"identity"`
	Gender   Gender   `json:"gender"`
}

type VoterRemoved struct {
	Identity Identity `json:"identity"`
}

type CandidateAdded struct {
	CandidateID int    `json:"candidate_id"`
	Name        string `json:"name"`
	Party       string `json:"party"`
	Gender      Gender `json:"gender"`
}

type PeriodSet struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ElectionFinalized struct {
	TotalVotes  uint64 `json:"total_votes"`
	WinnerCount int    `json:"winner_count"`
}

type WinnerDeclared struct {
	CandidateID int    `json:"candidate_id"`
	Name        string `json:"name"`
	VoteCount   uint64 `json:"vote_count"`
}
