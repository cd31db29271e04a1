package models

import "time"

// SnapshotVersion is bumped whenever the Snapshot layout changes.
const SnapshotVersion = 1

// Snapshot is a self-contained copy of an election's authoritative state.
// The used-card set and the voter counters in Stats are derived from Voters
// on restore; only the vote counters are taken as stored.
type Snapshot struct {
	Version       int         `json:"version"`
	Revision      uint64      `json:"revision"`
	Administrator Identity    `json:"administrator"`
	Period        Period      `json:"period"`
	Finalized     bool        `json:"finalized"`
	FinalizedAt   time.Time   `json:"finalized_at,omitzero"`
	Candidates    []Candidate `json:"candidates"`
	Voters        []Voter     `json:"voters"`
	WinnerIDs     []int       `json:"winner_ids"`
	Stats         GenderStats `json:"stats"`
	TakenAt       time.Time   `json:"taken_at"`
}
