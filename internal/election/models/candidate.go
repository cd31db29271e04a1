package models

import (
	"strings"

	dErrors "tally/pkg/domain-errors"
)

// Candidate is a ballot option. Candidates are append-only and identified by
// their zero-based registration order.
type Candidate struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Party     string `json:"party"`
	Gender    Gender `json:"gender"`
	VoteCount uint64 `json:"vote_count"`
}

// NewCandidate validates and builds a candidate with no votes.
func NewCandidate(id int, name string, gender Gender, party string) (Candidate, error) {
	name = strings.TrimSpace(name)
	party = strings.TrimSpace(party)
	if name == "" {
		return Candidate{}, EmptyCandidateName()
	}
	if party == "" {
		return Candidate{}, EmptyPartyName()
	}
	if !gender.Valid() {
		return Candidate{}, dErrors.New(dErrors.CodeValidation, "gender is invalid")
	}
	return Candidate{ID: id, Name: name, Party: party, Gender: gender}, nil
}

// CandidateListing is the full candidate table as parallel columns in
// ascending id order.
type CandidateListing struct {
	IDs     []int    `json:"ids"`
	Names   []string `json:"names"`
	Votes   []uint64 `json:"votes"`
	Genders []Gender `json:"genders"`
	Parties []string `json:"parties"`
}

// NewCandidateListing splits candidates into parallel columns.
func NewCandidateListing(candidates []Candidate) CandidateListing {
	n := len(candidates)
	l := CandidateListing{
		IDs:     make([]int, 0, n),
		Names:   make([]string, 0, n),
		Votes:   make([]uint64, 0, n),
		Genders: make([]Gender, 0, n),
		Parties: make([]string, 0, n),
	}
	for _, c := range candidates {
		l.IDs = append(l.IDs, c.ID)
		l.Names = append(l.Names, c.Name)
		l.Votes = append(l.Votes, c.VoteCount)
		l.Genders = append(l.Genders, c.Gender)
		l.Parties = append(l.Parties, c.Party)
	}
	return l
}
