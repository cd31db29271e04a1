package models

import (
	"strings"
	"time"

	dErrors "tally/pkg/domain-errors"
)

// Voter is an active registration. A voter record exists only while the
// identity is registered; removal deletes it.
//
// Invariants:
//   - Age is at least MinimumVoterAge
//   - CardID is bound to this registration alone
//   - Voted flips to true at most once and is never reset
type Voter struct {
	Identity     Identity  `json:"identity"`
	Age          int       `json:"age"`
	CardID       string    `json:"card_id"`
	CardExpiry   time.Time `json:"card_expiry"`
	Gender       Gender    `json:"gender"`
	Voted        bool      `json:"voted"`
	RegisteredAt time.Time `json:"registered_at"`
}

// RegisterVoterRequest carries the administrator's registration input.
type RegisterVoterRequest struct {
	Identity   Identity
	Age        int
	CardID     string
	CardExpiry time.Time
	Gender     Gender
}

// Normalize trims free-text fields.
func (r *RegisterVoterRequest) Normalize() {
	r.Identity = Identity(strings.TrimSpace(string(r.Identity)))
	r.CardID = strings.TrimSpace(r.CardID)
}

// Validate checks shape only; eligibility rules are enforced by the registry
// in their documented order.
func (r *RegisterVoterRequest) Validate() error {
	if r.Identity == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "identity is required")
	}
	if r.CardID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "card id is required")
	}
	if !r.Gender.Valid() {
		return dErrors.New(dErrors.CodeValidation, "gender is invalid")
	}
	return nil
}

// CardValidAt reports whether the identity card is unexpired at now.
// Expiry is exclusive: a card expiring exactly at now is expired.
func (v *Voter) CardValidAt(now time.Time) bool {
	return v.CardExpiry.After(now)
}

// VoterStatus is the public per-identity view.
type VoterStatus struct {
	Registered bool `json:"registered"`
	Voted      bool `json:"voted"`
}
