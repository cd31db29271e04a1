package models

import (
	"errors"
	"fmt"
	"time"

	dErrors "tally/pkg/domain-errors"
)

// Rejection kinds. Every failed operation wraps exactly one of these, so
// callers can match with errors.Is and transports with dErrors.HasCode.
var (
	ErrNotAdministrator         = errors.New("caller is not the administrator")
	ErrVotingNotActive          = errors.New("voting is not active")
	ErrVoterUnderage            = errors.New("voter is under the minimum age")
	ErrCardAlreadyUsed          = errors.New("identity card already bound to a registration")
	ErrCardExpired              = errors.New("identity card has expired")
	ErrVoterNotRegistered       = errors.New("voter is not registered")
	ErrAlreadyVoted             = errors.New("voter has already voted")
	ErrInvalidCandidate         = errors.New("candidate does not exist")
	ErrElectionAlreadyFinalized = errors.New("election already finalized")
	ErrVotingWindowNotClosed    = errors.New("voting window has not closed")
	ErrInvalidVotingPeriod      = errors.New("voting period start must be before end")
	ErrStartTimeNotInFuture     = errors.New("voting period must start in the future")
	ErrEmptyCandidateName       = errors.New("candidate name is required")
	ErrEmptyPartyName           = errors.New("party name is required")
	ErrVoterAlreadyRegistered   = errors.New("voter is already registered")
	ErrRemovalAfterWindowOpened = errors.New("voters cannot be removed once the voting window has opened")
)

// MinimumVoterAge is the inclusive age threshold for registration.
const MinimumVoterAge = 18

type rejection struct {
	kind   error
	code   dErrors.Code
	reason string
}

var rejections = []rejection{
	{ErrNotAdministrator, dErrors.CodeForbidden, "not_administrator"},
	{ErrVotingNotActive, dErrors.CodeConflict, "voting_not_active"},
	{ErrVoterUnderage, dErrors.CodeValidation, "voter_underage"},
	{ErrCardAlreadyUsed, dErrors.CodeConflict, "card_already_used"},
	{ErrCardExpired, dErrors.CodeValidation, "card_expired"},
	{ErrVoterNotRegistered, dErrors.CodeNotFound, "voter_not_registered"},
	{ErrAlreadyVoted, dErrors.CodeConflict, "already_voted"},
	{ErrInvalidCandidate, dErrors.CodeNotFound, "invalid_candidate"},
	{ErrElectionAlreadyFinalized, dErrors.CodeConflict, "election_already_finalized"},
	{ErrVotingWindowNotClosed, dErrors.CodeConflict, "voting_window_not_closed"},
	{ErrInvalidVotingPeriod, dErrors.CodeValidation, "invalid_voting_period"},
	{ErrStartTimeNotInFuture, dErrors.CodeValidation, "start_time_not_in_future"},
	{ErrEmptyCandidateName, dErrors.CodeValidation, "empty_candidate_name"},
	{ErrEmptyPartyName, dErrors.CodeValidation, "empty_party_name"},
	{ErrVoterAlreadyRegistered, dErrors.CodeConflict, "voter_already_registered"},
	{ErrRemovalAfterWindowOpened, dErrors.CodeConflict, "removal_after_window_opened"},
}

func reject(kind error, detail string) error {
	for _, r := range rejections {
		if r.kind == kind {
			return dErrors.Wrap(kind, r.code, detail)
		}
	}
	return dErrors.Wrap(kind, dErrors.CodeInternal, detail)
}

// Reason returns a stable label for the rejection kind wrapped by err,
// or "other" when err is not a rejection.
func Reason(err error) string {
	for _, r := range rejections {
		if errors.Is(err, r.kind) {
			return r.reason
		}
	}
	return "other"
}

func NotAdministrator(caller Identity) error {
	return reject(ErrNotAdministrator, fmt.Sprintf("caller %q", caller))
}

func VotingNotActive(now time.Time) error {
	return reject(ErrVotingNotActive, "at "+now.UTC().Format(time.RFC3339))
}

func VoterUnderage(age int) error {
	return reject(ErrVoterUnderage, fmt.Sprintf("age %d", age))
}

func CardAlreadyUsed(cardID string) error {
	return reject(ErrCardAlreadyUsed, fmt.Sprintf("card %q", cardID))
}

func CardExpired(cardID string) error {
	return reject(ErrCardExpired, fmt.Sprintf("card %q", cardID))
}

func VoterNotRegistered(identity Identity) error {
	return reject(ErrVoterNotRegistered, fmt.Sprintf("identity %q", identity))
}

func AlreadyVoted(identity Identity) error {
	return reject(ErrAlreadyVoted, fmt.Sprintf("identity %q", identity))
}

func InvalidCandidate(id int) error {
	return reject(ErrInvalidCandidate, fmt.Sprintf("candidate %d", id))
}

func ElectionAlreadyFinalized() error {
	return reject(ErrElectionAlreadyFinalized, "")
}

func VotingWindowNotClosed() error {
	return reject(ErrVotingWindowNotClosed, "")
}

func InvalidVotingPeriod() error {
	return reject(ErrInvalidVotingPeriod, "")
}

func StartTimeNotInFuture() error {
	return reject(ErrStartTimeNotInFuture, "")
}

func EmptyCandidateName() error {
	return reject(ErrEmptyCandidateName, "")
}

func EmptyPartyName() error {
	return reject(ErrEmptyPartyName, "")
}

func VoterAlreadyRegistered(identity Identity) error {
	return reject(ErrVoterAlreadyRegistered, fmt.Sprintf("identity %q", identity))
}

func RemovalAfterWindowOpened() error {
	return reject(ErrRemovalAfterWindowOpened, "")
}
