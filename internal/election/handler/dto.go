package handler

import (
	"time"

	"tally/internal/election/models"
	dErrors "tally/pkg/domain-errors"
)

type SetPeriodRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r *SetPeriodRequest) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "start and end are required")
	}
	return nil
}

type AddCandidateRequest struct {
	Name   string         `json:"name"`
	Party  string         `json:"party"`
	Gender *models.Gender `json:"gender"`
}

func (r *AddCandidateRequest) Validate() error {
	if r.Gender == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "gender is required")
	}
	return nil
}

type RegisterVoterRequest struct {
	Identity   string         `json:"identity"`
	Age        int            `json:"age"`
	CardID     string         `json:"card_id"`
	CardExpiry time.Time      `json:"card_expiry"`
	Gender     *models.Gender `json:"gender"`
}

func (r *RegisterVoterRequest) Validate() error {
	if r.Gender == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "gender is required")
	}
	if r.CardExpiry.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "card_expiry is required")
	}
	return nil
}

func (r *RegisterVoterRequest) toModel() models.RegisterVoterRequest {
	return models.RegisterVoterRequest{
		Identity:   models.Identity(r.Identity),
		Age:        r.Age,
		CardID:     r.CardID,
		CardExpiry: r.CardExpiry,
		Gender:     *r.Gender,
	}
}

type VoteRequest struct {
	CandidateID *int `json:"candidate_id"`
}

func (r *VoteRequest) Validate() error {
	if r.CandidateID == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "candidate_id is required")
	}
	return nil
}

// VoterResponse omits the card binding.
type VoterResponse struct {
	Identity     models.Identity `json:"identity"`
	Gender       models.Gender   `json:"gender"`
	Voted        bool            `json:"voted"`
	RegisteredAt time.Time       `json:"registered_at"`
}

func toVoterResponse(v models.Voter) VoterResponse {
	return VoterResponse{
		Identity:     v.Identity,
		Gender:       v.Gender,
		Voted:        v.Voted,
		RegisteredAt: v.RegisteredAt,
	}
}

type PeriodResponse struct {
	Scheduled bool         `json:"scheduled"`
	Start     *time.Time   `json:"start,omitempty"`
	End       *time.Time   `json:"end,omitempty"`
	Phase     models.Phase `json:"phase"`
}

func toPeriodResponse(window models.Window) PeriodResponse {
	p := window.Period
	resp := PeriodResponse{Scheduled: p.Scheduled(), Phase: window.Phase}
	if resp.Scheduled {
		resp.Start = &p.Start
		resp.End = &p.End
	}
	return resp
}

type StatsResponse struct {
	Stats                 models.GenderStats `json:"stats"`
	TotalVotes            uint64             `json:"total_votes"`
	TotalRegisteredVoters uint64             `json:"total_registered_voters"`
	TurnoutBasisPoints    uint64             `json:"turnout_basis_points"`
}

func toStatsResponse(t models.Tally) StatsResponse {
	return StatsResponse{
		Stats:                 t.Stats,
		TotalVotes:            t.TotalVotes,
		TotalRegisteredVoters: t.TotalRegisteredVoters,
		TurnoutBasisPoints:    t.TurnoutBasisPoints,
	}
}
