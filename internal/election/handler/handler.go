// Package handler exposes the election over HTTP. Administrative commands and
// ballots require a bearer token whose subject is the caller identity; the
// read-only views are public.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"tally/internal/election/models"
	dErrors "tally/pkg/domain-errors"
	"tally/pkg/platform/httputil"
	authmw "tally/pkg/platform/middleware/auth"
	request "tally/pkg/platform/middleware/request"
	"tally/pkg/requestcontext"
)

// Service is the election surface the handlers drive.
type Service interface {
	AddCandidate(ctx context.Context, caller models.Identity, name string, gender models.Gender, party string) (models.Candidate, error)
	RegisterVoter(ctx context.Context, caller models.Identity, req models.RegisterVoterRequest) (models.Voter, error)
	RemoveVoter(ctx context.Context, caller models.Identity, identity models.Identity) error
	SetPeriod(ctx context.Context, caller models.Identity, start, end time.Time) (models.Period, error)
	Vote(ctx context.Context, identity models.Identity, candidateID int) error
	Finalize(ctx context.Context, caller models.Identity) (models.Results, error)

	Candidate(id int) (models.Candidate, error)
	Candidates() models.CandidateListing
	VoterStatus(identity models.Identity) models.VoterStatus
	Tally() models.Tally
	Window(ctx context.Context) models.Window
	Results() models.Results
}

// Handler serves the election routes.
type Handler struct {
	election     Service
	logger       *slog.Logger
	jwtValidator authmw.JWTValidator
}

func New(election Service, logger *slog.Logger, jwtValidator authmw.JWTValidator) *Handler {
	return &Handler{
		election:     election,
		logger:       logger,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the election routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/candidates", h.handleListCandidates)
	r.Get("/candidates/{id}", h.handleGetCandidate)
	r.Get("/voters/{identity}", h.handleVoterStatus)
	r.Get("/stats", h.handleStats)
	r.Get("/period", h.handleGetPeriod)
	r.Get("/results", h.handleResults)

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/votes", h.handleVote)

		r.Route("/admin", func(r chi.Router) {
			r.Put("/period", h.handleSetPeriod)
			r.Post("/candidates", h.handleAddCandidate)
			r.Post("/voters", h.handleRegisterVoter)
			r.Delete("/voters/{identity}", h.handleRemoveVoter)
			r.Post("/finalize", h.handleFinalize)
		})
	})
}

func caller(ctx context.Context) models.Identity {
	return models.Identity(requestcontext.Identity(ctx))
}

// fail writes err and logs it at a level matching its code.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	requestID := request.GetRequestID(ctx)
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestID,
			"reason", models.Reason(err),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}

func (h *Handler) handleSetPeriod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SetPeriodRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid set period request", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(ctx, w, "invalid set period request", err)
		return
	}
	period, err := h.election.SetPeriod(ctx, caller(ctx), req.Start, req.End)
	if err != nil {
		h.fail(ctx, w, "set period rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPeriodResponse(period.WindowAt(requestcontext.Now(ctx))))
}

func (h *Handler) handleAddCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req AddCandidateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid add candidate request", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(ctx, w, "invalid add candidate request", err)
		return
	}
	candidate, err := h.election.AddCandidate(ctx, caller(ctx), req.Name, *req.Gender, req.Party)
	if err != nil {
		h.fail(ctx, w, "add candidate rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, candidate)
}

func (h *Handler) handleRegisterVoter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req RegisterVoterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid register voter request", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(ctx, w, "invalid register voter request", err)
		return
	}
	voter, err := h.election.RegisterVoter(ctx, caller(ctx), req.toModel())
	if err != nil {
		h.fail(ctx, w, "register voter rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toVoterResponse(voter))
}

func (h *Handler) handleRemoveVoter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := models.ParseIdentity(chi.URLParam(r, "identity"))
	if err != nil {
		h.fail(ctx, w, "invalid remove voter request", err)
		return
	}
	if err := h.election.RemoveVoter(ctx, caller(ctx), identity); err != nil {
		h.fail(ctx, w, "remove voter rejected", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	results, err := h.election.Finalize(ctx, caller(ctx))
	if err != nil {
		h.fail(ctx, w, "finalize rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, results)
}

func (h *Handler) handleVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req VoteRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid vote request", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(ctx, w, "invalid vote request", err)
		return
	}
	if err := h.election.Vote(ctx, caller(ctx), *req.CandidateID); err != nil {
		h.fail(ctx, w, "vote rejected", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.election.Candidates())
}

func (h *Handler) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(ctx, w, "invalid candidate id", dErrors.New(dErrors.CodeBadRequest, "candidate id must be an integer"))
		return
	}
	candidate, err := h.election.Candidate(id)
	if err != nil {
		h.fail(ctx, w, "candidate lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, candidate)
}

func (h *Handler) handleVoterStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, err := models.ParseIdentity(chi.URLParam(r, "identity"))
	if err != nil {
		h.fail(ctx, w, "invalid voter status request", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.election.VoterStatus(identity))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, toStatsResponse(h.election.Tally()))
}

func (h *Handler) handleGetPeriod(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, toPeriodResponse(h.election.Window(r.Context())))
}

func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.election.Results())
}
