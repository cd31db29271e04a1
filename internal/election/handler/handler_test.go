package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tally/internal/election/handler/mocks"
	"tally/internal/election/models"
	jwttoken "tally/internal/jwt_token"
	"tally/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	jwt     *jwttoken.JWTService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.jwt = jwttoken.NewJWTService("test-key", "tally", "tally-api")

	h := New(s.service, slog.New(slog.DiscardHandler), jwttoken.NewJWTServiceAdapter(s.jwt))
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) bearer(req *http.Request, identity string) *http.Request {
	token, err := s.jwt.GenerateToken(identity, time.Hour)
	s.Require().NoError(err)
	return testutil.WithBearer(req, token)
}

func (s *HandlerSuite) TestVote() {
	s.Run("requires a bearer token", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes", map[string]any{"candidate_id": 0})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("casts the ballot as the token subject", func() {
		s.service.EXPECT().Vote(gomock.Any(), models.Identity("alice"), 2).Return(nil)

		req := s.bearer(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes", map[string]any{"candidate_id": 2}), "alice")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
	})

	s.Run("candidate id is required", func() {
		req := s.bearer(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes", map[string]any{}), "alice")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("unknown fields are rejected", func() {
		req := s.bearer(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes", map[string]any{"candidate_id": 1, "weight": 2}), "alice")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("rejections map to their transport code", func() {
		s.service.EXPECT().Vote(gomock.Any(), models.Identity("alice"), 0).Return(models.AlreadyVoted("alice"))

		req := s.bearer(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes", map[string]any{"candidate_id": 0}), "alice")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusConflict)
		body := testutil.UnmarshalErrorResponse(s.T(), rr)
		s.Equal("conflict", body["error"])
		s.Contains(body["error_description"], "already voted")
	})

	s.Run("internal errors hide their description", func() {
		s.service.EXPECT().Vote(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("lock poisoned"))

		req := s.bearer(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes", map[string]any{"candidate_id": 0}), "alice")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
		body := testutil.UnmarshalErrorResponse(s.T(), rr)
		s.Equal("internal_error", body["error"])
		s.Empty(body["error_description"])
	})
}

func (s *HandlerSuite) TestAdminRoutes() {
	s.Run("add candidate passes the caller through", func() {
		s.service.EXPECT().
			AddCandidate(gomock.Any(), models.Identity("admin"), "Ada", models.GenderFemale, "P1").
			Return(models.Candidate{ID: 0, Name: "Ada", Party: "P1", Gender: models.GenderFemale}, nil)

		req := s.bearer(testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/candidates",
			map[string]any{"name": "Ada", "party": "P1", "gender": "female"}), "admin")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "gender", "female")
	})

	s.Run("unknown gender is a bad request", func() {
		req := s.bearer(testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/candidates",
			map[string]any{"name": "Ada", "party": "P1", "gender": "robot"}), "admin")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("non-administrator is forbidden", func() {
		s.service.EXPECT().
			Finalize(gomock.Any(), models.Identity("mallory")).
			Return(models.Results{}, models.NotAdministrator("mallory"))

		req := s.bearer(testutil.NewRequest(s.T(), http.MethodPost, "/admin/finalize"), "mallory")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	})

	s.Run("register voter hides the card binding", func() {
		expiry := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
		s.service.EXPECT().
			RegisterVoter(gomock.Any(), models.Identity("admin"), models.RegisterVoterRequest{
				Identity: "alice", Age: 30, CardID: "C1", CardExpiry: expiry, Gender: models.GenderFemale,
			}).
			Return(models.Voter{Identity: "alice", Age: 30, CardID: "C1", CardExpiry: expiry, Gender: models.GenderFemale}, nil)

		req := s.bearer(testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/voters", map[string]any{
			"identity": "alice", "age": 30, "card_id": "C1", "card_expiry": expiry, "gender": "f",
		}), "admin")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		s.NotContains(rr.Body.String(), "C1")
	})

	s.Run("remove voter", func() {
		s.service.EXPECT().RemoveVoter(gomock.Any(), models.Identity("admin"), models.Identity("alice")).Return(nil)

		req := s.bearer(testutil.NewRequest(s.T(), http.MethodDelete, "/admin/voters/alice"), "admin")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
	})

	s.Run("set period reports the phase of the window it set", func() {
		start := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		end := start.Add(time.Hour)
		s.service.EXPECT().SetPeriod(gomock.Any(), models.Identity("admin"), gomock.Any(), gomock.Any()).
			Return(models.Period{Start: start, End: end}, nil)

		req := s.bearer(testutil.NewJSONRequest(s.T(), http.MethodPut, "/admin/period",
			map[string]any{"start": start, "end": end}), "admin")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[PeriodResponse](s.T(), rr)
		s.True(resp.Scheduled)
		s.Equal(models.PhaseBefore, resp.Phase)
		s.Require().NotNil(resp.Start)
		s.True(start.Equal(*resp.Start))
	})

	s.Run("set period requires both bounds", func() {
		req := s.bearer(testutil.NewJSONRequest(s.T(), http.MethodPut, "/admin/period",
			map[string]any{"start": time.Now().Add(time.Hour)}), "admin")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})
}

func (s *HandlerSuite) TestPublicRoutes() {
	s.Run("candidate id must be numeric", func() {
		rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/candidates/abc", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("unknown candidate is not found", func() {
		s.service.EXPECT().Candidate(9).Return(models.Candidate{}, models.InvalidCandidate(9))
		rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/candidates/9", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("unscheduled period omits bounds", func() {
		s.service.EXPECT().Window(gomock.Any()).Return(models.Period{}.WindowAt(time.Now()))

		rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/period", nil))
		testutil.AssertStatusOK(s.T(), rr)
		s.JSONEq(`{"scheduled":false,"phase":"unscheduled"}`, rr.Body.String())
	})

	s.Run("stats come from a single tally", func() {
		var stats models.GenderStats
		s.Require().NoError(stats.Apply(models.CounterVoters, models.GenderMale, models.Increment))
		s.Require().NoError(stats.Apply(models.CounterVoters, models.GenderFemale, models.Increment))
		s.Require().NoError(stats.Apply(models.CounterVoters, models.GenderOther, models.Increment))
		s.Require().NoError(stats.Apply(models.CounterVotes, models.GenderFemale, models.Increment))
		s.Require().NoError(stats.Apply(models.CounterVotes, models.GenderOther, models.Increment))
		s.service.EXPECT().Tally().Return(models.NewTally(stats)).Times(1)

		rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/stats", nil))
		testutil.AssertStatusOK(s.T(), rr)
		s.JSONEq(`{
			"stats": {"voters": {"male":1,"female":1,"other":1}, "votes": {"male":0,"female":1,"other":1}},
			"total_votes": 2,
			"total_registered_voters": 3,
			"turnout_basis_points": 6666
		}`, rr.Body.String())
	})

	s.Run("voter status needs no token", func() {
		s.service.EXPECT().VoterStatus(models.Identity("bob")).Return(models.VoterStatus{Registered: true})
		rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/voters/bob", nil))
		testutil.AssertStatusOK(s.T(), rr)
		s.JSONEq(`{"registered":true,"voted":false}`, rr.Body.String())
	})
}
