// Package service implements the election state machine: registry, voting
// window, ballot processing, finalization and the read-only query surface.
//
// One Service is one election. Every mutation runs under a single write lock
// so the registry, the gender counters and the finalized latch change together;
// queries take the read lock and observe a consistent state.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	electionmetrics "tally/internal/election/metrics"
	"tally/internal/election/models"
	"tally/internal/notify"
	dErrors "tally/pkg/domain-errors"
	"tally/pkg/requestcontext"
)

const tracerName = "tally/internal/election/service"

// electionKey is the notification key for election-wide events.
const electionKey = "election"

// Publisher receives state-change notifications.
type Publisher interface {
	Emit(ctx context.Context, event notify.Event) error
}

// Service is a single election session.
type Service struct {
	mu          sync.RWMutex
	admin       models.Identity
	period      models.Period
	finalized   bool
	finalizedAt time.Time
	candidates  []models.Candidate
	voters      map[models.Identity]*models.Voter
	usedCards   map[string]models.Identity
	stats       models.GenderStats
	winners     []int
	revision    uint64

	logger    *slog.Logger
	publisher Publisher
	metrics   *electionmetrics.Metrics
	tracer    trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithPublisher(publisher Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithMetrics(m *electionmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// New constructs an empty election administered by admin.
func New(admin models.Identity, opts ...Option) (*Service, error) {
	admin = models.Identity(strings.TrimSpace(string(admin)))
	if admin == "" {
		return nil, errors.New("administrator identity is required")
	}
	s := &Service{
		admin:     admin,
		voters:    make(map[models.Identity]*models.Voter),
		usedCards: make(map[string]models.Identity),
		logger:    slog.New(slog.DiscardHandler),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Administrator returns the identity allowed to run administrative commands.
func (s *Service) Administrator() models.Identity {
	return s.admin
}

// Revision increases by one with every applied mutation.
func (s *Service) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Service) requireAdmin(caller models.Identity) error {
	if caller != s.admin {
		return models.NotAdministrator(caller)
	}
	return nil
}

func (s *Service) requireNotFinalized() error {
	if s.finalized {
		return models.ElectionAlreadyFinalized()
	}
	return nil
}

// begin opens a span for op; the returned func closes it and records the
// outcome. Call it deferred with a pointer to the named error result.
func (s *Service) begin(ctx context.Context, op string) (context.Context, func(*error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "election."+op)
	return ctx, func(errp *error) {
		if err := *errp; err != nil {
			reason := models.Reason(err)
			span.RecordError(err)
			span.SetAttributes(attribute.String("election.rejection_reason", reason))
			span.SetStatus(codes.Error, reason)
			s.recordRejection(ctx, op, err)
		}
		span.End()
		if s.metrics != nil {
			s.metrics.ObserveOperation(op, start)
		}
	}
}

func (s *Service) recordRejection(ctx context.Context, op string, err error) {
	reason := models.Reason(err)
	level := slog.LevelWarn
	if dErrors.HasCode(err, dErrors.CodeInternal) || dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		level = slog.LevelError
	}
	s.logger.Log(ctx, level, "election operation rejected",
		"operation", op,
		"reason", reason,
		"error", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.metrics != nil {
		s.metrics.IncRejection(op, reason)
	}
}

// commit bumps the revision and refreshes gauges. Callers hold the write lock.
func (s *Service) commit() {
	s.revision++
	if s.metrics != nil {
		s.metrics.SetTally(s.stats.TotalVoters(), models.Turnout(s.stats.TotalVotes(), s.stats.TotalVoters()))
	}
}

// emit publishes a notification. Callers hold the write lock so event order
// follows state-change order. Publisher failures never fail the operation.
func (s *Service) emit(ctx context.Context, eventType models.EventType, key string, now time.Time, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Emit(ctx, notify.NewEvent(string(eventType), key, now, payload)); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit notification",
			"event_type", string(eventType),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

func (s *Service) logAudit(ctx context.Context, event models.EventType, attributes ...any) {
	args := append(attributes,
		"event", string(event),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.logger.InfoContext(ctx, string(event), args...)
}
