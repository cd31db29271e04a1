// Package snapshot keeps a durable copy of the election. The Snapshotter
// saves whenever the election revision has moved since the last save, on a
// fixed interval and once more on shutdown. Restore seeds a fresh election
// from the stored copy at startup.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tally/internal/election/models"
	"tally/pkg/platform/sentinel"
)

const (
	defaultInterval     = 5 * time.Second
	shutdownSaveTimeout = 5 * time.Second
)

// Store persists the single election snapshot.
type Store interface {
	Save(ctx context.Context, snap models.Snapshot) error
	Load(ctx context.Context) (models.Snapshot, error)
}

// Source is the live election being persisted.
type Source interface {
	Snapshot(ctx context.Context) models.Snapshot
	Revision() uint64
}

// Target accepts a stored snapshot.
type Target interface {
	Restore(ctx context.Context, snap models.Snapshot) error
}

// Snapshotter periodically persists a Source into a Store.
type Snapshotter struct {
	source   Source
	store    Store
	interval time.Duration
	logger   *slog.Logger
	metrics  *Metrics

	mu       sync.Mutex
	saved    bool
	savedRev uint64
}

type Option func(*Snapshotter)

func WithInterval(d time.Duration) Option {
	return func(s *Snapshotter) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Snapshotter) {
		s.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Snapshotter) {
		s.metrics = m
	}
}

func New(source Source, store Store, opts ...Option) *Snapshotter {
	s := &Snapshotter{
		source:   source,
		store:    store,
		interval: defaultInterval,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MarkSaved records rev as already durable, e.g. right after a restore.
func (s *Snapshotter) MarkSaved(rev uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = true
	s.savedRev = rev
}

// Run saves on every tick until ctx is cancelled, then performs a final save
// with a detached deadline. Save failures are logged and retried next tick.
func (s *Snapshotter) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownSaveTimeout)
			defer cancel()
			if _, err := s.SaveIfChanged(saveCtx); err != nil {
				return fmt.Errorf("final snapshot: %w", err)
			}
			return nil
		case <-ticker.C:
			if _, err := s.SaveIfChanged(ctx); err != nil {
				s.logger.ErrorContext(ctx, "failed to save snapshot", "error", err)
			}
		}
	}
}

// SaveIfChanged persists the source when its revision differs from the last
// saved one. It reports whether a save happened.
func (s *Snapshotter) SaveIfChanged(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saved && s.source.Revision() == s.savedRev {
		return false, nil
	}
	start := time.Now()
	snap := s.source.Snapshot(ctx)
	if err := s.store.Save(ctx, snap); err != nil {
		if s.metrics != nil {
			s.metrics.IncFailure()
		}
		return false, err
	}
	s.saved = true
	s.savedRev = snap.Revision
	if s.metrics != nil {
		s.metrics.ObserveSave(snap.Revision, start)
	}
	s.logger.DebugContext(ctx, "snapshot saved", "revision", snap.Revision)
	return true, nil
}

// Restore loads the stored snapshot into target. It reports false when the
// store is empty.
func Restore(ctx context.Context, store Store, target Target) (models.Snapshot, bool, error) {
	snap, err := store.Load(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Snapshot{}, false, nil
	}
	if err != nil {
		return models.Snapshot{}, false, fmt.Errorf("load snapshot: %w", err)
	}
	if err := target.Restore(ctx, snap); err != nil {
		return models.Snapshot{}, false, fmt.Errorf("restore snapshot: %w", err)
	}
	return snap, true, nil
}
