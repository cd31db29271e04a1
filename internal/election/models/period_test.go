package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriod(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("empty window is invalid regardless of clock", func(t *testing.T) {
		for _, at := range []time.Time{now.Add(-time.Hour), now, now.Add(time.Hour)} {
			_, err := NewPeriod(at, at, now)
			assert.ErrorIs(t, err, ErrInvalidVotingPeriod)
		}
	})

	t.Run("reversed window is invalid", func(t *testing.T) {
		_, err := NewPeriod(now.Add(2*time.Hour), now.Add(time.Hour), now)
		assert.ErrorIs(t, err, ErrInvalidVotingPeriod)
	})

	t.Run("start must be strictly in the future", func(t *testing.T) {
		_, err := NewPeriod(now, now.Add(time.Hour), now)
		assert.ErrorIs(t, err, ErrStartTimeNotInFuture)
	})

	t.Run("accepts a future window", func(t *testing.T) {
		p, err := NewPeriod(now.Add(time.Hour), now.Add(2*time.Hour), now)
		require.NoError(t, err)
		assert.True(t, p.Scheduled())
	})
}

func TestPhaseAt(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	p := Period{Start: start, End: end}

	tests := []struct {
		name string
		at   time.Time
		want Phase
	}{
		{"before start", start.Add(-time.Nanosecond), PhaseBefore},
		{"at start", start, PhaseActive},
		{"inside", start.Add(30 * time.Minute), PhaseActive},
		{"at end", end, PhaseActive},
		{"after end", end.Add(time.Nanosecond), PhaseAfter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.PhaseAt(tt.at))
		})
	}

	assert.Equal(t, PhaseUnscheduled, Period{}.PhaseAt(start))
}

func TestOpenedBy(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	p := Period{Start: start, End: start.Add(time.Hour)}

	assert.False(t, p.OpenedBy(start.Add(-time.Second)))
	assert.True(t, p.OpenedBy(start))
	assert.True(t, p.OpenedBy(start.Add(2*time.Hour)))
	assert.False(t, Period{}.OpenedBy(start))
}
