package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestMatchMonitor_Outcomes(t *testing.T) {
	m := NewMatchMonitor(zerolog.Nop(), time.Hour)

	m.MatchStarted()
	m.MatchStarted()
	m.MatchStarted()
	assert.Equal(t, 3, m.GetMetrics().InFlight)

	m.MatchFinished(10, 1, true, nil)
	m.MatchFinished(20, -1, true, nil)
	m.MatchFinished(6, -1, false, errors.New("boom"))

	got := m.GetMetrics()
	assert.Zero(t, got.InFlight)
	assert.Equal(t, 3, got.Completed)
	assert.Equal(t, 2, got.Decided)
	assert.Equal(t, 1, got.Failed)
	assert.InDelta(t, 12.0, got.AvgTurns, 0.001)
	assert.Equal(t, map[int]int{1: 1}, got.Wins)
}

func TestMatchMonitor_MetricsAreCopies(t *testing.T) {
	m := NewMatchMonitor(zerolog.Nop(), 0)
	assert.Equal(t, 30*time.Second, m.checkInterval)

	m.MatchStarted()
	m.MatchFinished(3, 0, true, nil)
	got := m.GetMetrics()
	got.Wins[0] = 99

	assert.Equal(t, 1, m.GetMetrics().Wins[0])
}

func TestMatchMonitor_CheckTracksPeak(t *testing.T) {
	m := NewMatchMonitor(zerolog.Nop(), time.Hour)
	m.peak = 0

	m.check()

	got := m.GetMetrics()
	assert.Positive(t, got.Goroutines)
	assert.GreaterOrEqual(t, got.Peak, got.Goroutines)
}

func TestMatchMonitor_StopsWithContext(t *testing.T) {
	m := NewMatchMonitor(zerolog.Nop(), time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx)

	time.Sleep(5 * time.Millisecond)
	cancel()

	assert.Eventually(t, func() bool {
		return m.GetMetrics().Peak >= m.GetMetrics().Baseline
	}, time.Second, 10*time.Millisecond)
}
