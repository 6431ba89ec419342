package monitoring

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// MatchMonitor tracks a batch of matches running on worker goroutines and
// periodically logs progress and goroutine growth
type MatchMonitor struct {
	mu             sync.RWMutex
	logger         zerolog.Logger
	baseline       int
	current        int
	peak           int
	checkInterval  time.Duration
	alertThreshold int
	lastAlert      time.Time
	alertCooldown  time.Duration

	inFlight  int
	completed int
	decided   int
	failed    int
	turns     int
	wins      map[int]int
}

// NewMatchMonitor creates a new monitor. interval <= 0 uses 30 seconds.
func NewMatchMonitor(logger zerolog.Logger, interval time.Duration) *MatchMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	baseline := runtime.NumGoroutine()
	return &MatchMonitor{
		logger:         logger.With().Str("component", "MatchMonitor").Logger(),
		baseline:       baseline,
		current:        baseline,
		peak:           baseline,
		checkInterval:  interval,
		alertThreshold: 1000,
		alertCooldown:  5 * time.Minute,
		wins:           make(map[int]int),
	}
}

// Start reports metrics until ctx is done
func (m *MatchMonitor) Start(ctx context.Context) {
	go m.monitor(ctx)
	m.logger.Info().
		Int("baseline", m.baseline).
		Dur("interval", m.checkInterval).
		Msg("Started match monitoring")
}

// monitor is the main reporting loop
func (m *MatchMonitor) monitor(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().
				Interface("panic", r).
				Msg("Match monitor panicked")
		}
	}()

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.check()
		case <-ctx.Done():
			return
		}
	}
}

// check samples the goroutine count and logs progress, alerting on growth
func (m *MatchMonitor) check() {
	current := runtime.NumGoroutine()

	m.mu.Lock()
	m.current = current
	if current > m.peak {
		m.peak = current
	}
	growth := current - m.baseline
	shouldAlert := current > m.alertThreshold &&
		time.Since(m.lastAlert) > m.alertCooldown
	if shouldAlert {
		m.lastAlert = time.Now()
	}
	inFlight, completed := m.inFlight, m.completed
	m.mu.Unlock()

	m.logger.Info().
		Int("in_flight", inFlight).
		Int("completed", completed).
		Int("goroutines", current).
		Int("growth", growth).
		Msg("Match progress")

	if shouldAlert {
		m.logger.Warn().
			Int("current", current).
			Int("threshold", m.alertThreshold).
			Msg("High goroutine count detected - possible leak")
	}
}

// MatchStarted records a match picked up by a worker
func (m *MatchMonitor) MatchStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight++
}

// MatchFinished records the outcome of a match. winner < 0 means no team
// won, err marks a match that stopped on an engine error.
func (m *MatchMonitor) MatchFinished(turns, winner int, decided bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--
	m.completed++
	m.turns += turns
	switch {
	case err != nil:
		m.failed++
	case decided:
		m.decided++
		if winner >= 0 {
			m.wins[winner]++
		}
	}
}

// GetMetrics returns a snapshot of the collected metrics
func (m *MatchMonitor) GetMetrics() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	avg := 0.0
	if m.completed > 0 {
		avg = float64(m.turns) / float64(m.completed)
	}
	return Metrics{
		Goroutines: m.current,
		Baseline:   m.baseline,
		Peak:       m.peak,
		InFlight:   m.inFlight,
		Completed:  m.completed,
		Decided:    m.decided,
		Failed:     m.failed,
		AvgTurns:   avg,
		Wins:       copyMap(m.wins),
	}
}

// Metrics contains match batch statistics
type Metrics struct {
	Goroutines int         `json:"goroutines"`
	Baseline   int         `json:"baseline"`
	Peak       int         `json:"peak"`
	InFlight   int         `json:"in_flight"`
	Completed  int         `json:"completed"`
	Decided    int         `json:"decided"`
	Failed     int         `json:"failed"`
	AvgTurns   float64     `json:"avg_turns"`
	Wins       map[int]int `json:"wins"`
}

func copyMap(m map[int]int) map[int]int {
	result := make(map[int]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
