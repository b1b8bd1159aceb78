package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ProgressMonitor periodically logs how far a batch of games has got
type ProgressMonitor struct {
	mu            sync.RWMutex
	total         int
	done          int
	won           int
	lost          int
	started       time.Time
	checkInterval time.Duration
	peakWorkers   int
	stopChan      chan struct{}
	stopOnce      sync.Once
	logger        zerolog.Logger
}

// NewProgressMonitor creates a monitor for total games
func NewProgressMonitor(total int, interval time.Duration, logger zerolog.Logger) *ProgressMonitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &ProgressMonitor{
		total:         total,
		started:       time.Now(),
		checkInterval: interval,
		stopChan:      make(chan struct{}),
		logger:        logger.With().Str("component", "ProgressMonitor").Logger(),
	}
}

// Start begins logging progress
func (pm *ProgressMonitor) Start() {
	go pm.monitor()
	pm.logger.Info().
		Int("total", pm.total).
		Dur("interval", pm.checkInterval).
		Msg("Started progress monitoring")
}

// Stop stops the monitor and logs the final counts. It is safe to call
// more than once.
func (pm *ProgressMonitor) Stop() {
	pm.stopOnce.Do(func() {
		close(pm.stopChan)
		pm.report("Simulation finished")
	})
}

func (pm *ProgressMonitor) monitor() {
	ticker := time.NewTicker(pm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pm.report("Simulation progress")
		case <-pm.stopChan:
			return
		}
	}
}

// GameFinished records one finished game
func (pm *ProgressMonitor) GameFinished(won, lost bool) {
	goroutines := runtime.NumGoroutine()

	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.done++
	if won {
		pm.won++
	}
	if lost {
		pm.lost++
	}
	if goroutines > pm.peakWorkers {
		pm.peakWorkers = goroutines
	}
}

func (pm *ProgressMonitor) report(msg string) {
	m := pm.GetMetrics()
	pm.logger.Info().
		Int("done", m.Done).
		Int("total", m.Total).
		Int("won", m.Won).
		Int("lost", m.Lost).
		Float64("games_per_sec", m.Rate).
		Int("peak_goroutines", m.PeakGoroutines).
		Msg(msg)
}

// GetMetrics returns the current counts
func (pm *ProgressMonitor) GetMetrics() ProgressMetrics {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	elapsed := time.Since(pm.started)
	rate := 0.0
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(pm.done) / secs
	}
	return ProgressMetrics{
		Total:          pm.total,
		Done:           pm.done,
		Won:            pm.won,
		Lost:           pm.lost,
		Elapsed:        elapsed,
		Rate:           rate,
		PeakGoroutines: pm.peakWorkers,
	}
}

// ProgressMetrics contains batch statistics
type ProgressMetrics struct {
	Total          int           `json:"total"`
	Done           int           `json:"done"`
	Won            int           `json:"won"`
	Lost           int           `json:"lost"`
	Elapsed        time.Duration `json:"elapsed"`
	Rate           float64       `json:"rate"`
	PeakGoroutines int           `json:"peak_goroutines"`
}
