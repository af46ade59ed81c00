// Package scheduler re-runs the target-file generation pipeline on a fixed
// cycle. Configuration is re-read at the start of every cycle so hot-reloaded
// changes apply without a restart.
package scheduler

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ragujp/prometheus-sample-configs/internal/config"
	"github.com/ragujp/prometheus-sample-configs/internal/generator"
	"github.com/ragujp/prometheus-sample-configs/internal/models"
)

// cycleRunner executes one refresh cycle.
type cycleRunner interface {
	Run(ctx context.Context) ([]models.RunSummary, error)
}

// Scheduler manages periodic refresh runs
type Scheduler struct {
	configManager   *config.ConfigManager
	buildGenerator  func(cfg *config.GlobalConfig) (cycleRunner, error)
	logger          zerolog.Logger
	stopChan        chan struct{}
	wg              sync.WaitGroup
	isRunning       bool
	isStopped       bool
	mu              sync.Mutex
	stopOnce        sync.Once
	overrideMinutes int
}

// NewScheduler creates a new Scheduler instance. The generator is rebuilt
// from the current configuration at the start of every cycle.
func NewScheduler(configManager *config.ConfigManager, logger zerolog.Logger) *Scheduler {
	schedulerLogger := logger.With().Str("module", "Scheduler").Logger()

	return &Scheduler{
		configManager: configManager,
		buildGenerator: func(cfg *config.GlobalConfig) (cycleRunner, error) {
			return generator.New(cfg, logger)
		},
		logger:   schedulerLogger,
		stopChan: make(chan struct{}),
	}
}

// OverrideCycleMinutes pins the cycle length, taking precedence over the
// configuration file for the lifetime of the scheduler. Call before Start.
func (s *Scheduler) OverrideCycleMinutes(minutes int) {
	s.overrideMinutes = minutes
}

// setRunningState safely sets the running state
func (s *Scheduler) setRunningState(running bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStopped {
		return false
	}

	if running && s.isRunning {
		return false
	}
	s.isRunning = running
	return true
}

// resetStopChannel resets the stop channel
func (s *Scheduler) resetStopChannel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isStopped = false
	s.stopOnce = sync.Once{}

	select {
	case <-s.stopChan:
		// Channel already closed
	default:
		close(s.stopChan)
	}

	s.stopChan = make(chan struct{})
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info().Msg("Stopping scheduler...")

		s.mu.Lock()
		if s.isStopped {
			s.mu.Unlock()
			return
		}
		s.isStopped = true
		s.mu.Unlock()

		select {
		case <-s.stopChan:
			// Channel already closed
		default:
			close(s.stopChan)
		}

		s.wg.Wait()

		s.logger.Info().Msg("Scheduler stopped")
	})
}
