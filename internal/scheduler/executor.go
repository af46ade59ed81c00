package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/ragujp/prometheus-sample-configs/internal/config"
	"github.com/ragujp/prometheus-sample-configs/internal/errorwrapper"
)

// Start begins the refresh loop. The first cycle runs immediately; later
// cycles run every SchedulerConfig.CycleMinutes. Start blocks until the
// context ends or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.setRunningState(true) {
		return errorwrapper.NewError("scheduler is already running")
	}
	defer s.setRunningState(false)

	s.resetStopChannel()

	s.wg.Add(1)
	go s.runRefreshLoop(ctx)

	s.wg.Wait()
	return s.checkContextError(ctx)
}

// runRefreshLoop executes refresh cycles until stopped
func (s *Scheduler) runRefreshLoop(ctx context.Context) {
	defer s.wg.Done()

	for {
		if s.shouldStop(ctx) {
			return
		}

		s.executeRefreshCycle(ctx)

		if interrupted := s.waitForNextCycle(ctx); interrupted {
			return
		}
	}
}

// shouldStop checks whether the loop should end
func (s *Scheduler) shouldStop(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("Context cancelled, stopping refresh loop")
		return true
	case <-s.stopChan:
		s.logger.Info().Msg("Stop signal received, stopping refresh loop")
		return true
	default:
		return false
	}
}

// executeRefreshCycle rebuilds the generator from current configuration and
// runs every source once. Source failures are logged, not fatal: the next
// cycle retries with fresh state.
func (s *Scheduler) executeRefreshCycle(ctx context.Context) {
	cfg := s.configManager.GetConfig()

	gen, err := s.buildGenerator(cfg)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to build generator for refresh cycle")
		return
	}

	start := time.Now()
	summaries, err := gen.Run(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Refresh cycle completed with failed sources")
	}

	s.logger.Info().
		Int("completed_sources", len(summaries)).
		Dur("cycle_duration", time.Since(start)).
		Msg("Refresh cycle finished")
}

// waitForNextCycle sleeps until the next cycle is due. It returns true when
// the wait was interrupted by shutdown.
func (s *Scheduler) waitForNextCycle(ctx context.Context) bool {
	cycleDuration := s.cycleDuration()
	s.logger.Info().
		Time("next_run", time.Now().Add(cycleDuration)).
		Dur("wait_duration", cycleDuration).
		Msg("Waiting for next refresh cycle")

	select {
	case <-time.After(cycleDuration):
		return false
	case <-ctx.Done():
		return true
	case <-s.stopChan:
		return true
	}
}

// cycleDuration reads the cycle length from current configuration so config
// reloads take effect on the following cycle. An override pins it instead.
func (s *Scheduler) cycleDuration() time.Duration {
	cycleMinutes := s.overrideMinutes
	if cycleMinutes <= 0 {
		cycleMinutes = s.configManager.GetConfig().SchedulerConfig.CycleMinutes
	}
	if cycleMinutes <= 0 {
		cycleMinutes = config.DefaultSchedulerRefreshIntervalMins
	}
	return time.Duration(cycleMinutes) * time.Minute
}

// checkContextError maps context ends to errors, treating plain cancellation
// as a clean shutdown
func (s *Scheduler) checkContextError(ctx context.Context) error {
	if ctx.Err() != nil && !errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	return nil
}
