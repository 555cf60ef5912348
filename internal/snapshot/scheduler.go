package snapshot

import (
	"context"
	"time"

	"github.com/marqs-app/marqs/internal/logger"
)

// Scheduler captures a snapshot on a fixed interval, on top of the captures
// every store mutation already triggers.
type Scheduler struct {
	manager  *Manager
	log      logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewScheduler creates a periodic snapshot scheduler.
func NewScheduler(manager *Manager, log logger.Logger, interval time.Duration) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		manager:  manager,
		log:      log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic capture process
func (s *Scheduler) Start(ctx context.Context) error {
	// Capture immediately on start
	if err := s.manager.Capture(ctx); err != nil {
		s.log.Warn("initial snapshot capture failed", logger.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.manager.Capture(ctx); err != nil {
					s.log.Error("periodic snapshot capture failed", logger.Error(err))
				}
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stopCh)
}
