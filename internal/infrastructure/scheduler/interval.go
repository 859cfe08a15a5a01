package scheduler

import (
	"context"
	"time"

	"ListingsMonitor/internal/ports"
)

// IntervalScheduler triggers runs on a fixed interval. The job executes
// inline in the ticker goroutine, so runs never overlap.
type IntervalScheduler struct {
	interval       time.Duration
	runImmediately bool
	stop           chan struct{}
}

var _ ports.Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler builds a scheduler firing every interval.
func NewIntervalScheduler(interval time.Duration, runImmediately bool) *IntervalScheduler {
	return &IntervalScheduler{interval: interval, runImmediately: runImmediately}
}

// Start begins ticking until the context is done or Stop is called.
func (s *IntervalScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	if s.stop != nil {
		return nil
	}

	s.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		if s.runImmediately {
			job(time.Now())
		}
		for {
			select {
			case t := <-ticker.C:
				job(t)
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine.
func (s *IntervalScheduler) Stop(ctx context.Context) error {
	if s.stop == nil {
		return nil
	}
	close(s.stop)
	s.stop = nil
	return nil
}
