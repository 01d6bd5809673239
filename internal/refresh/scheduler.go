package refresh

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/notacoder13/nc-lottery-backend/internal/game"
)

// DefaultInterval is how often the pipeline runs unless overridden.
const DefaultInterval = 30 * time.Minute

// Runner executes one aggregation cycle.
type Runner interface {
	Run(ctx context.Context) (game.Snapshot, error)
}

// State of the scheduler's single execution lane.
type State int

const (
	Idle State = iota
	Running
)

type runResult struct {
	snap game.Snapshot
	err  error
}

// Scheduler owns the pipeline's single execution lane. At most one run
// is in flight at any time; triggers arriving while a run is in flight
// coalesce into at most one follow-up run, no matter how many arrive.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	state   State
	pending bool
	waiters []chan runResult
}

// New creates a scheduler. A non-positive interval falls back to
// DefaultInterval.
func New(runner Runner, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{runner: runner, interval: interval, logger: logger}
}

// Start launches the ticker loop in its own goroutine. When prime is
// true an immediate run fires before the first tick; pass true when no
// persisted snapshot could be restored.
func (s *Scheduler) Start(ctx context.Context, prime bool) {
	go s.loop(ctx, prime)
}

func (s *Scheduler) loop(ctx context.Context, prime bool) {
	s.logger.Info("refresh scheduler started",
		zap.Duration("interval", s.interval),
		zap.Bool("immediate_run", prime),
	)

	if prime {
		if _, err := s.Trigger(ctx); err != nil {
			s.logger.Warn("initial refresh failed", zap.Error(err))
		}
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("refresh scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.Trigger(ctx); err != nil {
				s.logger.Warn("scheduled refresh failed", zap.Error(err))
			}
		}
	}
}

// Trigger requests a refresh and returns the snapshot the satisfying
// run produced. When the lane is idle the run executes on the calling
// goroutine. When a run is already in flight the trigger coalesces:
// one follow-up run is queued, every concurrent caller waits for it,
// and they all receive its result.
func (s *Scheduler) Trigger(ctx context.Context) (game.Snapshot, error) {
	s.mu.Lock()
	if s.state == Running {
		s.pending = true
		ch := make(chan runResult, 1)
		s.waiters = append(s.waiters, ch)
		s.mu.Unlock()

		select {
		case res := <-ch:
			return res.snap, res.err
		case <-ctx.Done():
			return game.Snapshot{}, ctx.Err()
		}
	}
	s.state = Running
	s.mu.Unlock()

	for {
		snap, err := s.runner.Run(ctx)

		s.mu.Lock()
		if s.pending {
			// A trigger landed mid-run; go around once more so the
			// waiters get a run that started after their request.
			s.pending = false
			s.mu.Unlock()
			continue
		}
		waiters := s.waiters
		s.waiters = nil
		s.state = Idle
		s.mu.Unlock()

		for _, ch := range waiters {
			ch <- runResult{snap: snap, err: err}
		}
		return snap, err
	}
}
