package world

import (
	"context"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/samber/oops"
)

// TickRecorder receives the duration of every tick. observability.Metrics
// implements it.
type TickRecorder interface {
	Tick(d time.Duration, units int)
}

// DefaultTickInterval is the simulation step used when none is configured.
const DefaultTickInterval = 100 * time.Millisecond

// Shard runs a World on its own goroutine. Every mutation of the world,
// including the tick itself, happens inside Run; other goroutines hand work
// over with Submit or Do.
type Shard struct {
	world    *World
	interval time.Duration
	recorder TickRecorder
	logger   *slog.Logger
	// elapsed time not yet handed to the world (sub-millisecond carry)
	pending time.Duration

	tasks   chan func(*World)
	ready   atomic.Bool
	ticks   atomic.Uint64
	running atomic.Bool
}

// NewShard creates a shard ticking w every interval. recorder may be nil.
func NewShard(w *World, interval time.Duration, recorder TickRecorder) *Shard {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Shard{
		world:    w,
		interval: interval,
		recorder: recorder,
		logger:   w.logger.With("component", "shard"),
		tasks:    make(chan func(*World), 64),
	}
}

// Run ticks the world until ctx is canceled. It returns ctx.Err() on
// cancellation and an error if the shard is already running.
func (s *Shard) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return oops.Code("SHARD_RUNNING").Errorf("shard already running")
	}
	defer s.running.Store(false)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("shard started", "interval", s.interval, "units", s.world.Len())
	s.ready.Store(true)
	defer s.ready.Store(false)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shard stopping", "ticks", s.ticks.Load())
			return ctx.Err()

		case fn := <-s.tasks:
			fn(s.world)

		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			s.tick(elapsed)
		}
	}
}

func (s *Shard) tick(elapsed time.Duration) {
	start := time.Now()
	s.pending += elapsed
	ms := min(s.pending.Milliseconds(), math.MaxInt32)
	s.pending -= time.Duration(ms) * time.Millisecond
	s.world.Update(int32(ms))
	s.ticks.Add(1)
	if s.recorder != nil {
		s.recorder.Tick(time.Since(start), s.world.Len())
	}
}

// Submit queues fn to run on the shard goroutine. It blocks until the task
// is queued or ctx is done.
func (s *Shard) Submit(ctx context.Context, fn func(*World)) error {
	select {
	case s.tasks <- fn:
		return nil
	case <-ctx.Done():
		return oops.Code("SHARD_SUBMIT").Wrapf(ctx.Err(), "submitting shard task")
	}
}

// Do runs fn on the shard goroutine and waits for it to finish.
func (s *Shard) Do(ctx context.Context, fn func(*World)) error {
	done := make(chan struct{})
	if err := s.Submit(ctx, func(w *World) {
		defer close(done)
		fn(w)
	}); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return oops.Code("SHARD_SUBMIT").Wrapf(ctx.Err(), "waiting for shard task")
	}
}

// Ready reports whether the tick loop is running. Backs the readiness endpoint.
func (s *Shard) Ready() bool { return s.ready.Load() }

// Ticks returns the number of completed ticks.
func (s *Shard) Ticks() uint64 { return s.ticks.Load() }

// Interval returns the tick interval.
func (s *Shard) Interval() time.Duration { return s.interval }
