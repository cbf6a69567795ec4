// Package loop provides the fixed-timestep scheduler that decouples
// simulation ticks from render frames. Renderers report real elapsed
// time; the scheduler converts it into a whole number of ticks and
// carries the remainder so long runs do not drift.
package loop

import (
	"context"
	"time"
)

// maxTicksPerAdvance bounds catch-up after a long stall (debugger,
// laptop sleep) so the simulation never spirals.
const maxTicksPerAdvance = 8

// Scheduler accumulates elapsed wall time into fixed simulation ticks.
type Scheduler struct {
	tickDur time.Duration
	acc     time.Duration
	paused  bool
	ticks   uint64
}

// NewScheduler creates a scheduler running at tickRate ticks per
// second. Rates below 1 are clamped to 1.
func NewScheduler(tickRate int) *Scheduler {
	if tickRate < 1 {
		tickRate = 1
	}
	return &Scheduler{tickDur: time.Second / time.Duration(tickRate)}
}

// TickDuration returns the fixed simulation step.
func (s *Scheduler) TickDuration() time.Duration {
	return s.tickDur
}

// Ticks returns the total number of ticks granted so far.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Paused reports whether the scheduler is accumulating time.
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Pause stops tick accumulation. Elapsed time reported while paused
// is discarded rather than banked.
func (s *Scheduler) Pause() {
	s.paused = true
}

// Resume restarts accumulation from zero partial credit, so a long
// pause does not cause a burst of catch-up ticks.
func (s *Scheduler) Resume() {
	s.paused = false
	s.acc = 0
}

// Advance adds elapsed real time and returns how many whole ticks the
// simulation should run. The fractional remainder is retained for the
// next call. Catch-up is capped; time beyond the cap is dropped.
func (s *Scheduler) Advance(elapsed time.Duration) int {
	if s.paused || elapsed <= 0 {
		return 0
	}
	s.acc += elapsed
	n := int(s.acc / s.tickDur)
	if n > maxTicksPerAdvance {
		n = maxTicksPerAdvance
		s.acc = 0
	} else {
		s.acc -= time.Duration(n) * s.tickDur
	}
	s.ticks += uint64(n)
	return n
}

// Run drives a headless simulation loop until the context is
// cancelled or step returns false. render is called once per wall
// frame after the granted ticks, never between them.
func (s *Scheduler) Run(ctx context.Context, step func() bool, render func()) error {
	ticker := time.NewTicker(s.tickDur)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			n := s.Advance(now.Sub(last))
			last = now
			for i := 0; i < n; i++ {
				if !step() {
					return nil
				}
			}
			if render != nil && n > 0 {
				render()
			}
		}
	}
}
