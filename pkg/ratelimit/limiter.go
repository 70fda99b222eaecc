package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter paces browser actions
type Limiter interface {
	// Wait blocks until an action may run or ctx is done
	Wait(ctx context.Context) error
}

// Unlimited never blocks
type Unlimited struct{}

func (Unlimited) Wait(context.Context) error { return nil }

// SlidingWindow allows at most maxActions within any windowSize span
type SlidingWindow struct {
	windowSize time.Duration
	maxActions int
	actions    []time.Time
	now        func() time.Time
	mu         sync.Mutex
}

// NewSlidingWindow creates a sliding window limiter
func NewSlidingWindow(maxActions int, windowSize time.Duration) *SlidingWindow {
	return &SlidingWindow{
		windowSize: windowSize,
		maxActions: maxActions,
		actions:    make([]time.Time, 0, maxActions),
		now:        time.Now,
	}
}

// PerMinute returns a limiter allowing n actions per minute, or Unlimited
// when n is not positive
func PerMinute(n int) Limiter {
	if n <= 0 {
		return Unlimited{}
	}
	return NewSlidingWindow(n, time.Minute)
}

// Wait blocks until an action is allowed
func (sw *SlidingWindow) Wait(ctx context.Context) error {
	for {
		sw.mu.Lock()
		wait, ok := sw.reserve()
		sw.mu.Unlock()
		if ok {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// reserve records an action when the window has room; otherwise it returns
// how long until the oldest action leaves the window. Caller holds mu.
func (sw *SlidingWindow) reserve() (time.Duration, bool) {
	now := sw.now()
	sw.cleanOldActions(now)

	if len(sw.actions) < sw.maxActions {
		sw.actions = append(sw.actions, now)
		return 0, true
	}

	wait := sw.windowSize - now.Sub(sw.actions[0])
	if wait <= 0 {
		wait = time.Millisecond
	}
	return wait, false
}

// cleanOldActions removes actions outside the sliding window
func (sw *SlidingWindow) cleanOldActions(now time.Time) {
	cutoff := now.Add(-sw.windowSize)

	i := 0
	for i < len(sw.actions) && !sw.actions[i].After(cutoff) {
		i++
	}

	if i > 0 {
		copy(sw.actions, sw.actions[i:])
		sw.actions = sw.actions[:len(sw.actions)-i]
	}
}
