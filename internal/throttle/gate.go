// Package throttle provides a fixed-interval gate used to space out calls to
// rate-limited external hosts. Every marketplace and oracle call passes a gate
// before going out; two calls to the same host are never issued back-to-back
// without the configured pause.
package throttle

import (
	"context"
	"sync"
	"time"
)

// Gate enforces a minimum interval between successive calls. The zero value
// is not usable; construct with NewGate. Safe for concurrent use: callers
// queue up and are released one interval apart, in arrival order.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

// NewGate returns a gate releasing at most one caller per interval.
// A zero or negative interval yields a gate that never blocks.
func NewGate(interval time.Duration) *Gate {
	if interval < 0 {
		interval = 0
	}
	return &Gate{interval: interval}
}

// Wait blocks until the caller's slot opens or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	if g.interval == 0 {
		return ctx.Err()
	}

	g.mu.Lock()
	now := time.Now()
	wait := g.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	// Reserve the next slot immediately so concurrent callers stack up
	// one interval apart instead of racing for the same slot.
	g.next = now.Add(wait + g.interval)
	g.mu.Unlock()

	if wait == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Interval reports the configured spacing.
func (g *Gate) Interval() time.Duration {
	return g.interval
}
