package utils

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle enforces a minimum interval between consecutive calls to Wait.
// The first call never blocks.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a Throttle with the given minimum interval in milliseconds.
// An interval of zero or less disables throttling.
func NewThrottle(intervalMs int) *Throttle {
	limit := rate.Inf
	if intervalMs > 0 {
		limit = rate.Every(time.Duration(intervalMs) * time.Millisecond)
	}
	return &Throttle{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the interval since the previous call has elapsed or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// LinkSet tracks detail links that have already been seen.
type LinkSet struct {
	seen map[string]struct{}
}

// NewLinkSet creates an empty LinkSet.
func NewLinkSet() *LinkSet {
	return &LinkSet{seen: make(map[string]struct{})}
}

// Add returns true if the link was newly added, false if already present.
func (s *LinkSet) Add(link string) bool {
	if _, exists := s.seen[link]; exists {
		return false
	}
	s.seen[link] = struct{}{}
	return true
}
