package scheduler

import (
	"sync"
	"time"
)

// breaker keeps a failing job from hammering the store every cycle.
// After maxFailures consecutive failures it opens for the cool-down
// period, then lets a single probe run through; the probe's outcome
// closes or reopens it.
type breaker struct {
	maxFailures int
	cooldown    time.Duration
	failures    int
	openedAt    time.Time
	open        bool
	probing     bool
	mu          sync.Mutex
}

func newBreaker(maxFailures int, cooldown time.Duration) *breaker {
	return &breaker{
		maxFailures: maxFailures,
		cooldown:    cooldown,
	}
}

func (b *breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return true
	}
	if time.Since(b.openedAt) >= b.cooldown {
		b.probing = true
		return true
	}
	return false
}

func (b *breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	if b.probing || b.failures >= b.maxFailures {
		b.open = true
		b.probing = false
		b.openedAt = time.Now()
	}
}

func (b *breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	b.open = false
	b.probing = false
}
