package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerStaysClosedBelowThreshold(t *testing.T) {
	b := newBreaker(3, time.Hour)

	b.Failure()
	b.Failure()
	assert.True(t, b.Allow())
}

func TestBreakerOpensAtThreshold(t *testing.T) {
	b := newBreaker(3, time.Hour)

	b.Failure()
	b.Failure()
	b.Failure()
	assert.False(t, b.Allow())
}

func TestBreakerSuccessResetsFailures(t *testing.T) {
	b := newBreaker(3, time.Hour)

	b.Failure()
	b.Failure()
	b.Success()
	b.Failure()
	b.Failure()
	assert.True(t, b.Allow())
}

func TestBreakerProbesAfterCooldown(t *testing.T) {
	b := newBreaker(1, 10*time.Millisecond)

	b.Failure()
	assert.False(t, b.Allow())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, b.Allow(), "probe allowed after cool-down")

	b.Failure()
	assert.False(t, b.Allow(), "failed probe reopens the breaker")

	time.Sleep(20 * time.Millisecond)
	assert.True(t, b.Allow())
	b.Success()
	assert.True(t, b.Allow())
}
