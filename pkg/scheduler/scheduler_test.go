package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunsJobsOnInterval(t *testing.T) {
	var runs int32

	s := New()
	s.Add("tick", 10*time.Millisecond, func() error {
		atomic.AddInt32(&runs, 1)
		return nil
	})
	s.Start()

	time.Sleep(100 * time.Millisecond)
	s.Stop()

	count := atomic.LoadInt32(&runs)
	assert.GreaterOrEqual(t, count, int32(2))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, count, atomic.LoadInt32(&runs), "jobs must not run after Stop")
}

func TestSchedulerRunsMultipleJobs(t *testing.T) {
	var first, second int32

	s := New()
	s.Add("first", 10*time.Millisecond, func() error {
		atomic.AddInt32(&first, 1)
		return nil
	})
	s.Add("second", 10*time.Millisecond, func() error {
		atomic.AddInt32(&second, 1)
		return nil
	})
	s.Start()

	time.Sleep(100 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, atomic.LoadInt32(&first), int32(1))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&second), int32(1))
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	s := New()
	s.Add("noop", time.Second, func() error { return nil })
	s.Stop()
}

func TestSchedulerStartIsIdempotent(t *testing.T) {
	var runs int32

	s := New()
	s.Add("tick", 10*time.Millisecond, func() error {
		atomic.AddInt32(&runs, 1)
		return nil
	})
	s.Start()
	s.Start()

	time.Sleep(50 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, atomic.LoadInt32(&runs), int32(1))
}
