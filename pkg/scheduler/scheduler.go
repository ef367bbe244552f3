package scheduler

import (
	"log"
	"sync"
	"time"
)

// Job is a periodic task executed on a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func() error
}

// Scheduler drives registered jobs on independent fixed-interval tickers.
// Each job runs on its own goroutine; repeated failures open a breaker
// that skips cycles until a cool-down has passed.
type Scheduler struct {
	jobs    []*Job
	stop    chan struct{}
	wg      sync.WaitGroup
	started bool
	stopped bool
	mu      sync.Mutex
}

func New() *Scheduler {
	return &Scheduler{
		jobs: make([]*Job, 0),
		stop: make(chan struct{}),
	}
}

func (s *Scheduler) Add(name string, interval time.Duration, run func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, &Job{Name: name, Interval: interval, Run: run})
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}
	log.Printf("Scheduler started with %d job(s)", len(s.jobs))
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()
	close(s.stop)
	s.wg.Wait()
}

func (s *Scheduler) runJob(job *Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	breaker := newBreaker(5, 6*job.Interval)

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if !breaker.Allow() {
				log.Printf("Job %s skipped: breaker open", job.Name)
				continue
			}
			if err := job.Run(); err != nil {
				log.Printf("Job %s failed: %v", job.Name, err)
				breaker.Failure()
			} else {
				breaker.Success()
			}
		}
	}
}
