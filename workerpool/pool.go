// Package workerpool runs queued jobs on a fixed number of goroutines.
package workerpool

import (
	"sync"
)

// Job is a unit of work executed by the pool.
type Job func() error

// Pool executes jobs on a bounded set of workers. Jobs added after Stop, or
// still queued when Stop is called, are discarded.
type Pool struct {
	jobs chan Job
	quit chan struct{}

	pending sync.WaitGroup
	once    sync.Once

	mu  sync.Mutex
	err error
}

// New starts a pool with the given number of workers.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		jobs: make(chan Job),
		quit: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for {
		select {
		case <-p.quit:
			return
		case job := <-p.jobs:
			if err := job(); err != nil {
				p.mu.Lock()
				if p.err == nil {
					p.err = err
				}
				p.mu.Unlock()
			}
			p.pending.Done()
		}
	}
}

// Add queues jobs for execution. It does not block on job completion.
func (p *Pool) Add(jobs []Job) {
	p.pending.Add(len(jobs))
	go func() {
		for _, job := range jobs {
			select {
			case p.jobs <- job:
			case <-p.quit:
				p.pending.Done()
			}
		}
	}()
}

// Stop shuts the workers down; queued jobs that have not started are dropped.
func (p *Pool) Stop() {
	p.once.Do(func() {
		close(p.quit)
	})
}

// Wait blocks until every added job has finished or been dropped by Stop, and
// returns the first job error observed.
func (p *Pool) Wait() error {
	p.pending.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}
