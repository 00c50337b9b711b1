// Package parallel runs independent jobs on a fixed number of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type Pool struct {
	workers sync.WaitGroup
	pending sync.WaitGroup
	jobs    chan func()
	stop    func()
}

// Start launches numWorkers goroutines, or GOMAXPROCS when numWorkers is
// below 1. A pool of one worker runs jobs inline in Go.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{stop: func() {}}
	if numWorkers == 1 {
		return pool
	}

	pool.jobs = make(chan func(), numWorkers)
	for range numWorkers {
		pool.workers.Go(func() {
			for f := range pool.jobs {
				f()
			}
		})
	}
	pool.stop = sync.OnceFunc(func() { close(pool.jobs) })

	return pool
}

// Go queues f, blocking while every worker is busy and the queue is full.
// It must not be called after Close.
func (p *Pool) Go(f func()) {
	p.pending.Add(1)
	if p.jobs == nil {
		defer p.pending.Done()
		f()
		return
	}
	p.jobs <- func() {
		defer p.pending.Done()
		f()
	}
}

// Wait blocks until every job queued so far has finished. The pool stays
// usable.
func (p *Pool) Wait() {
	p.pending.Wait()
}

// Close finishes the queued jobs and stops the workers.
func (p *Pool) Close() {
	p.stop()
	p.workers.Wait()
}
