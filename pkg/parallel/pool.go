// Package parallel provides a small worker pool with a task barrier.
package parallel

import (
	"runtime"
	"sync"
)

// Pool runs submitted functions on a fixed set of workers.
// With a single worker every function runs inline on the caller.
type Pool struct {
	work    chan func()
	workers sync.WaitGroup
	tasks   sync.WaitGroup
	close   func()
	size    int
}

// Start launches numWorkers workers. Values below 1 use GOMAXPROCS.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		close: func() {},
		size:  numWorkers,
	}

	if numWorkers > 1 {
		pool.work = make(chan func(), numWorkers)

		for range numWorkers {
			pool.workers.Go(func() {
				for f := range pool.work {
					f()
					pool.tasks.Done()
				}
			})
		}

		pool.close = sync.OnceFunc(func() {
			close(pool.work)
			pool.workers.Wait()
		})
	}

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Do schedules f. It must not be called after Close.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.tasks.Add(1)
	p.work <- f
}

// Wait blocks until every function scheduled so far has returned.
func (p *Pool) Wait() {
	p.tasks.Wait()
}

// Close stops the workers after the pending functions finish.
func (p *Pool) Close() {
	p.Wait()
	p.close()
}
