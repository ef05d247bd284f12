package async

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Pool runs submitted jobs on a fixed number of worker goroutines.
type Pool struct {
	jobs   chan func()
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewPool starts size workers. A non-positive size falls back to GOMAXPROCS.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}

	p := &Pool{jobs: make(chan func())}

	p.wg.Add(size)
	for range size {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		job()
	}
}

// Close stops accepting jobs and waits for queued and running ones to finish.
// Calling Close more than once is a no-op.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}

// Submit queues fn on the pool and returns its Future. If ctx is done before a
// worker picks the job up, the Future completes with the context error and fn
// never runs.
func Submit[T any, U any](ctx context.Context, p *Pool, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := newFuture[U]()

	job := func() {
		defer func() {
			if r := recover(); r != nil {
				var zero U
				f.complete(zero, fmt.Errorf("async: job panicked: %v", r))
			}
		}()

		if err := ctx.Err(); err != nil {
			var zero U
			f.complete(zero, err)
			return
		}

		res, err := fn(ctx, param)
		f.complete(res, err)
	}

	// Read lock keeps Close from closing the channel under a pending send.
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		var zero U
		f.complete(zero, ErrPoolClosed)
		return f
	}

	select {
	case p.jobs <- job:
	case <-ctx.Done():
		var zero U
		f.complete(zero, ctx.Err())
	}

	return f
}
