package llm

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool runs provider calls on a fixed number of workers.
//
// A slot is held for as long as the call runs, not for as long as anyone waits
// on it: a call abandoned at its deadline keeps its slot until it returns.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool creates a pool with size workers (minimum 1).
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size))}
}

// Go runs fn on a worker once one is free. It returns ctx.Err() if ctx ends
// before a worker frees up; fn is not run in that case.
func (p *Pool) Go(ctx context.Context, fn func()) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	go func() {
		defer p.sem.Release(1)
		fn()
	}()
	return nil
}
