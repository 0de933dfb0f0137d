package com

import (
	"context"
	"sync"
	"time"
)

// future is a single-assignment result slot. The worker completes it
// exactly once; later completions are ignored. Callers wait with a
// wall-clock timeout and honor context cancellation, but a caller
// giving up never interrupts the worker.
type future struct {
	once  sync.Once
	done  chan struct{}
	value any
	err   error
}

func newFuture() *future {
	return &future{done: make(chan struct{})}
}

func (f *future) complete(value any, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

func (f *future) wait(ctx context.Context, timeout time.Duration) (any, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C:
		return nil, ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
