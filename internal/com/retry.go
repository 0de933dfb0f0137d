package com

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// retrier reruns a unit of work while the automation server rejects it
// with a transient busy code. Sleeps happen on the worker thread, so
// queued calls stay strictly ordered behind the busy one.
type retrier struct {
	attempts int
	interval time.Duration
	timer    backoff.Timer
	recover  func()
	onRetry  func()
}

func (r *retrier) run(fn UnitOfWork) (any, error) {
	var value any
	first := true

	op := func() error {
		v, err := fn()
		if err != nil {
			if !IsTransientBusy(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		value = v
		return nil
	}

	// The first rejection usually means a modal dialog is pumping the
	// server's messages. Try dismissing it once, before the first
	// sleep; further rejections just wait.
	notify := func(error, time.Duration) {
		if first {
			first = false
			if r.recover != nil {
				r.recover()
			}
		}
		if r.onRetry != nil {
			r.onRetry()
		}
	}

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(r.interval), uint64(r.attempts-1))
	if err := backoff.RetryNotifyWithTimer(op, policy, notify, r.timer); err != nil {
		return nil, err
	}
	return value, nil
}
