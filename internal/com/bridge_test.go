package com

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidewire/slidewire/internal/logging"
)

type fakeApartment struct {
	initErr error
	inits   atomic.Int32
	uninits atomic.Int32
}

func (a *fakeApartment) Initialize() error {
	a.inits.Add(1)
	return a.initErr
}

func (a *fakeApartment) Uninitialize() {
	a.uninits.Add(1)
}

// instantTimer fires retry sleeps immediately so tests never wait.
type instantTimer struct {
	ch     chan time.Time
	starts []time.Duration
}

func newInstantTimer() *instantTimer {
	return &instantTimer{ch: make(chan time.Time, 1)}
}

func (t *instantTimer) Start(d time.Duration) {
	t.starts = append(t.starts, d)
	t.ch <- time.Now()
}

func (t *instantTimer) C() <-chan time.Time { return t.ch }

func (t *instantTimer) Stop() {}

func newTestBridge(t *testing.T, cfg Config) *Bridge {
	t.Helper()
	if cfg.Apartment == nil {
		cfg.Apartment = &fakeApartment{}
	}
	if cfg.RetryTimer == nil {
		cfg.RetryTimer = newInstantTimer()
	}
	b := New(cfg, logging.NewNop())
	b.Start()
	t.Cleanup(b.Stop)
	return b
}

func TestBridgeExecutesInArrivalOrder(t *testing.T) {
	b := newTestBridge(t, Config{})
	ctx := context.Background()

	// Hold the worker on a gate so later submissions pile up in the
	// queue before any of them runs.
	gate := make(chan struct{})
	first, err := b.submit(ctx, func() (any, error) {
		<-gate
		return nil, nil
	})
	require.NoError(t, err)

	var order []int
	futs := make([]*future, 0, 5)
	for i := 0; i < 5; i++ {
		i := i
		fut, err := b.submit(ctx, func() (any, error) {
			order = append(order, i)
			return i, nil
		})
		require.NoError(t, err)
		futs = append(futs, fut)
	}

	close(gate)
	_, err = first.wait(ctx, time.Second)
	require.NoError(t, err)

	for i, fut := range futs {
		value, err := fut.wait(ctx, time.Second)
		require.NoError(t, err)
		assert.Equal(t, i, value)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestBridgeStartIsIdempotent(t *testing.T) {
	apt := &fakeApartment{}
	b := newTestBridge(t, Config{Apartment: apt})

	b.Start()
	b.Start()

	value, err := b.Execute(context.Background(), func() (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", value)

	b.Stop()
	assert.Equal(t, int32(1), apt.inits.Load())
	assert.Equal(t, int32(1), apt.uninits.Load())
}

func TestBridgeStopRejectsNewCalls(t *testing.T) {
	apt := &fakeApartment{}
	b := newTestBridge(t, Config{Apartment: apt})

	b.Stop()
	b.Stop()

	_, err := b.Execute(context.Background(), func() (any, error) {
		return nil, nil
	})
	require.ErrorIs(t, err, ErrNotRunning)
	assert.Equal(t, int32(1), apt.uninits.Load())
}

func TestBridgeExecuteBeforeStart(t *testing.T) {
	b := New(Config{Apartment: &fakeApartment{}}, logging.NewNop())

	_, err := b.Execute(context.Background(), func() (any, error) {
		return nil, nil
	})
	require.ErrorIs(t, err, ErrNotRunning)
}

func TestBridgeRestart(t *testing.T) {
	apt := &fakeApartment{}
	b := newTestBridge(t, Config{Apartment: apt})

	b.Stop()
	b.Start()

	value, err := b.Execute(context.Background(), func() (any, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.Equal(t, int32(2), apt.inits.Load())
}

func TestBridgeStopIsBoundedWhenWorkerWedges(t *testing.T) {
	b := newTestBridge(t, Config{JoinTimeout: 50 * time.Millisecond})

	block := make(chan struct{})
	t.Cleanup(func() { close(block) })

	started := make(chan struct{})
	go b.Execute(context.Background(), func() (any, error) {
		close(started)
		<-block
		return nil, nil
	})
	<-started

	begin := time.Now()
	b.Stop()
	assert.Less(t, time.Since(begin), time.Second)
}

func TestExecuteTimeoutAbandonsCallWithoutInterruptingWorker(t *testing.T) {
	b := newTestBridge(t, Config{})
	ctx := context.Background()

	var finished atomic.Bool
	_, err := b.ExecuteTimeout(ctx, 20*time.Millisecond, func() (any, error) {
		time.Sleep(120 * time.Millisecond)
		finished.Store(true)
		return nil, nil
	})
	require.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, uint64(1), b.Stats().Timeouts)

	// The next call queues behind the abandoned one, so its success
	// proves the worker ran the slow call to completion.
	value, err := b.Execute(ctx, func() (any, error) {
		return "after", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "after", value)
	assert.True(t, finished.Load())
}

func TestExecuteHonorsContextWhileWaiting(t *testing.T) {
	b := newTestBridge(t, Config{})

	block := make(chan struct{})
	t.Cleanup(func() { close(block) })

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := b.Execute(ctx, func() (any, error) {
		<-block
		return nil, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestExecuteHonorsContextWhileEnqueueing(t *testing.T) {
	b := newTestBridge(t, Config{QueueCapacity: 1})
	ctx := context.Background()

	// Occupy the worker, then fill the one queue slot.
	gate := make(chan struct{})
	t.Cleanup(func() { close(gate) })
	_, err := b.submit(ctx, func() (any, error) {
		<-gate
		return nil, nil
	})
	require.NoError(t, err)
	_, err = b.submit(ctx, func() (any, error) { return nil, nil })
	require.NoError(t, err)

	cancelCtx, cancel := context.WithCancel(ctx)
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err = b.Execute(cancelCtx, func() (any, error) { return nil, nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestExecutePropagatesErrorsVerbatim(t *testing.T) {
	b := newTestBridge(t, Config{})

	sentinel := errors.New("shape 7 not found on slide 2")
	_, err := b.Execute(context.Background(), func() (any, error) {
		return nil, sentinel
	})
	require.ErrorIs(t, err, sentinel)
	assert.EqualError(t, err, "shape 7 not found on slide 2")
}

func TestWorkerSurvivesPanickingCall(t *testing.T) {
	b := newTestBridge(t, Config{})
	ctx := context.Background()

	_, err := b.Execute(ctx, func() (any, error) {
		panic("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")

	value, err := b.Execute(ctx, func() (any, error) {
		return "alive", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "alive", value)
}

func TestApartmentFailureFailsCallsButKeepsDraining(t *testing.T) {
	apt := &fakeApartment{initErr: errors.New("access denied")}
	b := newTestBridge(t, Config{Apartment: apt})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := b.Execute(ctx, func() (any, error) {
			return nil, nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "apartment unavailable")
	}

	b.Stop()
	assert.Equal(t, int32(0), apt.uninits.Load())
}

func TestStatsSnapshot(t *testing.T) {
	b := newTestBridge(t, Config{})

	_, err := b.Execute(context.Background(), func() (any, error) {
		return nil, nil
	})
	require.NoError(t, err)

	stats := b.Stats()
	assert.True(t, stats.Running)
	assert.Equal(t, uint64(1), stats.Executed)
	assert.Equal(t, 0, stats.QueueDepth)

	b.Stop()
	assert.False(t, b.Stats().Running)
}
