package com

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	ole "github.com/go-ole/go-ole"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryTransientThenSuccess(t *testing.T) {
	var dismissed atomic.Int32
	timer := newInstantTimer()
	b := newTestBridge(t, Config{
		RetryInterval: 3 * time.Second,
		RetryTimer:    timer,
		Recovery:      func() { dismissed.Add(1) },
	})

	var attempts atomic.Int32
	value, err := b.Execute(context.Background(), func() (any, error) {
		if attempts.Add(1) <= 2 {
			return nil, ole.NewError(hrCallRejected)
		}
		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", value)
	assert.Equal(t, int32(3), attempts.Load())
	assert.Equal(t, int32(1), dismissed.Load())

	stats := b.Stats()
	assert.Equal(t, uint64(2), stats.Retries)
	assert.Equal(t, uint64(1), stats.Dismissals)

	// Busy retries wait the fixed interval, never a growing one.
	assert.Equal(t, []time.Duration{3 * time.Second, 3 * time.Second}, timer.starts)
}

func TestRetryStopsAfterMaxAttempts(t *testing.T) {
	var dismissed atomic.Int32
	timer := newInstantTimer()
	b := newTestBridge(t, Config{
		RetryAttempts: 5,
		RetryInterval: 3 * time.Second,
		RetryTimer:    timer,
		Recovery:      func() { dismissed.Add(1) },
	})

	var attempts atomic.Int32
	_, err := b.Execute(context.Background(), func() (any, error) {
		attempts.Add(1)
		return nil, ole.NewError(hrRetryLater)
	})
	require.Error(t, err)

	var oleErr *ole.OleError
	require.ErrorAs(t, err, &oleErr)
	assert.Equal(t, hrRetryLater, oleErr.Code())

	assert.Equal(t, int32(5), attempts.Load())
	assert.Equal(t, int32(1), dismissed.Load())
	assert.Len(t, timer.starts, 4)
}

func TestRetrySkipsNonTransientErrors(t *testing.T) {
	var dismissed atomic.Int32
	b := newTestBridge(t, Config{Recovery: func() { dismissed.Add(1) }})

	sentinel := errors.New("slide 9 does not exist")
	var attempts atomic.Int32
	_, err := b.Execute(context.Background(), func() (any, error) {
		attempts.Add(1)
		return nil, sentinel
	})
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, int32(1), attempts.Load())
	assert.Equal(t, int32(0), dismissed.Load())
}

func TestRetryDismissesOncePerCall(t *testing.T) {
	var dismissed atomic.Int32
	b := newTestBridge(t, Config{Recovery: func() { dismissed.Add(1) }})
	ctx := context.Background()

	busyThenOK := func() UnitOfWork {
		var attempts atomic.Int32
		return func() (any, error) {
			if attempts.Add(1) <= 2 {
				return nil, ole.NewError(hrCallRejected)
			}
			return nil, nil
		}
	}

	_, err := b.Execute(ctx, busyThenOK())
	require.NoError(t, err)
	_, err = b.Execute(ctx, busyThenOK())
	require.NoError(t, err)

	assert.Equal(t, int32(2), dismissed.Load())
	assert.Equal(t, uint64(2), b.Stats().Dismissals)
}

func TestIsTransientBusy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"call rejected", ole.NewError(hrCallRejected), true},
		{"retry later", ole.NewError(hrRetryLater), true},
		{"wrapped transient", fmt.Errorf("invoke failed: %w", ole.NewError(hrRetryLater)), true},
		{"other automation error", ole.NewError(0x80004005), false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransientBusy(tt.err))
		})
	}
}
