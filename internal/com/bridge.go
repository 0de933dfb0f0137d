package com

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/slidewire/slidewire/internal/logging"
	"github.com/slidewire/slidewire/internal/win32"
)

// UnitOfWork is a closure executed on the automation thread. Anything
// touching a native handle must run inside one.
type UnitOfWork func() (any, error)

// Apartment initializes and tears down the apartment on the worker
// thread. Injected so bridge behavior is testable without a native
// runtime.
type Apartment interface {
	Initialize() error
	Uninitialize()
}

// Config tunes the bridge. Zero values fall back to defaults.
type Config struct {
	// QueueCapacity bounds the pending call queue.
	QueueCapacity int

	// CallTimeout is how long Execute waits for a result before
	// abandoning the call. The worker keeps running it regardless.
	CallTimeout time.Duration

	// JoinTimeout bounds how long Stop waits for the worker to exit.
	JoinTimeout time.Duration

	// RetryAttempts is the total number of tries for a busy call.
	RetryAttempts int

	// RetryInterval is the fixed sleep between busy retries.
	RetryInterval time.Duration

	// Recovery runs once per busy call, after its first rejection.
	// Used to dismiss a modal dialog blocking the automation server.
	Recovery func()

	// Cleanup runs on the worker just before it leaves the apartment,
	// releasing whatever handles the session still holds.
	Cleanup func()

	// Apartment overrides the real single-threaded apartment in tests.
	Apartment Apartment

	// RetryTimer overrides the retry sleep timer in tests.
	RetryTimer backoff.Timer
}

type pendingCall struct {
	run  UnitOfWork
	done *future
}

// Bridge owns the automation thread and the FIFO queue in front of it.
type Bridge struct {
	cfg   Config
	log   *logging.Logger
	retry *retrier

	mu      sync.Mutex
	running bool
	queue   chan *pendingCall
	joined  chan struct{}

	inFlight   atomic.Int64
	executed   atomic.Uint64
	retries    atomic.Uint64
	dismissals atomic.Uint64
	timeouts   atomic.Uint64
}

// Stats is a point-in-time snapshot of bridge counters.
type Stats struct {
	Running    bool
	QueueDepth int
	InFlight   int
	Executed   uint64
	Retries    uint64
	Dismissals uint64
	Timeouts   uint64
}

// New creates a bridge. Start must be called before Execute.
func New(cfg Config, log *logging.Logger) *Bridge {
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = 64
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 30 * time.Second
	}
	if cfg.JoinTimeout <= 0 {
		cfg.JoinTimeout = 5 * time.Second
	}
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 5
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 3 * time.Second
	}
	if cfg.Apartment == nil {
		cfg.Apartment = win32.STA{}
	}
	if log == nil {
		log = logging.NewNop()
	}

	b := &Bridge{cfg: cfg, log: log}
	b.retry = &retrier{
		attempts: cfg.RetryAttempts,
		interval: cfg.RetryInterval,
		timer:    cfg.RetryTimer,
		recover: func() {
			b.dismissals.Add(1)
			if cfg.Recovery != nil {
				cfg.Recovery()
			}
		},
		onRetry: func() {
			b.retries.Add(1)
		},
	}
	return b
}

// Start launches the worker. Calling Start on a running bridge is a
// no-op.
func (b *Bridge) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		return
	}

	b.queue = make(chan *pendingCall, b.cfg.QueueCapacity)
	b.joined = make(chan struct{})
	b.running = true
	go b.worker(b.queue, b.joined)

	b.log.Info("automation worker starting",
		zap.Int("queue_capacity", b.cfg.QueueCapacity),
		zap.Duration("call_timeout", b.cfg.CallTimeout))
}

// Stop rejects new calls, lets already queued ones finish, and waits a
// bounded time for the worker to exit. Safe to call repeatedly.
func (b *Bridge) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	queue := b.queue
	joined := b.joined
	b.mu.Unlock()

	// The sentinel rides the same queue so every call enqueued before
	// Stop is served first. Send from a goroutine in case the queue is
	// full.
	go func() { queue <- nil }()

	select {
	case <-joined:
	case <-time.After(b.cfg.JoinTimeout):
		b.log.Warn("worker did not exit before the join deadline",
			zap.Duration("join_timeout", b.cfg.JoinTimeout))
	}
}

// Execute runs fn on the automation thread and waits for its result.
func (b *Bridge) Execute(ctx context.Context, fn UnitOfWork) (any, error) {
	return b.ExecuteTimeout(ctx, b.cfg.CallTimeout, fn)
}

// ExecuteTimeout is Execute with a per-call wait deadline. Long
// operations such as exports pass a larger budget than the default.
func (b *Bridge) ExecuteTimeout(ctx context.Context, timeout time.Duration, fn UnitOfWork) (any, error) {
	fut, err := b.submit(ctx, fn)
	if err != nil {
		return nil, err
	}

	value, err := fut.wait(ctx, timeout)
	if errors.Is(err, ErrTimeout) {
		b.timeouts.Add(1)
		return nil, fmt.Errorf("%w after %s; the operation may still finish on the automation thread", ErrTimeout, timeout)
	}
	return value, err
}

// Stats returns a snapshot of the bridge counters.
func (b *Bridge) Stats() Stats {
	b.mu.Lock()
	running := b.running
	queue := b.queue
	b.mu.Unlock()

	depth := 0
	if queue != nil {
		depth = len(queue)
	}
	return Stats{
		Running:    running,
		QueueDepth: depth,
		InFlight:   int(b.inFlight.Load()),
		Executed:   b.executed.Load(),
		Retries:    b.retries.Load(),
		Dismissals: b.dismissals.Load(),
		Timeouts:   b.timeouts.Load(),
	}
}

func (b *Bridge) submit(ctx context.Context, fn UnitOfWork) (*future, error) {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return nil, ErrNotRunning
	}
	queue := b.queue
	b.mu.Unlock()

	call := &pendingCall{run: fn, done: newFuture()}
	select {
	case queue <- call:
		return call.done, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *Bridge) worker(queue chan *pendingCall, joined chan struct{}) {
	// Every native call must come from this one thread for the
	// lifetime of the apartment.
	runtime.LockOSThread()
	defer close(joined)

	staErr := b.cfg.Apartment.Initialize()
	if staErr != nil {
		b.log.Warn("failed to enter apartment; automation calls will fail", zap.Error(staErr))
	}

	for call := range queue {
		if call == nil {
			break
		}
		b.dispatch(call, staErr)
	}

	b.failPending(queue)

	if b.cfg.Cleanup != nil {
		b.cfg.Cleanup()
	}
	// Drop lingering handle references before leaving the apartment so
	// their release happens on the owning thread.
	runtime.GC()
	if staErr == nil {
		b.cfg.Apartment.Uninitialize()
	}
	b.log.Info("automation worker stopped")
}

func (b *Bridge) dispatch(call *pendingCall, staErr error) {
	b.inFlight.Add(1)
	defer func() {
		b.inFlight.Add(-1)
		b.executed.Add(1)
	}()

	if staErr != nil {
		call.done.complete(nil, fmt.Errorf("apartment unavailable: %w", staErr))
		return
	}

	value, err := b.runProtected(call.run)
	call.done.complete(value, err)
}

func (b *Bridge) runProtected(fn UnitOfWork) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("automation call panicked: %v", r)
		}
	}()
	return b.retry.run(fn)
}

// failPending completes calls that slipped in behind the stop sentinel
// so their callers do not wait out the full timeout.
func (b *Bridge) failPending(queue chan *pendingCall) {
	for {
		select {
		case call := <-queue:
			if call != nil {
				call.done.complete(nil, ErrNotRunning)
			}
		default:
			return
		}
	}
}
