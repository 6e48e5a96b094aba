// Package eventloop runs every window-management operation on one logical
// thread. Other goroutines hand work over with Post or Invoke.
package eventloop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrStopped is returned by Invoke once the loop has exited.
var ErrStopped = errors.New("event loop stopped")

// Pinger hands the loop the X event dispatch handshake. The dispatcher sends
// on Before, runs its callbacks, then sends on After. Nil channels are never
// ready.
type Pinger struct {
	Before <-chan struct{}
	After  <-chan struct{}
	Quit   <-chan struct{}
}

// Loop serializes posted functions, engine event dispatch and idle callbacks.
type Loop struct {
	posted chan func()
	done   chan struct{}
	idle   []func()
	logger *slog.Logger
}

// New creates a loop. It does nothing until Run is called.
func New(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		posted: make(chan func(), 64),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Post queues fn to run on the loop. Safe from any goroutine. Work posted
// after the loop stopped is dropped.
func (l *Loop) Post(fn func()) {
	select {
	case l.posted <- fn:
	case <-l.done:
	}
}

// Invoke runs fn on the loop and waits for its result.
func (l *Loop) Invoke(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	task := func() { result <- fn() }

	select {
	case l.posted <- task:
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AddIdle queues fn for the end of the current loop turn. Loop goroutine only.
func (l *Loop) AddIdle(fn func()) {
	l.idle = append(l.idle, fn)
}

// ready is always closed. Selecting on it keeps a turn from blocking while
// idle callbacks are pending.
var ready = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Run dispatches work until ctx is cancelled or the pinger quits.
func (l *Loop) Run(ctx context.Context, ping Pinger) error {
	defer close(l.done)
	l.logger.Info("event loop started")
	defer l.logger.Info("event loop stopped")

	for {
		stop, err := l.turn(ctx, ping)
		if stop {
			return err
		}
		l.drainIdle()
	}
}

// turn waits for one unit of work. With idle callbacks queued it does not
// block, so a callback that requeues itself keeps running without events.
func (l *Loop) turn(ctx context.Context, ping Pinger) (bool, error) {
	var idle <-chan struct{}
	if len(l.idle) > 0 {
		idle = ready
	}

	select {
	case <-ctx.Done():
		return true, ctx.Err()
	case <-ping.Quit:
		return true, nil
	case <-ping.Before:
		select {
		case <-ping.After:
		case <-ctx.Done():
			return true, ctx.Err()
		}
	case fn := <-l.posted:
		l.run(fn)
	case <-idle:
	}
	return false, nil
}

// drainIdle runs the callbacks queued so far. Callbacks queued while draining
// wait for the next turn.
func (l *Loop) drainIdle() {
	if len(l.idle) == 0 {
		return
	}
	pending := l.idle
	l.idle = nil
	for _, fn := range pending {
		l.run(fn)
	}
}

func (l *Loop) run(fn func()) {
	defer func() {
		if err := recover(); err != nil {
			l.logger.Error("event loop task panic recovered", "error", fmt.Sprint(err))
		}
	}()
	fn()
}
