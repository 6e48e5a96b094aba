package daemon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/1broseidon/tilewm/internal/core"
	"github.com/1broseidon/tilewm/internal/logging"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/platform/platformtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// direct runs invoked work on the caller's goroutine.
type direct struct{}

func (direct) Invoke(_ context.Context, fn func() error) error { return fn() }

func newCore(t *testing.T, ids ...uint32) *core.Context {
	t.Helper()
	c := core.New(core.Options{Logger: logging.Discard(), Seat: &platformtest.Seat{}})
	c.AddOutput(platformtest.NewOutput(1, 800, 600))
	for _, id := range ids {
		_, err := c.AddView(platformtest.NewSurface(nil, id), platform.Rect{Width: 10, Height: 10})
		require.NoError(t, err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestReconcile_DestroysVanishedViews(t *testing.T) {
	c := newCore(t, 1, 2, 3)
	r := NewReconciler(ReconcilerConfig{Logger: logging.Discard()}, c, direct{}, func() ([]uint32, error) {
		return []uint32{2, 99}, nil
	})

	assert.Equal(t, 2, r.ReconcileNow(context.Background()))
	assert.Nil(t, c.FindView(1))
	assert.NotNil(t, c.FindView(2))
	assert.Nil(t, c.FindView(3))

	assert.Equal(t, 0, r.ReconcileNow(context.Background()))
}

func TestReconcile_ListErrorKeepsViews(t *testing.T) {
	c := newCore(t, 1)
	r := NewReconciler(ReconcilerConfig{Logger: logging.Discard()}, c, direct{}, func() ([]uint32, error) {
		return nil, errors.New("connection lost")
	})

	assert.Equal(t, 0, r.ReconcileNow(context.Background()))
	assert.NotNil(t, c.FindView(1))
}

// tracking marks when invoked work is running.
type tracking struct{ running bool }

func (l *tracking) Invoke(_ context.Context, fn func() error) error {
	l.running = true
	defer func() { l.running = false }()
	return fn()
}

func TestReconcile_ListsSurfacesOnTheLoop(t *testing.T) {
	c := newCore(t, 1)
	loop := &tracking{}
	listedOnLoop := false
	r := NewReconciler(ReconcilerConfig{Logger: logging.Discard()}, c, loop, func() ([]uint32, error) {
		listedOnLoop = loop.running
		return []uint32{1}, nil
	})

	assert.Equal(t, 0, r.ReconcileNow(context.Background()))
	assert.True(t, listedOnLoop)
}

func TestReconcile_PanicStillAnswersInvoke(t *testing.T) {
	c := newCore(t, 1)
	var got error
	loop := invokerFunc(func(ctx context.Context, fn func() error) error {
		got = fn()
		return got
	})
	r := NewReconciler(ReconcilerConfig{Logger: logging.Discard()}, c, loop, func() ([]uint32, error) {
		panic("boom")
	})

	assert.Equal(t, 0, r.ReconcileNow(context.Background()))
	assert.ErrorContains(t, got, "reconcile panic: boom")
	assert.NotNil(t, c.FindView(1))
}

type invokerFunc func(ctx context.Context, fn func() error) error

func (f invokerFunc) Invoke(ctx context.Context, fn func() error) error { return f(ctx, fn) }

func TestReconcile_RecoversPanics(t *testing.T) {
	c := newCore(t)
	r := NewReconciler(ReconcilerConfig{Logger: logging.Discard()}, c, direct{}, func() ([]uint32, error) {
		panic("boom")
	})

	assert.NotPanics(t, func() { r.ReconcileNow(context.Background()) })
}

func TestRun_StopsOnCancel(t *testing.T) {
	c := newCore(t, 1)
	passes := make(chan struct{}, 8)
	r := NewReconciler(ReconcilerConfig{Interval: 5 * time.Millisecond, Logger: logging.Discard()}, c, direct{}, func() ([]uint32, error) {
		select {
		case passes <- struct{}{}:
		default:
		}
		return []uint32{1}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	select {
	case <-passes:
	case <-time.After(time.Second):
		t.Fatal("reconciler never ran")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop")
	}
}
