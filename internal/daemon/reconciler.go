// Package daemon holds the long-running helpers the tilewm daemon starts next
// to its event loop.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/1broseidon/tilewm/internal/core"
)

// SurfaceLister returns the ids of the client surfaces that still exist.
type SurfaceLister func() ([]uint32, error)

// Invoker runs fn on the goroutine that owns the compositor state.
type Invoker interface {
	Invoke(ctx context.Context, fn func() error) error
}

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically destroys views whose client surface disappeared
// without a destroy notification reaching the daemon.
type Reconciler struct {
	interval     time.Duration
	core         *core.Context
	loop         Invoker
	listSurfaces SurfaceLister
	logger       *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, c *core.Context, loop Invoker, listSurfaces SurfaceLister) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		interval:     interval,
		core:         c,
		loop:         loop,
		listSurfaces: listSurfaces,
		logger:       logger.With("component", "reconciler"),
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile(ctx)
		}
	}
}

// reconcile performs a single reconciliation pass and returns the number of
// views it destroyed.
func (r *Reconciler) reconcile(ctx context.Context) int {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	removed := 0
	err := r.loop.Invoke(ctx, func() (err error) {
		// A panic here must still answer the waiting Invoke.
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("reconcile panic: %v", p)
			}
		}()

		// Listed on the loop so a window adopted in between cannot be
		// mistaken for a vanished one.
		live, err := r.listSurfaces()
		if err != nil {
			return fmt.Errorf("list surfaces: %w", err)
		}
		alive := make(map[uint32]bool, len(live))
		for _, id := range live {
			alive[id] = true
		}
		for _, v := range r.core.Views() {
			if alive[v.ID()] {
				continue
			}
			r.logger.Info("stale view detected", "view", v.ID())
			r.core.DestroyView(v)
			removed++
		}
		return nil
	})
	if err != nil {
		r.logger.Warn("reconcile pass aborted", "error", err)
	}
	return removed
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow(ctx context.Context) int {
	return r.reconcile(ctx)
}
