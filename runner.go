package blankfill

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultRunner returns a Runner bounded by the number of CPUs.
func DefaultRunner(ctx context.Context) Runner {
	return newGroupRunner(ctx, runtime.NumCPU())
}

// NewLimitedRunner creates a runner with bounded concurrency.
func NewLimitedRunner(ctx context.Context, maxConcurrency int) Runner {
	return newGroupRunner(ctx, maxConcurrency)
}

// groupRunner schedules work on an errgroup.Group; the first error cancels
// the shared context.
type groupRunner struct {
	ctx context.Context
	eg  *errgroup.Group
}

func newGroupRunner(parent context.Context, limit int) *groupRunner {
	eg, ctx := errgroup.WithContext(parent)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	return &groupRunner{ctx: ctx, eg: eg}
}

func (r *groupRunner) Go(fn func() error) { r.eg.Go(fn) }

func (r *groupRunner) Wait() error { return r.eg.Wait() }

// runnerContext returns the context tasks should observe: the group's
// derived one for the built-in runner, ctx otherwise.
func runnerContext(ctx context.Context, r Runner) context.Context {
	if g, ok := r.(*groupRunner); ok {
		return g.ctx
	}
	return ctx
}
