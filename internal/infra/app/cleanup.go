package app

import (
	"context"

	"go.uber.org/zap"
)

type releaseFunc func(ctx context.Context) error

type release struct {
	name string
	fn   releaseFunc
}

// releaser closes acquired resources in reverse order of acquisition.
type releaser struct {
	logger *zap.Logger
	steps  []release
}

func (r *releaser) add(name string, fn releaseFunc) {
	r.steps = append(r.steps, release{name: name, fn: fn})
}

// run releases everything once; a failing step is logged and the rest still run.
func (r *releaser) run(ctx context.Context) {
	for i := len(r.steps) - 1; i >= 0; i-- {
		step := r.steps[i]
		if err := step.fn(ctx); err != nil && r.logger != nil {
			r.logger.Warn("release failed", zap.String("resource", step.name), zap.Error(err))
		}
	}
	r.steps = nil
}
