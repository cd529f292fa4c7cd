package walker

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pathwalker/model"
)

// ErrNoPath is returned when backtracking empties the path. It is an
// expected outcome, not a fault.
var ErrNoPath = errors.New("no path exists")

// Result contains the outcome of a walk
type Result struct {
	Path       []model.Coord
	DeadEnds   []model.Coord
	Iterations int
	Found      bool
}

// Options defines parameters for the walk.
type Options struct {
	Listener Listener
	Logger   *log.Entry
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithListener registers a listener that receives every visit and unvisit.
func WithListener(listener Listener) Option {
	return func(options *Options) { options.Listener = listener }
}

// WithLogger replaces the default logrus entry.
func WithLogger(logger *log.Entry) Option {
	return func(options *Options) {
		if logger != nil {
			options.Logger = logger
		}
	}
}

// Run walks to completion. The context is checked between steps.
func (w *Walker) Run(ctx context.Context) (Result, error) {
	for {
		select {
		case <-ctx.Done():
			return Result{Iterations: w.iterations}, ctx.Err()
		default:
		}
		if _, ok := w.Step(); !ok {
			break
		}
	}
	return w.Result()
}

// Result reports the outcome so far; it returns ErrNoPath once the walk failed.
func (w *Walker) Result() (Result, error) {
	result := Result{
		DeadEnds:   w.DeadEnds(),
		Iterations: w.iterations,
	}
	switch w.state {
	case SUCCEEDED:
		result.Path = w.Path()
		result.Found = true
	case FAILED:
		return result, ErrNoPath
	}
	return result, nil
}

// FindPath walks grid from its start to its end, reporting events to listener
// which may be nil.
func FindPath(ctx context.Context, grid *model.Grid, listener Listener, options ...Option) (Result, error) {
	w, err := New(grid, append(options, WithListener(listener))...)
	if err != nil {
		return Result{}, err
	}
	return w.Run(ctx)
}
