package walker

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pathwalker/model"
)

// Offsets is the neighbour order. A tie between equally close neighbours is
// won by the one listed first.
var Offsets = [8]model.Coord{
	{-1, 1}, {0, 1}, {1, 1},
	{1, 0}, {1, -1}, {0, -1},
	{-1, -1}, {-1, 0},
}

type State int

const (
	SEARCHING State = iota
	SUCCEEDED
	FAILED
)

func (s State) Name() string {
	switch s {
	case SEARCHING:
		return "SEARCHING"
	case SUCCEEDED:
		return "SUCCEEDED"
	case FAILED:
		return "FAILED"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

// Walker holds the state of one walk. It mutates its grid in place and is
// not restartable; reset the grid and build a new Walker to walk again.
type Walker struct {
	grid     *model.Grid
	listener Listener
	log      *log.Entry

	path       []model.Coord
	deadEnds   []model.Coord
	iterations int
	state      State
}

func New(grid *model.Grid, options ...Option) (*Walker, error) {
	if grid == nil {
		return nil, errors.New("walker: nil grid")
	}
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	}
	if len(grid.Matrix) != grid.Size {
		return nil, fmt.Errorf("walker: grid has %d columns, want %d", len(grid.Matrix), grid.Size)
	}
	for x, column := range grid.Matrix {
		if len(column) != grid.Size {
			return nil, fmt.Errorf("walker: grid column %d has %d rows, want %d", x, len(column), grid.Size)
		}
	}

	opts := Options{Logger: log.WithField("component", "walker")}
	for _, o := range options {
		o(&opts)
	}

	return &Walker{
		grid:     grid,
		listener: opts.Listener,
		log:      opts.Logger,
		path:     []model.Coord{grid.Start},
		state:    SEARCHING,
	}, nil
}

func (w *Walker) State() State { return w.state }

// Current is the tail of the path. It is meaningless once the walk failed.
func (w *Walker) Current() model.Coord {
	if len(w.path) == 0 {
		return w.grid.Start
	}
	return w.path[len(w.path)-1]
}

// Path returns a copy of the path walked so far.
func (w *Walker) Path() []model.Coord {
	return append([]model.Coord(nil), w.path...)
}

// DeadEnds returns the cells blocked by the walk, in the order they were hit.
func (w *Walker) DeadEnds() []model.Coord {
	return append([]model.Coord(nil), w.deadEnds...)
}

func (w *Walker) Iterations() int { return w.iterations }

// Step advances the walk up to its next visit or unvisit event and returns
// it. ok is false once the walk has succeeded or failed.
func (w *Walker) Step() (step model.Step, ok bool) {
	for w.state == SEARCHING {
		if step, ok = w.iterate(); ok {
			return step, true
		}
	}
	return model.Step{}, false
}

// iterate runs one loop of the walk: one advance or one backtrack.
func (w *Walker) iterate() (model.Step, bool) {
	current := w.Current()
	if current == w.grid.End {
		w.state = SUCCEEDED
		return model.Step{}, false
	}
	w.iterations++

	next, found := w.closest(current)
	if !found {
		return w.backtrack(current)
	}

	w.path = append(w.path, next)
	if next == w.grid.End {
		w.state = SUCCEEDED
	}
	if w.grid.IsFixed(next) {
		return model.Step{}, false
	}
	step := model.Step{Kind: model.STEP_VISIT, At: next, Index: len(w.path) - 1}
	if w.listener != nil {
		w.listener.OnVisit(next, step.Index)
	}
	return step, true
}

func (w *Walker) backtrack(current model.Coord) (model.Step, bool) {
	w.log.Debugf("dead end at %v, path length %d", current, len(w.path))
	fixed := w.grid.IsFixed(current)
	if !fixed {
		// cannot fail, current is on the board and not fixed
		_ = w.grid.SetObstacle(current, true)
		w.deadEnds = append(w.deadEnds, current)
	}

	w.path = w.path[:len(w.path)-1]
	if len(w.path) == 0 {
		w.log.Debugf("no path after %d iterations", w.iterations)
		w.state = FAILED
	}
	if fixed {
		return model.Step{}, false
	}
	if w.listener != nil {
		w.listener.OnUnvisit(current)
	}
	return model.Step{Kind: model.STEP_UNVISIT, At: current}, true
}

// closest picks the admissible neighbour of current nearest to the end.
func (w *Walker) closest(current model.Coord) (model.Coord, bool) {
	best, bestDist, found := current, 0, false
	for _, offset := range Offsets {
		candidate := current.Add(offset)
		if w.grid.Blocked(candidate) || w.touchesTrail(candidate) {
			continue
		}
		dist := candidate.Chebyshev(w.grid.End)
		if !found || dist < bestDist {
			best, bestDist, found = candidate, dist, true
		}
	}
	return best, found
}

// touchesTrail reports whether c is adjacent to, or on, any path cell
// except the current one.
func (w *Walker) touchesTrail(c model.Coord) bool {
	for _, p := range w.path[:len(w.path)-1] {
		if p.Touches(c) {
			return true
		}
	}
	return false
}
