package walker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/pathwalker/model"
)

func newGrid(t *testing.T, cfg model.Config, obstacles ...model.Coord) *model.Grid {
	t.Helper()
	grid, err := model.NewGrid(cfg)
	require.NoError(t, err)
	for _, c := range obstacles {
		require.NoError(t, grid.SetObstacle(c, true))
	}
	return grid
}

func visit(x, y, index int) model.Step {
	return model.Step{Kind: model.STEP_VISIT, At: model.Coord{X: x, Y: y}, Index: index}
}

func unvisit(x, y int) model.Step {
	return model.Step{Kind: model.STEP_UNVISIT, At: model.Coord{X: x, Y: y}}
}

func assertWellFormed(t *testing.T, path []model.Coord) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		assert.Equal(t, 1, path[i-1].Chebyshev(path[i]), "cells %d and %d not adjacent: %v %v", i-1, i, path[i-1], path[i])
	}
	for i := range path {
		for j := i + 2; j < len(path); j++ {
			assert.Greater(t, path[i].Chebyshev(path[j]), 1, "cells %d and %d touch: %v %v", i, j, path[i], path[j])
		}
	}
}

func TestFindPath_ClearDiagonal(t *testing.T) {
	grid := newGrid(t, model.SquareConfig(3))
	recorder := &Recorder{}

	result, err := FindPath(context.Background(), grid, recorder)

	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, []model.Coord{{0, 0}, {1, 1}, {2, 2}}, result.Path)
	assert.Equal(t, []model.Step{visit(1, 1, 1)}, recorder.Steps)
	assert.Empty(t, grid.Obstacles())
}

func TestFindPath_CentreBlocked(t *testing.T) {
	grid := newGrid(t, model.SquareConfig(3), model.Coord{X: 1, Y: 1})
	recorder := &Recorder{}

	result, err := FindPath(context.Background(), grid, recorder)

	require.NoError(t, err)
	assert.Equal(t, []model.Coord{{0, 0}, {0, 1}, {1, 2}, {2, 2}}, result.Path)
	assert.Equal(t, []model.Step{visit(0, 1, 1), visit(1, 2, 2)}, recorder.Steps)
	assert.Equal(t, []model.Coord{{1, 1}}, grid.Obstacles())
}

func TestFindPath_EndWalledOff(t *testing.T) {
	wall := []model.Coord{{1, 1}, {1, 2}, {2, 1}}
	grid := newGrid(t, model.SquareConfig(3), wall...)
	recorder := &Recorder{}

	result, err := FindPath(context.Background(), grid, recorder)

	require.ErrorIs(t, err, ErrNoPath)
	assert.False(t, result.Found)
	assert.Nil(t, result.Path)
	assert.Equal(t, []model.Step{
		visit(0, 1, 1),
		visit(0, 2, 2),
		unvisit(0, 2),
		unvisit(0, 1),
		visit(1, 0, 1),
		visit(2, 0, 2),
		unvisit(2, 0),
		unvisit(1, 0),
	}, recorder.Steps)
	assert.Equal(t, []model.Coord{{0, 2}, {0, 1}, {2, 0}, {1, 0}}, result.DeadEnds)
	assert.ElementsMatch(t, append(wall, result.DeadEnds...), grid.Obstacles())
	assert.False(t, grid.Blocked(grid.Start))
	assert.False(t, grid.Blocked(grid.End))
}

func TestFindPath_ClearGrids(t *testing.T) {
	for _, size := range []int{2, 3, 4, 7, 15, 32} {
		grid := newGrid(t, model.SquareConfig(size))

		result, err := FindPath(context.Background(), grid, nil)

		require.NoError(t, err, "size %d", size)
		require.Len(t, result.Path, size, "size %d", size)
		assert.Equal(t, grid.Start, result.Path[0])
		assert.Equal(t, grid.End, result.Path[len(result.Path)-1])
		assertWellFormed(t, result.Path)
	}
}

func TestFindPath_CornerToCorner(t *testing.T) {
	cfg := model.Config{Size: 3, Start: model.Coord{X: 2, Y: 0}, End: model.Coord{X: 0, Y: 2}}
	grid := newGrid(t, cfg)

	result, err := FindPath(context.Background(), grid, nil)

	require.NoError(t, err)
	assert.Equal(t, []model.Coord{{2, 0}, {1, 1}, {0, 2}}, result.Path)
}

func TestFindPath_FailureBlocksEveryDeadEnd(t *testing.T) {
	cfg := model.DefaultConfig()
	wall := []model.Coord{{13, 13}, {13, 14}, {14, 13}}
	grid := newGrid(t, cfg, wall...)
	recorder := &Recorder{}

	result, err := FindPath(context.Background(), grid, recorder)

	require.ErrorIs(t, err, ErrNoPath)
	require.NotEmpty(t, result.DeadEnds)
	for _, c := range result.DeadEnds {
		assert.True(t, grid.Blocked(c), "dead end %v not blocked", c)
	}
	assert.ElementsMatch(t, append(wall, result.DeadEnds...), grid.Obstacles())
	assert.False(t, grid.Blocked(cfg.Start))
	assert.False(t, grid.Blocked(cfg.End))

	visits, unvisits := 0, 0
	for _, s := range recorder.Steps {
		assert.False(t, cfg.IsFixed(s.At), "event on fixed cell %v", s)
		if s.Kind == model.STEP_VISIT {
			visits++
		} else {
			unvisits++
		}
	}
	assert.Equal(t, visits, unvisits)
	assert.Equal(t, len(result.DeadEnds), unvisits)
}

func TestFindPath_Reproducible(t *testing.T) {
	obstacles := []model.Coord{
		{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}, {6, 6},
		{7, 6}, {8, 6}, {9, 6}, {10, 6}, {6, 9}, {6, 10}, {6, 11},
		{12, 12}, {12, 13}, {11, 12},
	}
	grid := newGrid(t, model.DefaultConfig(), obstacles...)

	first := &Recorder{}
	firstResult, firstErr := FindPath(context.Background(), grid, first)

	grid.Reset()
	for _, c := range obstacles {
		require.NoError(t, grid.SetObstacle(c, true))
	}
	second := &Recorder{}
	secondResult, secondErr := FindPath(context.Background(), grid, second)

	assert.Equal(t, firstErr, secondErr)
	assert.Equal(t, firstResult, secondResult)
	assert.Equal(t, first.Steps, second.Steps)
	if firstErr == nil {
		assertWellFormed(t, firstResult.Path)
	}
}

func TestStep_MatchesListener(t *testing.T) {
	grid := newGrid(t, model.DefaultConfig(), model.Coord{X: 3, Y: 3}, model.Coord{X: 4, Y: 4}, model.Coord{X: 4, Y: 3})
	recorder := &Recorder{}
	w, err := New(grid, WithListener(recorder))
	require.NoError(t, err)
	assert.Equal(t, SEARCHING, w.State())

	steps := make([]model.Step, 0)
	for {
		step, ok := w.Step()
		if !ok {
			break
		}
		steps = append(steps, step)
		assert.Equal(t, step.At, recorder.Steps[len(recorder.Steps)-1].At)
	}

	assert.Equal(t, recorder.Steps, steps)
	assert.Equal(t, SUCCEEDED, w.State())
	assert.Equal(t, grid.End, w.Current())
	_, ok := w.Step()
	assert.False(t, ok)

	result, err := w.Result()
	require.NoError(t, err)
	assertWellFormed(t, result.Path)
	assert.GreaterOrEqual(t, result.Iterations, len(result.Path)-1)
}

func TestStep_VisitIndexIsPathPosition(t *testing.T) {
	grid := newGrid(t, model.SquareConfig(6), model.Coord{X: 2, Y: 2}, model.Coord{X: 3, Y: 3})
	w, err := New(grid)
	require.NoError(t, err)

	for {
		step, ok := w.Step()
		if !ok {
			break
		}
		if step.Kind == model.STEP_VISIT {
			path := w.Path()
			assert.Equal(t, len(path)-1, step.Index)
			assert.Equal(t, path[step.Index], step.At)
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	grid := newGrid(t, model.DefaultConfig())
	w, err := New(grid)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = w.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, SEARCHING, w.State())
}

func TestNew_RejectsBadGrids(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&model.Grid{Config: model.SquareConfig(3)})
	assert.Error(t, err)

	_, err = New(&model.Grid{Config: model.Config{Size: 3, End: model.Coord{X: 5, Y: 5}}})
	assert.ErrorIs(t, err, model.ErrOutOfBounds)
}

func TestStateName(t *testing.T) {
	assert.Equal(t, "SEARCHING", SEARCHING.Name())
	assert.Equal(t, "FAILED", FAILED.Name())
	assert.Equal(t, "N/A(9)", State(9).Name())
}
