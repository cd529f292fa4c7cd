package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/pathwalker/model"
)

func centreBlocked(t *testing.T) *model.Grid {
	t.Helper()
	g, err := model.NewGrid(model.SquareConfig(3))
	require.NoError(t, err)
	require.NoError(t, g.SetObstacle(model.Coord{X: 1, Y: 1}, true))
	return g
}

func TestLabels(t *testing.T) {
	steps := []model.Step{
		{Kind: model.STEP_VISIT, At: model.Coord{X: 0, Y: 1}, Index: 1},
		{Kind: model.STEP_VISIT, At: model.Coord{X: 0, Y: 2}, Index: 2},
		{Kind: model.STEP_UNVISIT, At: model.Coord{X: 0, Y: 2}},
		{Kind: model.STEP_VISIT, At: model.Coord{X: 1, Y: 2}, Index: 2},
	}

	assert.Equal(t, map[model.Coord]int{{X: 0, Y: 1}: 1, {X: 1, Y: 2}: 2}, Labels(steps))
}

func TestText(t *testing.T) {
	g := centreBlocked(t)
	labels := PathLabels(g, []model.Coord{{0, 0}, {0, 1}, {1, 2}, {2, 2}})

	assert.Equal(t, "  S  .  .\n  1  #  .\n  .  2  E\n", Text(g, labels))
	assert.Equal(t, "  S  .  .\n  .  #  .\n  .  .  E\n", Text(g, nil))
}

func TestBoard_At(t *testing.T) {
	g := centreBlocked(t)
	board := NewBoard(g, map[model.Coord]int{{X: 0, Y: 1}: 1})

	assert.Equal(t, 3*CellPixels, board.Bounds().Dx())
	assert.Equal(t, ColorGridLine, board.At(CellPixels, 5))
	assert.Equal(t, ColorFixed, board.At(5, 5))
	assert.Equal(t, ColorObstacle, board.At(CellPixels+5, CellPixels+5))
	assert.Equal(t, ColorPath, board.At(5, CellPixels+5))
	assert.Equal(t, ColorFree, board.At(2*CellPixels+5, 5))
	assert.Equal(t, color.Transparent, board.At(-1, 0))
}

func TestImage(t *testing.T) {
	g := centreBlocked(t)

	pic, err := Image(g, PathLabels(g, []model.Coord{{0, 0}, {0, 1}, {1, 2}, {2, 2}}))

	require.NoError(t, err)
	assert.Equal(t, 3*CellPixels, pic.Bounds().Dx())
	assert.Equal(t, 3*CellPixels, pic.Bounds().Dy())
}
