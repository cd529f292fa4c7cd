package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoord_Chebyshev(t *testing.T) {
	tests := []struct {
		a, b Coord
		want int
	}{
		{Coord{0, 0}, Coord{0, 0}, 0},
		{Coord{0, 0}, Coord{1, 1}, 1},
		{Coord{0, 0}, Coord{14, 3}, 14},
		{Coord{5, 2}, Coord{1, 9}, 7},
		{Coord{-1, 0}, Coord{0, 0}, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Chebyshev(tt.b), "%v-%v", tt.a, tt.b)
		assert.Equal(t, tt.want, tt.b.Chebyshev(tt.a), "%v-%v", tt.b, tt.a)
	}
	assert.True(t, Coord{3, 3}.Touches(Coord{4, 2}))
	assert.False(t, Coord{3, 3}.Touches(Coord{5, 3}))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
		errText string
	}{
		{name: "default", cfg: DefaultConfig()},
		{name: "two by two", cfg: SquareConfig(2)},
		{name: "zero size", cfg: Config{Size: 0}, errText: "at least 1"},
		{name: "start outside", cfg: Config{Size: 4, Start: Coord{-1, 0}, End: Coord{3, 3}}, wantErr: ErrOutOfBounds},
		{name: "end outside", cfg: Config{Size: 4, End: Coord{4, 3}}, wantErr: ErrOutOfBounds},
		{name: "same cell", cfg: SquareConfig(1), errText: "must differ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestGrid_SetObstacle(t *testing.T) {
	g, err := NewGrid(DefaultConfig())
	require.NoError(t, err)
	require.Len(t, g.Matrix, 15)

	require.NoError(t, g.SetObstacle(Coord{3, 7}, true))
	assert.True(t, g.Blocked(Coord{3, 7}))
	assert.True(t, g.Matrix[3][7])
	require.NoError(t, g.SetObstacle(Coord{3, 7}, false))
	assert.False(t, g.Blocked(Coord{3, 7}))

	assert.ErrorIs(t, g.SetObstacle(Coord{0, 0}, true), ErrFixedCell)
	assert.ErrorIs(t, g.SetObstacle(Coord{14, 14}, true), ErrFixedCell)
	assert.ErrorIs(t, g.SetObstacle(Coord{15, 0}, true), ErrOutOfBounds)
	assert.True(t, g.Blocked(Coord{-1, 4}), "off-board cells count as blocked")
	assert.Empty(t, g.Obstacles())
}

func TestGrid_ToggleResetClone(t *testing.T) {
	g, err := NewGrid(SquareConfig(4))
	require.NoError(t, err)

	blocked, err := g.Toggle(Coord{1, 2})
	require.NoError(t, err)
	assert.True(t, blocked)
	_, err = g.Toggle(Coord{2, 1})
	require.NoError(t, err)
	_, err = g.Toggle(Coord{3, 3})
	assert.ErrorIs(t, err, ErrFixedCell)
	assert.Equal(t, []Coord{{1, 2}, {2, 1}}, g.Obstacles())

	clone := g.Clone()
	blocked, err = g.Toggle(Coord{1, 2})
	require.NoError(t, err)
	assert.False(t, blocked)
	assert.True(t, clone.Blocked(Coord{1, 2}))

	g.Reset()
	assert.Empty(t, g.Obstacles())
	assert.Len(t, clone.Obstacles(), 2)
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "visit(1,2)#3", Step{Kind: STEP_VISIT, At: Coord{1, 2}, Index: 3}.String())
	assert.Equal(t, "unvisit(4,0)", Step{Kind: STEP_UNVISIT, At: Coord{4, 0}}.String())
	assert.Equal(t, "RUN", ACT_RUN.Name())
}
