package model

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	ErrFixedCell   = errors.New("start and end cells cannot be blocked")
)

// Coord is a cell position, X is the column and Y the row.
type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns c translated by o.
func (c Coord) Add(o Coord) Coord {
	return Coord{c.X + o.X, c.Y + o.Y}
}

// Chebyshev returns the king-move distance between c and o.
func (c Coord) Chebyshev(o Coord) int {
	dx := c.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := c.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// Touches reports whether o lies within Chebyshev distance 1 of c, c included.
func (c Coord) Touches(o Coord) bool {
	return c.Chebyshev(o) <= 1
}

// Config fixes the dimension and the two terminal cells of a grid.
type Config struct {
	Size       int
	Start, End Coord
}

// DefaultConfig is the 15x15 board running corner to corner.
func DefaultConfig() Config {
	return SquareConfig(15)
}

// SquareConfig returns a board of the given size from (0,0) to (size-1,size-1).
func SquareConfig(size int) Config {
	return Config{
		Size:  size,
		Start: Coord{0, 0},
		End:   Coord{size - 1, size - 1},
	}
}

// Grid is the obstacle grid. Matrix is indexed [col][row].
type Grid struct {
	Config
	Matrix [][]bool
}
