package model

import (
	"fmt"
)

// Validate checks that the configuration describes a usable board.
func (cfg Config) Validate() error {
	if cfg.Size < 1 {
		return fmt.Errorf("grid size must be at least 1, got %d", cfg.Size)
	}
	if !cfg.InBounds(cfg.Start) {
		return fmt.Errorf("start %v outside %dx%d grid: %w", cfg.Start, cfg.Size, cfg.Size, ErrOutOfBounds)
	}
	if !cfg.InBounds(cfg.End) {
		return fmt.Errorf("end %v outside %dx%d grid: %w", cfg.End, cfg.Size, cfg.Size, ErrOutOfBounds)
	}
	if cfg.Start == cfg.End {
		return fmt.Errorf("start and end must differ, both are %v", cfg.Start)
	}
	return nil
}

// InBounds reports whether c lies on the board.
func (cfg Config) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < cfg.Size && c.Y >= 0 && c.Y < cfg.Size
}

// IsFixed reports whether c is the start or the end cell.
func (cfg Config) IsFixed(c Coord) bool {
	return c == cfg.Start || c == cfg.End
}

func NewGrid(cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Grid{Config: cfg}
	g.Reset()
	return g, nil
}

// Reset clears every obstacle.
func (g *Grid) Reset() {
	matrix := make([][]bool, 0, g.Size)
	for c := 0; c < g.Size; c++ {
		matrix = append(matrix, make([]bool, g.Size))
	}
	g.Matrix = matrix
}

// Blocked reports whether c is an obstacle. Cells off the board count as blocked.
func (g *Grid) Blocked(c Coord) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.Matrix[c.X][c.Y]
}

// SetObstacle places or removes an obstacle. The start and end cells refuse it.
func (g *Grid) SetObstacle(c Coord, blocked bool) error {
	if !g.InBounds(c) {
		return fmt.Errorf("set obstacle at %v: %w", c, ErrOutOfBounds)
	}
	if g.IsFixed(c) {
		return fmt.Errorf("set obstacle at %v: %w", c, ErrFixedCell)
	}
	g.Matrix[c.X][c.Y] = blocked
	return nil
}

// Toggle flips the obstacle flag of c and returns the new value.
func (g *Grid) Toggle(c Coord) (bool, error) {
	blocked := !g.Blocked(c)
	if err := g.SetObstacle(c, blocked); err != nil {
		return false, err
	}
	return blocked, nil
}

// Obstacles lists blocked cells column by column.
func (g *Grid) Obstacles() []Coord {
	cells := make([]Coord, 0)
	for x := 0; x < g.Size; x++ {
		for y := 0; y < g.Size; y++ {
			if g.Matrix[x][y] {
				cells = append(cells, Coord{x, y})
			}
		}
	}
	return cells
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	matrix := make([][]bool, 0, len(g.Matrix))
	for _, column := range g.Matrix {
		matrix = append(matrix, append([]bool(nil), column...))
	}
	return &Grid{Config: g.Config, Matrix: matrix}
}
