package main

import (
	"image/color"

	"github.com/zucenko/pathwalker/model"
	"github.com/zucenko/pathwalker/render"
)

// Cell is one button of the board as the client shows it.
type Cell struct {
	col, row int
	Fixed    bool
	Blocked  bool
	Visited  bool
	Label    int
	alpha    float64
}

func (c *Cell) Color() color.Color {
	switch {
	case c.Fixed:
		return render.ColorFixed
	case c.Visited:
		return blend(render.ColorFree, render.ColorPath, c.alpha)
	case c.Blocked:
		return render.ColorObstacle
	default:
		return render.ColorFree
	}
}

// Editable reports whether a click may toggle the cell.
func (c *Cell) Editable() bool {
	return !c.Fixed && !c.Visited
}

type Board struct {
	Config model.Config
	Matrix [][]*Cell
	Result *model.Result
}

func NewBoard(setup model.Setup) *Board {
	cfg := setup.Config
	matrix := make([][]*Cell, 0, cfg.Size)
	for c := 0; c < cfg.Size; c++ {
		column := make([]*Cell, 0, cfg.Size)
		for r := 0; r < cfg.Size; r++ {
			column = append(column, &Cell{
				col:   c,
				row:   r,
				Fixed: cfg.IsFixed(model.Coord{X: c, Y: r}),
				alpha: 1,
			})
		}
		matrix = append(matrix, column)
	}
	b := &Board{Config: cfg, Matrix: matrix}
	for _, o := range setup.Obstacles {
		if cell := b.Cell(o); cell != nil {
			cell.Blocked = true
		}
	}
	return b
}

func (b *Board) Cell(at model.Coord) *Cell {
	if !b.Config.InBounds(at) {
		return nil
	}
	return b.Matrix[at.X][at.Y]
}

func (b *Board) ApplyCells(updates []model.CellUpdate) {
	for _, u := range updates {
		if cell := b.Cell(u.At); cell != nil {
			cell.Blocked = u.Blocked
		}
	}
}

// ApplyStep marks a visited cell with its step number or returns an
// unvisited one to its free look. It returns the touched cell.
func (b *Board) ApplyStep(s model.Step) *Cell {
	cell := b.Cell(s.At)
	if cell == nil || cell.Fixed {
		return nil
	}
	switch s.Kind {
	case model.STEP_VISIT:
		cell.Visited = true
		cell.Label = s.Index
		cell.alpha = 0
	case model.STEP_UNVISIT:
		cell.Visited = false
		cell.Label = 0
		cell.alpha = 1
	}
	return cell
}

func blend(from, to color.Color, alpha float64) color.Color {
	fr, fg, fb, _ := from.RGBA()
	tr, tg, tb, _ := to.RGBA()
	mix := func(a, b uint32) uint8 {
		return uint8((float64(a)*(1-alpha) + float64(b)*alpha) / 257)
	}
	return color.RGBA{mix(fr, tr), mix(fg, tg), mix(fb, tb), 255}
}
