// Package render draws a board, its obstacles and the steps of a walk, as
// text for terminals and as an image for files.
package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/yalue/image_utils"
	"github.com/zucenko/pathwalker/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// The number of pixels across, in a square cell. Must be at least 16 so a
// two digit label fits.
const CellPixels = 24

var (
	ColorFree     = color.RGBA{128, 128, 128, 255}
	ColorObstacle = color.RGBA{220, 30, 30, 255}
	ColorPath     = color.RGBA{240, 220, 40, 255}
	ColorFixed    = color.Black
	ColorGridLine = color.RGBA{60, 60, 60, 255}
)

// Labels replays steps and returns the step number of every cell still
// visited at the end.
func Labels(steps []model.Step) map[model.Coord]int {
	labels := make(map[model.Coord]int)
	for _, s := range steps {
		switch s.Kind {
		case model.STEP_VISIT:
			labels[s.At] = s.Index
		case model.STEP_UNVISIT:
			delete(labels, s.At)
		}
	}
	return labels
}

// PathLabels numbers the cells of a path by their position, fixed cells excluded.
func PathLabels(grid *model.Grid, path []model.Coord) map[model.Coord]int {
	labels := make(map[model.Coord]int, len(path))
	for i, c := range path {
		if !grid.IsFixed(c) {
			labels[c] = i
		}
	}
	return labels
}

// Text draws the board row by row, three characters per cell.
func Text(grid *model.Grid, labels map[model.Coord]int) string {
	var b strings.Builder
	for y := 0; y < grid.Size; y++ {
		for x := 0; x < grid.Size; x++ {
			c := model.Coord{X: x, Y: y}
			if index, ok := labels[c]; ok && !grid.IsFixed(c) {
				fmt.Fprintf(&b, "%3d", index)
				continue
			}
			switch {
			case c == grid.Start:
				b.WriteString("  S")
			case c == grid.End:
				b.WriteString("  E")
			case grid.Blocked(c):
				b.WriteString("  #")
			default:
				b.WriteString("  .")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Board is a board rasterised on the fly, CellPixels per cell.
type Board struct {
	grid   *model.Grid
	labels map[model.Coord]int
}

func NewBoard(grid *model.Grid, labels map[model.Coord]int) *Board {
	return &Board{grid: grid, labels: labels}
}

func (b *Board) ColorModel() color.Model {
	return color.RGBAModel
}

func (b *Board) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.grid.Size*CellPixels, b.grid.Size*CellPixels)
}

// CellColor is the fill of a cell, the same colours the interactive board uses.
func CellColor(grid *model.Grid, labels map[model.Coord]int, c model.Coord) color.Color {
	if grid.IsFixed(c) {
		return ColorFixed
	}
	if _, ok := labels[c]; ok {
		return ColorPath
	}
	if grid.Blocked(c) {
		return ColorObstacle
	}
	return ColorFree
}

func (b *Board) At(x, y int) color.Color {
	if !image.Pt(x, y).In(b.Bounds()) {
		return color.Transparent
	}
	if x%CellPixels == 0 || y%CellPixels == 0 {
		return ColorGridLine
	}
	return CellColor(b.grid, b.labels, model.Coord{X: x / CellPixels, Y: y / CellPixels})
}

// Image rasterises the board with start and end markers and step numbers.
func Image(grid *model.Grid, labels map[model.Coord]int) (*image.RGBA, error) {
	board := NewBoard(grid, labels)
	composite := image_utils.NewCompositeImage()
	if e := composite.AddImage(board, image.Pt(0, 0)); e != nil {
		return nil, fmt.Errorf("Error setting base board image: %w", e)
	}

	marker := CellPixels / 2
	startArrow := image_utils.ResizeImage(image_utils.RightArrow(color.RGBA{40, 180, 70, 255}), marker, marker)
	if e := composite.AddImage(startArrow, cellOrigin(grid.Start, marker)); e != nil {
		return nil, fmt.Errorf("Error adding start marker: %w", e)
	}
	endArrow := image_utils.ResizeImage(image_utils.DownArrow(color.RGBA{100, 120, 255, 255}), marker, marker)
	if e := composite.AddImage(endArrow, cellOrigin(grid.End, marker)); e != nil {
		return nil, fmt.Errorf("Error adding end marker: %w", e)
	}

	pic := image_utils.ToRGBA(composite)
	drawer := &font.Drawer{
		Dst:  pic,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	for c, index := range labels {
		if grid.IsFixed(c) {
			continue
		}
		label := fmt.Sprintf("%d", index)
		width := drawer.MeasureString(label).Ceil()
		drawer.Dot = fixed.P(c.X*CellPixels+(CellPixels-width)/2, c.Y*CellPixels+CellPixels/2+5)
		drawer.DrawString(label)
	}
	return pic, nil
}

// cellOrigin centres a square of the given side inside cell c.
func cellOrigin(c model.Coord, side int) image.Point {
	offset := (CellPixels - side) / 2
	return image.Pt(c.X*CellPixels+offset, c.Y*CellPixels+offset)
}
