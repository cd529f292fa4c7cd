package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
)

// Nine draws a nine-patch: the corners keep their size, the edges and the
// centre stretch to fill the target rectangle.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B, Scale      float64
	positions           [4][2]int
	x, y, width, height int
	targetPositions     [4][2]float64
}

// newButtonNine builds the Done/Reset button frame without an image asset.
func newButtonNine() (*Nine, error) {
	const side, border = 24, 3
	img, err := ebiten.NewImage(side, side, ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	if err = img.Fill(color.RGBA{30, 120, 40, 255}); err != nil {
		return nil, err
	}
	ebitenutil.DrawRect(img, border, border, side-2*border, side-2*border, color.RGBA{60, 190, 80, 255})
	return &Nine{
		images: img,
		alpha:  1,
		R:      1, G: 1, B: 1, Scale: 1,
		positions: [4][2]int{{0, 0}, {8, 8}, {16, 16}, {side, side}},
	}, nil
}

func (n *Nine) SetPosition(x, y int) {
	n.x = x
	n.y = y
	n.SetSize(n.width, n.height)
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
	n.targetPositions[0] = [2]float64{float64(n.x), float64(n.y)}
	n.targetPositions[1] = [2]float64{
		float64(n.x) + n.Scale*float64(n.positions[1][0]),
		float64(n.y) + n.Scale*float64(n.positions[1][1]),
	}
	n.targetPositions[2] = [2]float64{
		float64(n.x+n.width) - n.Scale*float64(n.positions[3][0]-n.positions[2][0]),
		float64(n.y+n.height) - n.Scale*float64(n.positions[3][1]-n.positions[2][1]),
	}
	n.targetPositions[3] = [2]float64{float64(n.x + n.width), float64(n.y + n.height)}
}

// Contains reports whether a screen point falls on the patch.
func (n *Nine) Contains(x, y int) bool {
	return image.Pt(x, y).In(image.Rect(n.x, n.y, n.x+n.width, n.y+n.height))
}

func (n *Nine) Draw(screen *ebiten.Image) {
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			src := image.Rect(
				n.positions[col][0], n.positions[row][1],
				n.positions[col+1][0], n.positions[row+1][1])
			if src.Empty() {
				continue
			}
			targetWidth := n.targetPositions[col+1][0] - n.targetPositions[col][0]
			targetHeight := n.targetPositions[row+1][1] - n.targetPositions[row][1]

			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(targetWidth/float64(src.Dx()), targetHeight/float64(src.Dy()))
			op.GeoM.Translate(n.targetPositions[col][0], n.targetPositions[row][1])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			screen.DrawImage(n.images.SubImage(src).(*ebiten.Image), op)
		}
	}
}
