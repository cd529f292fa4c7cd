package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/zucenko/pathwalker/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	size         = 40
	buttonHeight = 50
)

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

// MouseStrokeSource is a StrokeSource implementation of mouse.
type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

// TouchStrokeSource is a StrokeSource implementation of touch.
type TouchStrokeSource struct {
	ID int
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

// Stroke follows one press until it is released. A release close to where
// the press started is a click.
type Stroke struct {
	source StrokeSource

	initX, initY       int
	currentX, currentY int

	released  bool
	cancelled bool
}

func NewStroke(source StrokeSource) *Stroke {
	cx, cy := source.Position()
	return &Stroke{
		source:   source,
		initX:    cx,
		initY:    cy,
		currentX: cx,
		currentY: cy,
	}
}

func (s *Stroke) Update() {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	s.currentX, s.currentY = s.source.Position()
	dx, dy := s.PositionDiff()
	if math.Abs(float64(dx)) > size/2 || math.Abs(float64(dy)) > size/2 {
		s.cancelled = true
	}
}

func (s *Stroke) IsReleased() bool {
	return s.released
}

func (s *Stroke) IsClick() bool {
	return s.released && !s.cancelled
}

func (s *Stroke) PositionDiff() (int, int) {
	return s.currentX - s.initX, s.currentY - s.initY
}

type GameState int

const (
	READY GameState = iota + 1
	PROCESSING
	FINISHED
	DISCONNECTED
)

func (s GameState) Name() string {
	switch s {
	case READY:
		return "READY"
	case PROCESSING:
		return "PROCESSING"
	case FINISHED:
		return "FINISHED"
	case DISCONNECTED:
		return "DISCONNECTED"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

// ButtonText is what the single Done/Reset button shows in each state.
func (s GameState) ButtonText() string {
	switch s {
	case READY:
		return "Done"
	case PROCESSING:
		return "Processing..."
	case FINISHED:
		return "Reset"
	default:
		return "Offline"
	}
}

type Game struct {
	State   GameState
	Link    Link
	Board   *Board
	Button  *Nine
	Font    font.Face
	Label   font.Face
	Message string
	strokes map[*Stroke]struct{}
	Tweens  map[*gween.Tween]Action
}

func NewGame(link Link, setup model.Setup) (*Game, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	const dpi = 72
	button, err := newButtonNine()
	if err != nil {
		return nil, err
	}
	g := &Game{
		State:   READY,
		Link:    link,
		Board:   NewBoard(setup),
		Button:  button,
		strokes: map[*Stroke]struct{}{},
		Tweens:  make(map[*gween.Tween]Action),
		Font: truetype.NewFace(tt, &truetype.Options{
			Size:    16,
			DPI:     dpi,
			Hinting: font.HintingFull,
		}),
		Label: truetype.NewFace(tt, &truetype.Options{
			Size:    22,
			DPI:     dpi,
			Hinting: font.HintingFull,
		}),
	}
	g.Button.SetPosition(4, g.boardPixels()+4)
	g.Button.SetSize(g.boardPixels()-8, buttonHeight-8)
	return g, nil
}

func (g *Game) boardPixels() int {
	return g.Board.Config.Size * size
}

func (g *Game) ScreenSize() (int, int) {
	return g.boardPixels(), g.boardPixels() + buttonHeight
}

// receive applies every message waiting on the link.
func (g *Game) receive() {
	for {
		select {
		case m, ok := <-g.Link.Incoming():
			if !ok {
				if g.State != DISCONNECTED {
					log.Warn("Game.receive link closed")
				}
				g.State = DISCONNECTED
				return
			}
			g.apply(m)
		default:
			return
		}
	}
}

func (g *Game) apply(m model.ServerMessage) {
	for _, setup := range m.Setup {
		g.Board = NewBoard(setup)
		g.State = READY
		g.Message = ""
	}
	g.Board.ApplyCells(m.Cells)
	for _, s := range m.Steps {
		cell := g.Board.ApplyStep(s)
		if cell != nil && s.Kind == model.STEP_VISIT {
			g.fadeIn(cell)
		}
	}
	for _, r := range m.Results {
		result := r
		g.Board.Result = &result
		g.State = FINISHED
		if r.Found {
			g.Message = fmt.Sprintf("path of %d steps", len(r.Path)-1)
		} else {
			g.Message = "no path exists"
		}
		g.pulse()
	}
	for _, e := range m.Errors {
		log.Warnf("Game.apply server error: %s", e)
		g.Message = e
		if g.State == PROCESSING && g.Board.Result == nil {
			g.State = READY
		}
	}
}

func (g *Game) click(x, y int) {
	if g.Button.Contains(x, y) {
		switch g.State {
		case READY:
			g.State = PROCESSING
			g.Link.Send(model.ClientMessage{Action: model.ACT_RUN})
		case FINISHED:
			g.Link.Send(model.ClientMessage{Action: model.ACT_RESET})
		}
		return
	}
	if g.State != READY {
		return
	}
	at := model.Coord{X: x / size, Y: y / size}
	if cell := g.Board.Cell(at); cell != nil && cell.Editable() {
		g.Link.Send(model.ClientMessage{Action: model.ACT_TOGGLE, At: at})
	}
}

func (g *Game) updateTweens() {
	for t, a := range g.Tweens {
		curr, finished := t.Update(1.0 / 60)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(g)
			}
			delete(g.Tweens, t)
		}
	}
}

func (g *Game) update(screen *ebiten.Image) error {
	g.receive()
	g.updateTweens()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.strokes[NewStroke(&MouseStrokeSource{})] = struct{}{}
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		g.strokes[NewStroke(&TouchStrokeSource{id})] = struct{}{}
	}
	for s := range g.strokes {
		s.Update()
		if s.IsReleased() {
			if s.IsClick() {
				g.click(s.initX, s.initY)
			}
			delete(g.strokes, s)
		}
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	return g.draw(screen)
}

func (g *Game) draw(screen *ebiten.Image) error {
	if err := screen.Fill(color.RGBA{70, 70, 70, 255}); err != nil {
		return err
	}

	for _, column := range g.Board.Matrix {
		for _, cell := range column {
			x, y := float64(cell.col*size), float64(cell.row*size)
			ebitenutil.DrawRect(screen, x+1, y+1, size-2, size-2, cell.Color())
			if cell.Visited {
				label := strconv.Itoa(cell.Label)
				width := font.MeasureString(g.Font, label).Ceil()
				text.Draw(screen, label, g.Font, cell.col*size+(size-width)/2, cell.row*size+size/2+6, color.Black)
			}
		}
	}

	g.Button.Draw(screen)
	caption := g.State.ButtonText()
	width := font.MeasureString(g.Label, caption).Ceil()
	text.Draw(screen, caption, g.Label, (g.boardPixels()-width)/2, g.boardPixels()+buttonHeight/2+8, color.White)

	if g.Message != "" {
		ebitenutil.DebugPrintAt(screen, g.Message, 6, g.boardPixels()+2)
	}
	return nil
}

func main() {
	serverURL := flag.String("server", "", "board server websocket, e.g. ws://localhost:8080/play")
	layout := flag.String("layout", "", "text layout to play offline")
	boardSize := flag.Int("size", 15, "board size when playing offline without a layout")
	stepDelay := flag.Duration("delay", 40*time.Millisecond, "pause between steps when playing offline")
	flag.Parse()

	var link Link
	var err error
	if *serverURL != "" {
		link, err = Dial(*serverURL)
	} else {
		link, err = Load(*layout, *boardSize, *stepDelay)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer link.Close()

	setup, err := awaitSetup(link, 5*time.Second)
	if err != nil {
		log.Fatal(err)
	}
	game, err := NewGame(link, setup)
	if err != nil {
		log.Fatal(err)
	}
	width, height := game.ScreenSize()
	if err := ebiten.Run(game.update, width, height, 1, "Path Finding"); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
