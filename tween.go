package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// visitFade is how long a freshly visited cell takes to turn fully yellow.
const visitFade = 0.3

type Action struct {
	nexts    []func(g *Game)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	if a.onFinish == nil {
		a.onFinish = make([]func(), 0)
	}
	a.onFinish = append(a.onFinish, f)
}

func (a *Action) next(t *gween.Tween) *Action {
	action := Action{}
	if a.nexts == nil {
		a.nexts = make([]func(g *Game), 0)
	}
	a.nexts = append(a.nexts,
		func(g *Game) {
			g.Tweens[t] = action
		})
	return &action
}

// fadeIn animates a visited cell from the free colour to the path colour.
func (g *Game) fadeIn(cell *Cell) {
	t := gween.New(0, 1, visitFade, ease.OutQuad)
	action := Action{onChange: func(v float32) {
		if cell.Visited {
			cell.alpha = float64(v)
		}
	}}
	action.addOnFinish(func() {
		if cell.Visited {
			cell.alpha = 1
		}
	})
	g.Tweens[t] = action
}

// pulse flashes the button frame once the walk has finished.
func (g *Game) pulse() {
	down := gween.New(1, 0.4, 0.15, ease.Linear)
	action := Action{onChange: func(v float32) { g.Button.alpha = float64(v) }}
	back := action.next(gween.New(0.4, 1, 0.15, ease.Linear))
	back.onChange = func(v float32) { g.Button.alpha = float64(v) }
	g.Tweens[down] = action
}
