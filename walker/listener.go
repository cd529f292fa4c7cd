package walker

import "github.com/zucenko/pathwalker/model"

// Listener receives the events of a walk in order. Start and end cells
// never produce events.
type Listener interface {
	OnVisit(at model.Coord, index int)
	OnUnvisit(at model.Coord)
}

// StepFunc adapts a function to a Listener.
type StepFunc func(step model.Step)

func (f StepFunc) OnVisit(at model.Coord, index int) {
	f(model.Step{Kind: model.STEP_VISIT, At: at, Index: index})
}

func (f StepFunc) OnUnvisit(at model.Coord) {
	f(model.Step{Kind: model.STEP_UNVISIT, At: at})
}

// Recorder keeps every event it receives.
type Recorder struct {
	Steps []model.Step
}

func (r *Recorder) OnVisit(at model.Coord, index int) {
	r.Steps = append(r.Steps, model.Step{Kind: model.STEP_VISIT, At: at, Index: index})
}

func (r *Recorder) OnUnvisit(at model.Coord) {
	r.Steps = append(r.Steps, model.Step{Kind: model.STEP_UNVISIT, At: at})
}
