package model

import "fmt"

type StepKind int

const (
	STEP_VISIT StepKind = iota + 1
	STEP_UNVISIT
)

func (k StepKind) Name() string {
	switch k {
	case STEP_VISIT:
		return "visit"
	case STEP_UNVISIT:
		return "unvisit"
	default:
		return fmt.Sprintf("n/a:%d", k)
	}
}

// Step is one event of a walk. Index is the path position of a visited
// cell and is zero for unvisits.
type Step struct {
	Kind  StepKind
	At    Coord
	Index int
}

func (s Step) String() string {
	if s.Kind == STEP_VISIT {
		return fmt.Sprintf("%s%v#%d", s.Kind.Name(), s.At, s.Index)
	}
	return fmt.Sprintf("%s%v", s.Kind.Name(), s.At)
}

type ServerMessage struct {
	Setup   []Setup
	Cells   []CellUpdate
	Steps   []Step
	Results []Result
	Errors  []string
}

type Setup struct {
	Config    Config
	Obstacles []Coord
	StepDelay int64 // milliseconds between streamed steps
}

type CellUpdate struct {
	At      Coord
	Blocked bool
}

type Result struct {
	Found     bool
	Path      []Coord
	Obstacles []Coord
}
