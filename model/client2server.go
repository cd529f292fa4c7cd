package model

import "fmt"

type Action int

const (
	ACT_SET_OBSTACLE Action = iota + 1
	ACT_TOGGLE
	ACT_RUN
	ACT_RESET
)

func (a Action) Name() string {
	switch a {
	case ACT_SET_OBSTACLE:
		return "SET_OBSTACLE"
	case ACT_TOGGLE:
		return "TOGGLE"
	case ACT_RUN:
		return "RUN"
	case ACT_RESET:
		return "RESET"
	default:
		return fmt.Sprintf("n/a:%d", a)
	}
}

type ClientMessage struct {
	Action  Action
	At      Coord
	Blocked bool
}
