package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zucenko/pathwalker/model"
)

type BoardServer struct {
	Sessions        map[*BoardSession]struct{}
	SessionRequests chan SessionRequest
	SessionsEnded   chan *BoardSession
	Upgrader        *websocket.Upgrader
	Template        *model.Grid
	StepDelay       time.Duration
}

type BoardSessionState int

const (
	BS_READY BoardSessionState = iota
	BS_RUNNING
	BS_DONE
	BS_ERR
)

// BoardSession owns one grid. Only its Loop goroutine reads or writes it.
type BoardSession struct {
	State                 BoardSessionState
	Grid                  *model.Grid
	StepDelay             time.Duration
	Client                *ClientSession
	Events                chan ClientEvent
	ClientConnectRequests chan ClientConnectRequest
	Ended                 chan<- *BoardSession
}

type ClientSessionState int

const (
	CS_NEW ClientSessionState = iota + 1
	CS_PLAY
	CS_ERR
)

type ClientSession struct {
	State       ClientSessionState
	Session     *BoardSession
	Conn        *websocket.Conn
	SessionOver chan struct{}

	MessagesToSend chan model.ServerMessage

	gone     chan struct{}
	goneOnce sync.Once

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}
