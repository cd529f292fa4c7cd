package main

import (
	"encoding/gob"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pathwalker/model"
	"github.com/zucenko/pathwalker/server"
)

// Link carries client messages to a board session and its answers back.
type Link interface {
	Send(cm model.ClientMessage)
	Incoming() <-chan model.ServerMessage
	Close() error
}

type remoteLink struct {
	conn *websocket.Conn
	out  chan model.ClientMessage
	in   chan model.ServerMessage
}

// Dial connects to a board server websocket.
func Dial(url string) (Link, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	l := &remoteLink{
		conn: conn,
		out:  make(chan model.ClientMessage, 10),
		in:   make(chan model.ServerMessage, 64),
	}
	go l.loopRead()
	go l.loopWrite()
	return l, nil
}

func (l *remoteLink) Send(cm model.ClientMessage) {
	select {
	case l.out <- cm:
	default:
		log.Warnf("remoteLink.Send dropping %s, queue full", cm.Action.Name())
	}
}

func (l *remoteLink) Incoming() <-chan model.ServerMessage { return l.in }

func (l *remoteLink) Close() error {
	close(l.out)
	return l.conn.Close()
}

func (l *remoteLink) loopRead() {
	defer close(l.in)
	for {
		_, r, err := l.conn.NextReader()
		if err != nil {
			log.Printf("remoteLink.loopRead %v", err)
			return
		}
		m := model.ServerMessage{}
		if err := gob.NewDecoder(r).Decode(&m); err != nil {
			log.Warnf("remoteLink.loopRead cant decode %v", err)
			return
		}
		l.in <- m
	}
}

func (l *remoteLink) loopWrite() {
	for cm := range l.out {
		w, err := l.conn.NextWriter(websocket.BinaryMessage)
		if err != nil {
			log.Warnf("remoteLink.loopWrite cant get writer %v", err)
			return
		}
		if err = gob.NewEncoder(w).Encode(cm); err != nil {
			log.Warnf("remoteLink.loopWrite cant encode %v", err)
			return
		}
		if err = w.Close(); err != nil {
			log.Warnf("remoteLink.loopWrite cant flush %v", err)
			return
		}
	}
}

// localLink drives a board session in process, no server involved.
type localLink struct {
	session *server.BoardSession
	out     chan model.ClientMessage
	in      chan model.ServerMessage
}

// Load opens a text layout, or an empty board of the given size when path
// is empty, and serves it in process.
func Load(path string, size int, stepDelay time.Duration) (Link, error) {
	var grid *model.Grid
	var err error
	if path != "" {
		file, fileErr := ebitenutil.OpenFile(path)
		if fileErr != nil {
			return nil, fmt.Errorf("failed opening layout: %w", fileErr)
		}
		defer file.Close()
		grid, err = server.ReadLayout(file)
	} else {
		grid, err = model.NewGrid(model.SquareConfig(size))
	}
	if err != nil {
		return nil, err
	}

	l := &localLink{
		session: &server.BoardSession{State: server.BS_READY, Grid: grid, StepDelay: stepDelay},
		out:     make(chan model.ClientMessage, 10),
		in:      make(chan model.ServerMessage, 1024),
	}
	l.in <- l.session.MakeSetupMessage()
	go l.loop()
	return l, nil
}

func (l *localLink) Send(cm model.ClientMessage) { l.out <- cm }

func (l *localLink) Incoming() <-chan model.ServerMessage { return l.in }

func (l *localLink) Close() error {
	close(l.out)
	return nil
}

func (l *localLink) loop() {
	for cm := range l.out {
		switch cm.Action {
		case model.ACT_RUN:
			err := l.session.Run(func(m model.ServerMessage) bool {
				l.in <- m
				return true
			})
			if err != nil {
				l.in <- model.ServerMessage{Errors: []string{err.Error()}}
			}
		case model.ACT_RESET:
			l.in <- l.session.Reset()
		default:
			l.in <- l.session.Edit(cm)
		}
	}
}

// awaitSetup blocks until the first setup message arrives.
func awaitSetup(link Link, timeout time.Duration) (model.Setup, error) {
	deadline := time.After(timeout)
	for {
		select {
		case m, ok := <-link.Incoming():
			if !ok {
				return model.Setup{}, fmt.Errorf("link closed before setup")
			}
			if len(m.Setup) > 0 {
				return m.Setup[0], nil
			}
		case <-deadline:
			return model.Setup{}, fmt.Errorf("no setup within %v", timeout)
		}
	}
}
