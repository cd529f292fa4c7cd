package server

import (
	"context"
	"encoding/gob"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pathwalker/model"
	"github.com/zucenko/pathwalker/walker"
)

var errClientGone = errors.New("client gone")

// ConnectTimeout bounds how long a new session waits for its websocket.
var ConnectTimeout = 5 * time.Second

func NewBoardServer(template *model.Grid, stepDelay time.Duration) *BoardServer {
	return &BoardServer{
		Sessions:        make(map[*BoardSession]struct{}),
		SessionRequests: make(chan SessionRequest),
		SessionsEnded:   make(chan *BoardSession),
		Upgrader:        &websocket.Upgrader{},
		Template:        template,
		StepDelay:       stepDelay,
	}
}

func (s *BoardServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received from %s", r.RemoteAddr)

		awaiting := make(chan SessionAwaiting, 1)
		select {
		case s.SessionRequests <- SessionRequest{SessionAwaiting: awaiting}:
		case <-time.After(timeout):
			log.Warn("SessionRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var sa SessionAwaiting
		select {
		case sa = <-awaiting:
			switch sa.ResponseCode {
			case SESSION_NOT_FOUND, SESSION_INVALIDE:
				w.WriteHeader(sa.ResponseCode.ToHttp())
				return
			case SESSION_READY:
			default:
				log.Errorf("sa.ResponseCode not expected:%v", sa.ResponseCode)
				w.WriteHeader(HTTP_SERVER_ERR)
				return
			}
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall SessionAwaiting <- TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// the upgrader already answered; the session ends on ConnectTimeout
			log.Printf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		sessionOver := make(chan struct{})
		select {
		case sa.Session.ClientConnectRequests <- ClientConnectRequest{
			Con:         con,
			SessionOver: sessionOver}:
		case <-time.After(timeout):
			log.Warn("HandleHttpCall ClientConnectRequests TIMEOUTED")
			return
		}

		<-sessionOver
		log.Info("HandleHttpCall session over")
	}
}

// Loop hands out sessions until ctx is done.
func (s *BoardServer) Loop(ctx context.Context) {
	log.Printf("BoardServer.Loop starting")
	for {
		select {
		case <-ctx.Done():
			log.Printf("BoardServer.Loop stopping, %d sessions open", len(s.Sessions))
			return
		case req := <-s.SessionRequests:
			bs := &BoardSession{
				State:                 BS_READY,
				Grid:                  s.Template.Clone(),
				StepDelay:             s.StepDelay,
				Events:                make(chan ClientEvent, 16),
				ClientConnectRequests: make(chan ClientConnectRequest),
				Ended:                 s.SessionsEnded,
			}
			s.Sessions[bs] = struct{}{}
			go bs.Loop(ctx)
			req.SessionAwaiting <- SessionAwaiting{
				ResponseCode: SESSION_READY,
				Session:      bs,
			}
		case bs := <-s.SessionsEnded:
			delete(s.Sessions, bs)
			log.Infof("BoardServer.Loop session ended, %d open", len(s.Sessions))
		}
	}
}

func (bs *BoardSession) Loop(ctx context.Context) {
	log.Info("BoardSession.Loop start")
	defer bs.end(ctx)

	select {
	case ccr := <-bs.ClientConnectRequests:
		bs.addClient(ccr.Con, ccr.SessionOver)
	case <-time.After(ConnectTimeout):
		log.Warn("BoardSession.Loop no client connected")
		return
	case <-ctx.Done():
		return
	}

	bs.Client.Send(bs.MakeSetupMessage())
	for {
		select {
		case <-ctx.Done():
			return
		case <-bs.Client.gone:
			log.Warn("BoardSession.Loop client gone")
			bs.State = BS_ERR
			bs.Client.State = CS_ERR
			return
		case ce := <-bs.Events:
			bs.Handle(ce.Message)
		}
	}
}

func (bs *BoardSession) end(ctx context.Context) {
	if bs.Client != nil {
		bs.Client.markGone()
		close(bs.Client.SessionOver)
	}
	select {
	case bs.Ended <- bs:
	case <-ctx.Done():
	}
}

// Handle applies one client message and answers it.
func (bs *BoardSession) Handle(cm model.ClientMessage) {
	log.Debugf("BoardSession.Handle %s %v", cm.Action.Name(), cm.At)
	switch cm.Action {
	case model.ACT_SET_OBSTACLE, model.ACT_TOGGLE:
		bs.Client.Send(bs.Edit(cm))
	case model.ACT_RUN:
		err := bs.Run(bs.Client.Send)
		if errors.Is(err, errClientGone) {
			log.Warn("BoardSession.Handle client gone during run")
		} else if err != nil {
			bs.Client.Send(errorMessage(err))
		}
	case model.ACT_RESET:
		bs.Client.Send(bs.Reset())
	default:
		log.Warnf("BoardSession.Handle unknown action %s", cm.Action.Name())
		bs.Client.Send(model.ServerMessage{Errors: []string{"unknown action " + cm.Action.Name()}})
	}
}

// Edit places, removes or toggles an obstacle while the board is ready.
func (bs *BoardSession) Edit(cm model.ClientMessage) model.ServerMessage {
	switch bs.State {
	case BS_READY:
	case BS_RUNNING:
		return errorMessage(ErrRunning)
	default:
		return errorMessage(ErrAlreadyRun)
	}
	blocked := cm.Blocked
	var err error
	if cm.Action == model.ACT_TOGGLE {
		blocked, err = bs.Grid.Toggle(cm.At)
	} else {
		err = bs.Grid.SetObstacle(cm.At, blocked)
	}
	if err != nil {
		return errorMessage(err)
	}
	return model.ServerMessage{Cells: []model.CellUpdate{{At: cm.At, Blocked: blocked}}}
}

// Run walks the board once, passing every step and finally the result to
// emit. emit returning false aborts the run.
func (bs *BoardSession) Run(emit func(model.ServerMessage) bool) error {
	switch bs.State {
	case BS_READY:
	case BS_RUNNING:
		return ErrRunning
	default:
		return ErrAlreadyRun
	}
	w, err := walker.New(bs.Grid, walker.WithLogger(log.WithField("component", "session")))
	if err != nil {
		return err
	}
	bs.State = BS_RUNNING
	started := time.Now()
	for {
		step, ok := w.Step()
		if !ok {
			break
		}
		if !emit(model.ServerMessage{Steps: []model.Step{step}}) {
			bs.State = BS_ERR
			return errClientGone
		}
		if bs.StepDelay > 0 {
			time.Sleep(bs.StepDelay)
		}
	}

	result, err := w.Result()
	log.Infof("BoardSession.Run %s after %d iterations in %v", w.State().Name(), result.Iterations, time.Since(started))
	bs.State = BS_DONE
	if err != nil && !errors.Is(err, walker.ErrNoPath) {
		return err
	}
	if !emit(model.ServerMessage{Results: []model.Result{{
		Found:     result.Found,
		Path:      result.Path,
		Obstacles: bs.Grid.Obstacles(),
	}}}) {
		return errClientGone
	}
	return nil
}

// Reset clears every obstacle and makes the board ready again.
func (bs *BoardSession) Reset() model.ServerMessage {
	bs.Grid.Reset()
	bs.State = BS_READY
	return bs.MakeSetupMessage()
}

func (bs *BoardSession) MakeSetupMessage() model.ServerMessage {
	return model.ServerMessage{
		Setup: []model.Setup{{
			Config:    bs.Grid.Config,
			Obstacles: bs.Grid.Obstacles(),
			StepDelay: bs.StepDelay.Milliseconds(),
		}},
	}
}

func errorMessage(err error) model.ServerMessage {
	return model.ServerMessage{Errors: []string{err.Error()}}
}

func (bs *BoardSession) addClient(conn *websocket.Conn, sessionOver chan struct{}) {
	log.Printf("BoardSession.addClient")
	cs := &ClientSession{
		State:          CS_PLAY,
		Session:        bs,
		Conn:           conn,
		SessionOver:    sessionOver,
		MessagesToSend: make(chan model.ServerMessage, 10),
		gone:           make(chan struct{}),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			cs.DebugLastPing = time.Now()
			cs.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	go cs.LoopChannelRead()
	go cs.LoopChannelWrite()
	bs.Client = cs
}

func (cs *ClientSession) markGone() {
	cs.goneOnce.Do(func() { close(cs.gone) })
}

// Send queues a message for the client. It reports false once the client is gone.
func (cs *ClientSession) Send(m model.ServerMessage) bool {
	select {
	case cs.MessagesToSend <- m:
		return true
	case <-cs.gone:
		return false
	}
}

func (cs *ClientSession) LoopChannelRead() {
	log.Printf("LoopChannelRead STARTED")
	defer log.Printf("LoopChannelRead ENDED")
	for {
		messageType, r, err := cs.Conn.NextReader()
		if err != nil {
			log.Printf("LoopChannelRead err reading message from Conn %v", err)
			cs.markGone()
			return
		}
		log.Debugf("LoopChannelRead received message type: %d", messageType)
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			log.Warnf("LoopChannelRead cant decode %v", err)
			cs.markGone()
			return
		}
		cs.DebugLastMessage = time.Now()
		cs.DebugInMessages++

		select {
		case cs.Session.Events <- ClientEvent{Message: cm}:
		case <-cs.gone:
			return
		}
	}
}

// this function only consumes. no worries about full buffer stuck
func (cs *ClientSession) LoopChannelWrite() {
	log.Printf("ClientSession.LoopChannelWrite STARTED")
	defer log.Printf("LoopChannelWrite ENDED")
	for {
		select {
		case <-cs.gone:
			return
		case mes := <-cs.MessagesToSend:
			w, err := cs.Conn.NextWriter(websocket.BinaryMessage)
			if err != nil {
				log.Warnf("ClientSession.LoopChannelWrite cant get writer %v", err)
				cs.markGone()
				return
			}
			if err = gob.NewEncoder(w).Encode(mes); err != nil {
				log.Warnf("ClientSession.LoopChannelWrite cant encode %v", err)
				cs.markGone()
				return
			}
			if err = w.Close(); err != nil {
				log.Warnf("ClientSession.LoopChannelWrite cant flush %v", err)
				cs.markGone()
				return
			}
			cs.DebugOutMessages++
		}
	}
}
