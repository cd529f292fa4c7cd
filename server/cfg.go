package server

import (
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/zucenko/pathwalker/model"
)

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_NOT_FOUND = 404
const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

var (
	ErrAlreadyRun = errors.New("board already run, reset first")
	ErrRunning    = errors.New("search in progress")
)

type ResponseCode int

const (
	SESSION_READY ResponseCode = iota
	SESSION_NOT_FOUND
	SESSION_INVALIDE
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case SESSION_READY:
		return HTTP_SUCCESS
	case SESSION_NOT_FOUND:
		return HTTP_NOT_FOUND
	case SESSION_INVALIDE:
		return HTTP_BAD_REQUEST
	default:
		panic(h)
	}
}

func (bss BoardSessionState) Name() string {
	switch bss {
	case BS_READY:
		return "BS_READY"
	case BS_RUNNING:
		return "BS_RUNNING"
	case BS_DONE:
		return "BS_DONE"
	case BS_ERR:
		return "BS_ERR"
	default:
		return fmt.Sprintf("n/a:%d", bss)
	}
}

func (cs ClientSessionState) Name() string {
	switch cs {
	case CS_NEW:
		return "NEW"
	case CS_PLAY:
		return "PLAY"
	case CS_ERR:
		return "ERR"
	default:
		return "N/A"
	}
}

type SessionAwaiting struct {
	ResponseCode ResponseCode
	Session      *BoardSession
}

type SessionRequest struct {
	SessionAwaiting chan SessionAwaiting
}

type ClientConnectRequest struct {
	Con         *websocket.Conn
	SessionOver chan struct{}
}

type ClientEvent struct {
	Message model.ClientMessage
}
