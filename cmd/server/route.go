package main

import (
	"github.com/matryer/way"
	"github.com/zucenko/pathwalker/server"
)

const URI_WS = "/play"
const URI_SOLVE = "/solve"
const URI_CONFIG = "/config"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.BoardServer.HandleHttpCall())
	s.router.HandleFunc("POST", URI_SOLVE, server.HandleSolve())
	s.router.HandleFunc("GET", URI_CONFIG, s.BoardServer.HandleConfig())
}
