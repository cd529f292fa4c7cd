package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pathwalker/model"
	"github.com/zucenko/pathwalker/walker"
)

const maxLayoutBytes = 64 << 10

type SolveResponse struct {
	Config     model.Config  `json:"config"`
	Found      bool          `json:"found"`
	Path       []model.Coord `json:"path"`
	Steps      []model.Step  `json:"steps"`
	Obstacles  []model.Coord `json:"obstacles"`
	Iterations int           `json:"iterations"`
	Error      string        `json:"error,omitempty"`
}

// HandleSolve walks a text layout posted in the request body and answers
// with the path, the step events and the obstacles left after the walk.
func HandleSolve() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grid, err := ReadLayout(io.LimitReader(r.Body, maxLayoutBytes))
		if err != nil {
			log.Warnf("HandleSolve bad layout %v", err)
			writeJSON(w, HTTP_BAD_REQUEST, SolveResponse{Error: err.Error()})
			return
		}
		recorder := &walker.Recorder{}
		result, err := walker.FindPath(r.Context(), grid, recorder)
		if err != nil && !errors.Is(err, walker.ErrNoPath) {
			writeJSON(w, HTTP_SERVER_ERR, SolveResponse{Error: err.Error()})
			return
		}
		response := SolveResponse{
			Config:     grid.Config,
			Found:      result.Found,
			Path:       result.Path,
			Steps:      recorder.Steps,
			Obstacles:  grid.Obstacles(),
			Iterations: result.Iterations,
		}
		if err != nil {
			response.Error = err.Error()
		}
		writeJSON(w, HTTP_SUCCESS, response)
	}
}

// HandleConfig describes the board new sessions start from.
func (s *BoardServer) HandleConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, HTTP_SUCCESS, model.Setup{
			Config:    s.Template.Config,
			Obstacles: s.Template.Obstacles(),
			StepDelay: s.StepDelay.Milliseconds(),
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("writeJSON %v", err)
	}
}
