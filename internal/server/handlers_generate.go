package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/groepsplan/internal/pipeline"
	"github.com/jonathan/groepsplan/internal/server/middleware"
)

// generationRequest decodes the body of both generate routes. The teacher comes from the token.
func (s *Server) generationRequest(r *http.Request) (pipeline.Request, error) {
	if s.generator == nil {
		return pipeline.Request{}, &ErrUnavailable{Component: "generation"}
	}
	var req pipeline.Request
	if err := decodeJSON(r, &req); err != nil {
		return pipeline.Request{}, err
	}
	teacherID, err := middleware.GetTeacherID(r)
	if err != nil {
		return pipeline.Request{}, err
	}
	req.TeacherID = teacherID.String()
	return req, nil
}

// handleGenerate runs a generation and returns the result when it is done.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := s.generationRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.generator.Run(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

// handleGenerateStream runs a generation and streams progress as Server-Sent Events. The stream
// ends with a "result" or an "error" event.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.generationRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}

	req.OnProgress = func(event pipeline.ProgressEvent) {
		if event.Step == pipeline.StepComplete {
			// the result event carries the same payload
			return
		}
		if err := sse.WriteEvent(eventProgress, event); err != nil {
			s.logger.Debug("failed to write progress event", zap.Error(err))
		}
	}

	res, err := s.generator.Run(r.Context(), req)
	if err != nil {
		_, body := s.errorBodyFor(err)
		sse.WriteError(body)
		return
	}
	if err := sse.WriteEvent(eventResult, res); err != nil {
		s.logger.Warn("failed to write result event", zap.Error(err))
	}
}
