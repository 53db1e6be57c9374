package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/groepsplan/internal/compliance"
	"github.com/jonathan/groepsplan/internal/pipeline"
)

type analyzeRequest struct {
	Markdown string `json:"markdown"`
	// Strict overrides the server's compliance mode for this request.
	Strict *bool `json:"strict,omitempty"`
}

// handleAnalyze parses and scores a markdown groepsplan without calling the model.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Markdown) == "" {
		s.writeError(w, &ErrValidation{Field: "markdown", Message: "markdown is required"})
		return
	}

	mode := s.mode
	if req.Strict != nil {
		mode = compliance.ModeFromStrict(*req.Strict)
	}
	s.jsonResponse(w, http.StatusOK, pipeline.Analyze(req.Markdown, mode))
}
