package server

import (
	"net/http"
	"unicode/utf8"

	"github.com/jonathan/groepsplan/internal/experiments"
	"github.com/jonathan/groepsplan/internal/pipeline"
	"github.com/jonathan/groepsplan/internal/prompts"
	"github.com/jonathan/groepsplan/internal/types"
	"github.com/jonathan/groepsplan/internal/validation"
)

type promptResponse struct {
	pipeline.Prompt
	Length int `json:"length"`
}

// handleScratchPrompt builds the prompt for wizard inputs. Optional query parameters
// experiment and variant select an experiment arm.
func (s *Server) handleScratchPrompt(w http.ResponseWriter, r *http.Request) {
	var in types.ScratchInputs
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, err)
		return
	}
	if err := validation.ValidateScratch(in); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondPrompt(w, r, in)
}

// handleUploadPrompt builds the prompt for the upload flow.
func (s *Server) handleUploadPrompt(w http.ResponseWriter, r *http.Request) {
	var in types.UploadPromptInputs
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, err)
		return
	}
	if err := validation.ValidateUpload(in); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondPrompt(w, r, in)
}

func (s *Server) respondPrompt(w http.ResponseWriter, r *http.Request, in prompts.Inputs) {
	q := r.URL.Query()
	p, err := pipeline.BuildPrompt(in, q.Get("experiment"), q.Get("variant"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, promptResponse{Prompt: p, Length: utf8.RuneCountInString(p.Text)})
}

// handleListExperiments lists every experiment and its weighted variants.
func (s *Server) handleListExperiments(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"experiments": experiments.Experiments()})
}

type experimentResponse struct {
	experiments.Experiment
	// Assigned is the variant for the subject query parameter, when given.
	Assigned *experiments.Variant `json:"assigned,omitempty"`
}

// handleGetExperiment returns one experiment. With ?subject=<key> it also returns the variant
// that subject key is assigned to.
func (s *Server) handleGetExperiment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for _, exp := range experiments.Experiments() {
		if exp.ID != id {
			continue
		}
		resp := experimentResponse{Experiment: exp}
		if subject := r.URL.Query().Get("subject"); subject != "" {
			v, err := experiments.SelectVariant(id, subject)
			if err != nil {
				s.writeError(w, err)
				return
			}
			resp.Assigned = &v
		}
		s.jsonResponse(w, http.StatusOK, resp)
		return
	}
	s.errorResponse(w, http.StatusNotFound, CodeNotFound, "experiment not found: "+id)
}
