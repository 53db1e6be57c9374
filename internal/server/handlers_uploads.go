package server

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/groepsplan/internal/ingestion"
)

// maxUploadBytes bounds uploaded documents.
const maxUploadBytes = 10 << 20

// handleExtract reads a multipart "file" upload and returns its text and prefilled upload fields.
// With ?enrich=true missing fields are filled by the model, best effort.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, CodeInvalidRequest, "upload is too large")
			return
		}
		s.writeError(w, &ErrValidation{Field: "file", Message: "multipart form expected"})
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "file", Message: "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(data) > maxUploadBytes {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, CodeInvalidRequest, "upload is too large")
		return
	}

	extraction, err := ingestion.Extract(header.Filename, data)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if queryFlag(r, "enrich") && s.enricher != nil && !extraction.Prefill.Complete() {
		if err := extraction.Enrich(r.Context(), s.enricher); err != nil {
			s.logger.Warn("upload enrichment failed", zap.String("file", header.Filename), zap.Error(err))
		}
	}

	s.jsonResponse(w, http.StatusOK, extraction)
}
