package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/groepsplan/internal/db"
	"github.com/jonathan/groepsplan/internal/server/middleware"
)

type listDocumentsResponse struct {
	Documents []db.DocumentSummary `json:"documents"`
	Total     int                  `json:"total"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
}

// handleListDocuments lists the caller's documents. Filters: kind, vakgebied, inspectie_proof,
// limit, offset.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := s.documentRoute(w, r)
	if !ok {
		return
	}

	opts, err := parseListOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.TeacherID = teacherID

	docs, total, err := s.store.ListDocuments(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if docs == nil {
		docs = []db.DocumentSummary{}
	}
	s.jsonResponse(w, http.StatusOK, listDocumentsResponse{
		Documents: docs,
		Total:     total,
		Limit:     db.ClampLimit(opts.Limit),
		Offset:    opts.Offset,
	})
}

// handleGetDocument returns one of the caller's documents. Documents of other teachers are
// reported as not found.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := s.documentRoute(w, r)
	if !ok {
		return
	}
	id, err := documentID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if doc == nil || doc.TeacherID != teacherID {
		s.writeError(w, &ErrDocumentNotFound{ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleDeleteDocument deletes one of the caller's documents.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := s.documentRoute(w, r)
	if !ok {
		return
	}
	id, err := documentID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	deleted, err := s.store.DeleteDocument(r.Context(), id, teacherID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !deleted {
		s.writeError(w, &ErrDocumentNotFound{ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// documentRoute checks the store is configured and returns the caller's teacher id.
func (s *Server) documentRoute(w http.ResponseWriter, r *http.Request) (string, bool) {
	if s.store == nil {
		s.writeError(w, &ErrUnavailable{Component: "document store"})
		return "", false
	}
	teacherID, err := middleware.GetTeacherID(r)
	if err != nil {
		s.writeError(w, err)
		return "", false
	}
	return teacherID.String(), true
}

func documentID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid document id"}
	}
	return id, nil
}

func parseListOptions(r *http.Request) (db.ListDocumentsOptions, error) {
	q := r.URL.Query()
	opts := db.ListDocumentsOptions{
		Kind:      q.Get("kind"),
		Vakgebied: q.Get("vakgebied"),
	}
	if opts.Kind != "" && !db.ValidKind(opts.Kind) {
		return opts, &ErrValidation{Field: "kind", Message: "unknown document kind"}
	}
	if v := q.Get("inspectie_proof"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, &ErrValidation{Field: "inspectie_proof", Message: "must be true or false"}
		}
		opts.InspectieProof = &b
	}

	var err error
	if opts.Limit, err = intParam(q.Get("limit"), "limit"); err != nil {
		return opts, err
	}
	if opts.Offset, err = intParam(q.Get("offset"), "offset"); err != nil {
		return opts, err
	}
	return opts, nil
}

func intParam(v, field string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, &ErrValidation{Field: field, Message: "must be a non-negative integer"}
	}
	return n, nil
}
