package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/groepsplan/internal/types"
)

// Document kinds
const (
	KindGroepsplan     = "groepsplan"
	KindOPP            = "opp"
	KindDifferentiatie = "differentiatie"
)

// ValidKind reports whether kind is a known document kind.
func ValidKind(kind string) bool {
	switch kind {
	case KindGroepsplan, KindOPP, KindDifferentiatie:
		return true
	}
	return false
}

// Document is a stored generation result.
type Document struct {
	ID              uuid.UUID                  `json:"id"`
	TeacherID       string                     `json:"teacher_id"`
	Kind            string                     `json:"kind"`
	Groep           *int                       `json:"groep,omitempty"`
	Vakgebied       *string                    `json:"vakgebied,omitempty"`
	Experiment      *string                    `json:"experiment,omitempty"`
	Variant         *string                    `json:"variant,omitempty"`
	Prompt          string                     `json:"prompt"`
	RawText         string                     `json:"raw_text"`
	Parsed          *types.ParsedGroepsplan    `json:"parsed"`
	Quality         []types.QualityCheckResult `json:"quality"`
	ComplianceScore int                        `json:"compliance_score"`
	InspectieProof  bool                       `json:"inspectie_proof"`
	Attempts        int                        `json:"attempts"`
	CreatedAt       time.Time                  `json:"created_at"`
}

// DocumentSummary is the list view of a Document.
type DocumentSummary struct {
	ID              uuid.UUID `json:"id"`
	TeacherID       string    `json:"teacher_id"`
	Kind            string    `json:"kind"`
	Groep           *int      `json:"groep,omitempty"`
	Vakgebied       *string   `json:"vakgebied,omitempty"`
	Variant         *string   `json:"variant,omitempty"`
	ComplianceScore int       `json:"compliance_score"`
	InspectieProof  bool      `json:"inspectie_proof"`
	CreatedAt       time.Time `json:"created_at"`
}

// Summary returns the list view of d.
func (d *Document) Summary() DocumentSummary {
	return DocumentSummary{
		ID:              d.ID,
		TeacherID:       d.TeacherID,
		Kind:            d.Kind,
		Groep:           d.Groep,
		Vakgebied:       d.Vakgebied,
		Variant:         d.Variant,
		ComplianceScore: d.ComplianceScore,
		InspectieProof:  d.InspectieProof,
		CreatedAt:       d.CreatedAt,
	}
}

// validate checks the fields the table requires.
func (d *Document) validate() error {
	if d.TeacherID == "" {
		return fmt.Errorf("teacher id is required")
	}
	if !ValidKind(d.Kind) {
		return fmt.Errorf("unknown document kind %q", d.Kind)
	}
	if d.Parsed == nil {
		return fmt.Errorf("parsed document is required")
	}
	return nil
}

// ListDocumentsOptions contains filters for listing documents
type ListDocumentsOptions struct {
	TeacherID      string // required
	Kind           string
	Vakgebied      string
	InspectieProof *bool
	Limit          int // defaults to DefaultListLimit
	Offset         int
}

// Pagination bounds for ListDocuments.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)
