package pipeline

import (
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/groepsplan/internal/compliance"
	"github.com/jonathan/groepsplan/internal/parsing"
	"github.com/jonathan/groepsplan/internal/quality"
	"github.com/jonathan/groepsplan/internal/schemas"
	"github.com/jonathan/groepsplan/internal/types"
)

// Analysis is a parsed and scored groepsplan text.
type Analysis struct {
	Document     *types.ParsedGroepsplan    `json:"document"`
	Quality      []types.QualityCheckResult `json:"quality"`
	SchemaErrors []schemas.FieldError       `json:"schema_errors,omitempty"`
	Flags        []string                   `json:"flags,omitempty"`
}

// Analyze parses text and scores it. Compliance and quality run concurrently; both only read the
// parsed document. Schema mismatches are reported, never returned as errors.
func Analyze(text string, mode compliance.Mode) *Analysis {
	doc := parsing.ParseGroepsplanOutput(text)

	var (
		g                errgroup.Group
		complianceResult types.ComplianceResult
		checks           []types.QualityCheckResult
	)
	g.Go(func() error {
		complianceResult = compliance.Validate(doc.Sections, mode)
		return nil
	})
	g.Go(func() error {
		checks = quality.RunChecks(doc)
		return nil
	})
	_ = g.Wait()
	doc.ComplianceChecks = complianceResult

	a := &Analysis{Document: doc, Quality: checks, Flags: flags(text)}
	if err := schemas.ValidateDocument(doc); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			a.SchemaErrors = ve.Errors
		} else {
			a.SchemaErrors = []schemas.FieldError{{Field: "(schema)", Message: err.Error()}}
		}
	}
	return a
}

// flags returns the regeneration reasons raised by text, incomplete first.
func flags(text string) []string {
	var out []string
	if quality.IsIncomplete(text) {
		out = append(out, ReasonIncomplete)
	}
	if quality.IsWrongLanguage(text) {
		out = append(out, ReasonLanguage)
	}
	return out
}
