// Package compliance scores a parsed groepsplan against the six inspection dimensions.
package compliance

import (
	"fmt"

	"github.com/jonathan/groepsplan/internal/types"
)

const (
	// ScoreOffset is added to the number of passed dimensions.
	ScoreOffset = 4
	// MaxScore caps the overall score.
	MaxScore = 10
	// DefaultThreshold is the number of passed dimensions needed to be inspectie-proof by default.
	DefaultThreshold = 4
	// StrictThreshold is the number of passed dimensions needed in strict mode.
	StrictThreshold = 6
)

// Mode selects the inspectie-proof threshold.
type Mode int

// Mode constants
const (
	ModeDefault Mode = iota
	ModeStrict
)

// ModeFromStrict maps a strict flag to a Mode.
func ModeFromStrict(strict bool) Mode {
	if strict {
		return ModeStrict
	}
	return ModeDefault
}

// Threshold returns the pass count needed for inspectie-proof in this mode.
func (m Mode) Threshold() int {
	if m == ModeStrict {
		return StrictThreshold
	}
	return DefaultThreshold
}

func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "default"
}

// Validate runs every dimension against sections. It never fails: findings are returned as data.
func Validate(sections []types.Section, mode Mode) types.ComplianceResult {
	result := types.ComplianceResult{
		Checks:   make(map[string]bool, len(dimensions)),
		Details:  make(map[string]types.Grade, len(dimensions)),
		Warnings: []types.Finding{},
		Errors:   []types.Finding{},
	}

	flat := flatten(sections)
	if len(flat) == 0 {
		result.Errors = append(result.Errors, types.Finding{
			Severity: types.SeverityCritical,
			Section:  "document",
			Message:  "Het document bevat geen onderdelen.",
		})
	} else if !hasContent(flat) {
		result.Errors = append(result.Errors, types.Finding{
			Severity: types.SeverityMajor,
			Section:  "document",
			Message:  "Het document bevat alleen koppen zonder inhoud.",
		})
	}

	passed := 0
	for _, d := range dimensions {
		grade, sectionID := d.grade(flat)
		result.Details[d.key] = grade
		result.Checks[d.key] = grade.Passed()

		switch grade {
		case types.GradeMissing:
			result.Warnings = append(result.Warnings, types.Finding{
				Severity: types.SeverityMinor,
				Section:  d.key,
				Message:  fmt.Sprintf("Onderdeel %s ontbreekt of wordt niet benoemd.", d.label),
			})
		case types.GradePoor:
			result.Warnings = append(result.Warnings, types.Finding{
				Severity: types.SeverityMinor,
				Section:  sectionID,
				Message:  fmt.Sprintf("Onderdeel %s is summier uitgewerkt.", d.label),
			})
		}
		if grade.Passed() {
			passed++
		}
	}

	result.Overall = min(passed+ScoreOffset, MaxScore)
	result.InspectieProof = passed >= mode.Threshold()
	return result
}

func flatten(sections []types.Section) []types.Section {
	doc := &types.ParsedGroepsplan{Sections: sections}
	return doc.Flatten()
}

func hasContent(sections []types.Section) bool {
	for _, s := range sections {
		if s.Content != "" {
			return true
		}
	}
	return false
}
