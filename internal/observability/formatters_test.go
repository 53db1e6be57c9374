package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/groepsplan/internal/ingestion"
	"github.com/jonathan/groepsplan/internal/pipeline"
	"github.com/jonathan/groepsplan/internal/types"
)

func TestPrintCompliance(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCompliance(types.ComplianceResult{
		Overall: 8,
		Checks: map[string]bool{
			types.CheckBeginsituatie: true,
			types.CheckSmartiDoelen:  true,
			types.CheckInterventies:  true,
			types.CheckEvaluatie:     true,
		},
		Details: map[string]types.Grade{types.CheckSmartiDoelen: types.GradeAdequate},
		Warnings: []types.Finding{
			{Severity: types.SeverityMinor, Section: types.CheckBetrokkenen, Message: "Betrokkenen ontbreken"},
		},
		InspectieProof: true,
	})
	output := buf.String()

	assert.Contains(t, output, "COMPLIANCE")
	assert.Contains(t, output, "8/10")
	assert.Contains(t, output, "Inspectieproof: ja")
	assert.Contains(t, output, "✓ smartiDoelen (adequate)")
	assert.Contains(t, output, "✗ handelingsgericht")
	assert.Contains(t, output, "[minor] betrokkenen: Betrokkenen ontbreken")
	assert.NotContains(t, output, "Errors:")
}

func TestPrintCompliance_ManyFindings(t *testing.T) {
	var buf bytes.Buffer
	var findings []types.Finding
	for range 7 {
		findings = append(findings, types.Finding{Severity: types.SeverityMinor, Section: "x", Message: "m"})
	}

	NewPrinter(&buf).PrintCompliance(types.ComplianceResult{Warnings: findings})
	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintQuality(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintQuality([]types.QualityCheckResult{
		{Name: types.QualityLength, Passed: false, Detail: "te kort"},
		{Name: types.QualityMickeyMouse, Passed: true},
	})
	output := buf.String()

	assert.Contains(t, output, "✗ length: te kort")
	assert.Contains(t, output, "✓ mickey_mouse")
	assert.Contains(t, output, "1/2 checks passed")
}

func TestPrintQuality_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintQuality(nil)
	assert.Empty(t, buf.String())
}

func TestPrintSections(t *testing.T) {
	var buf bytes.Buffer
	groep := 5
	vak := "Rekenen"

	NewPrinter(&buf).PrintSections(&types.ParsedGroepsplan{
		Metadata: types.Metadata{Groep: &groep, Vakgebied: &vak},
		Sections: []types.Section{
			{
				ID:      "3-aanpak-en-interventies",
				Title:   "3. Aanpak en interventies",
				Content: "De groep werkt in drie niveaus.",
				Subsections: []types.Section{
					{ID: "basisgroep", Title: "Basisgroep", Content: strings.Repeat("Dagelijkse instructie volgens het model. ", 5)},
				},
			},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "Groep:            5")
	assert.Contains(t, output, "Vakgebied:        Rekenen")
	assert.Contains(t, output, "Periode:          -")
	assert.Contains(t, output, "• 3. Aanpak en interventies")
	assert.Contains(t, output, "  • Basisgroep")
	assert.Contains(t, output, "...")
}

func TestPrintSections_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSections(nil)
	assert.Empty(t, buf.String())
}

func TestPrintGeneration(t *testing.T) {
	var buf bytes.Buffer
	id := uuid.New()

	NewPrinter(&buf).PrintGeneration(&pipeline.Result{
		RunID:         "run-1",
		Experiment:    "prompt-tone",
		Variant:       "warm_collegiaal",
		Attempts:      2,
		Regenerations: []string{pipeline.ReasonIncomplete},
		DocumentID:    &id,
	})
	output := buf.String()

	assert.Contains(t, output, "prompt-tone / warm_collegiaal")
	assert.Contains(t, output, "Attempts:  2")
	assert.Contains(t, output, "Retried:   incomplete")
	assert.Contains(t, output, id.String())
	assert.NotContains(t, output, "Flags:")
}

func TestPrintExtraction(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintExtraction(&ingestion.Extraction{
		Text:   "tekst",
		Source: ingestion.Source{Filename: "plan.html", Format: ingestion.FormatHTML, Bytes: 120},
		Prefill: ingestion.Prefill{
			Groep:         4,
			PreviousGoals: "Alle leerlingen lezen AVI M5.\nTweede regel.",
		},
	})
	output := buf.String()

	assert.Contains(t, output, "plan.html (html, 120 bytes)")
	assert.Contains(t, output, "groep:                   4")
	assert.Contains(t, output, "previous_goals:          Alle leerlingen lezen AVI M5.")
	assert.NotContains(t, output, "Tweede regel")
	assert.Contains(t, output, "vakgebied:               -")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "kort", truncate("kort", 10))

	long := strings.Repeat("ë", 20)
	got := truncate(long, 10)
	assert.Equal(t, 10, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}
