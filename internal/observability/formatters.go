// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/groepsplan/internal/ingestion"
	"github.com/jonathan/groepsplan/internal/pipeline"
	"github.com/jonathan/groepsplan/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewChars is how much of a section body PrintSections shows
	previewChars = 50
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// PrintCompliance outputs the compliance score, the per-dimension verdicts and the findings.
func (p *Printer) PrintCompliance(result types.ComplianceResult) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Score:          %d/10\n", result.Overall)
	proof := "nee"
	if result.InspectieProof {
		proof = "ja"
	}
	fmt.Fprintf(&sb, "Inspectieproof: %s\n", proof)
	sb.WriteString("\n")

	for _, dim := range types.ComplianceDimensions {
		line := fmt.Sprintf("%s %s", mark(result.Checks[dim]), dim)
		if grade, ok := result.Details[dim]; ok {
			line += fmt.Sprintf(" (%s)", grade)
		}
		sb.WriteString(line + "\n")
	}

	writeFindings(&sb, "Errors", result.Errors)
	writeFindings(&sb, "Warnings", result.Warnings)

	p.printBox("COMPLIANCE", sb.String())
}

func writeFindings(sb *strings.Builder, label string, findings []types.Finding) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", label)
	count := min(len(findings), maxItemsToShow)
	for _, f := range findings[:count] {
		fmt.Fprintf(sb, "  • [%s] %s: %s\n", f.Severity, f.Section, f.Message)
	}
	if len(findings) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(findings)-maxItemsToShow)
	}
}

// PrintQuality outputs each quality check with its verdict.
func (p *Printer) PrintQuality(results []types.QualityCheckResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for _, r := range results {
		line := fmt.Sprintf("%s %s", mark(r.Passed), r.Name)
		if r.Detail != "" {
			line += ": " + r.Detail
		}
		sb.WriteString(line + "\n")
	}
	fmt.Fprintf(&sb, "\n%d/%d checks passed\n", len(results)-len(types.FailedChecks(results)), len(results))

	p.printBox("QUALITY CHECKS", sb.String())
}

// PrintSections outputs the metadata and the section tree of a parsed document.
func (p *Printer) PrintSections(doc *types.ParsedGroepsplan) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	md := doc.Metadata
	fmt.Fprintf(&sb, "Groep:            %s\n", intOrDash(md.Groep))
	fmt.Fprintf(&sb, "Vakgebied:        %s\n", stringOrDash(md.Vakgebied))
	fmt.Fprintf(&sb, "Periode:          %s\n", stringOrDash(md.Periode))
	fmt.Fprintf(&sb, "Aantal leerlingen: %s\n", intOrDash(md.AantalLeerlingen))
	sb.WriteString("\n")

	if len(doc.Sections) == 0 {
		sb.WriteString("(no sections)\n")
	}
	var walk func(sections []types.Section, depth int)
	walk = func(sections []types.Section, depth int) {
		for _, s := range sections {
			title := s.Title
			if title == "" {
				title = "(" + s.ID + ")"
			}
			indent := strings.Repeat("  ", depth)
			fmt.Fprintf(&sb, "%s• %s [%d chars]\n", indent, title, s.ContentLength())
			if preview := firstLine(s.Content); preview != "" {
				fmt.Fprintf(&sb, "%s    %s\n", indent, truncate(preview, previewChars))
			}
			walk(s.Subsections, depth+1)
		}
	}
	walk(doc.Sections, 0)

	p.printBox("SECTIONS", sb.String())
}

// PrintGeneration outputs how a generation went: experiment arm, attempts and remaining flags.
func (p *Printer) PrintGeneration(res *pipeline.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Run:       %s\n", res.RunID)
	if res.Variant != "" {
		fmt.Fprintf(&sb, "Variant:   %s / %s\n", res.Experiment, res.Variant)
	}
	fmt.Fprintf(&sb, "Attempts:  %d\n", res.Attempts)
	if len(res.Regenerations) > 0 {
		fmt.Fprintf(&sb, "Retried:   %s\n", strings.Join(res.Regenerations, ", "))
	}
	if len(res.Flags) > 0 {
		fmt.Fprintf(&sb, "Flags:     %s\n", strings.Join(res.Flags, ", "))
	}
	if len(res.SchemaErrors) > 0 {
		fmt.Fprintf(&sb, "Schema:    %d mismatch(es)\n", len(res.SchemaErrors))
	}
	if res.DocumentID != nil {
		fmt.Fprintf(&sb, "Saved as:  %s\n", res.DocumentID)
	}

	p.printBox("GENERATION", sb.String())
}

// PrintExtraction outputs the source of an upload and the fields prefilled from it.
func (p *Printer) PrintExtraction(ext *ingestion.Extraction) {
	if ext == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "File:    %s (%s, %d bytes)\n", ext.Source.Filename, ext.Source.Format, ext.Source.Bytes)
	if ext.Title != "" {
		fmt.Fprintf(&sb, "Title:   %s\n", ext.Title)
	}
	fmt.Fprintf(&sb, "Text:    %d chars\n\n", utf8.RuneCountInString(ext.Text))

	pf := ext.Prefill
	groep := "-"
	if pf.Groep > 0 {
		groep = fmt.Sprint(pf.Groep)
	}
	fmt.Fprintf(&sb, "groep:                   %s\n", groep)
	fmt.Fprintf(&sb, "vakgebied:               %s\n", orDash(pf.Vakgebied))
	fmt.Fprintf(&sb, "previous_periode:        %s\n", orDash(firstLine(pf.PreviousPeriode)))
	fmt.Fprintf(&sb, "previous_groepsindeling: %s\n", orDash(firstLine(pf.PreviousGroepsindeling)))
	fmt.Fprintf(&sb, "previous_goals:          %s\n", orDash(firstLine(pf.PreviousGoals)))
	fmt.Fprintf(&sb, "previous_results:        %s\n", orDash(firstLine(pf.PreviousResults)))

	p.printBox("EXTRACTED UPLOAD", sb.String())
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func stringOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return orDash(*s)
}

func intOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprint(*n)
}
