package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/groepsplan/internal/llm"
	"github.com/jonathan/groepsplan/internal/parsing"
	"github.com/jonathan/groepsplan/internal/types"
)

// Prefill holds the upload fields that could be read from a previous plan.
// Empty strings and a zero Groep mean "not found".
type Prefill struct {
	Groep                  int    `json:"groep,omitempty"`
	Vakgebied              string `json:"vakgebied,omitempty"`
	PreviousPeriode        string `json:"previous_periode,omitempty"`
	PreviousGroepsindeling string `json:"previous_groepsindeling,omitempty"`
	PreviousGoals          string `json:"previous_goals,omitempty"`
	PreviousResults        string `json:"previous_results,omitempty"`
}

var (
	groepInTitle = regexp.MustCompile(`(?i)\bgroep\s+([1-8])\b`)

	indelingTitle   = regexp.MustCompile(`(?i)groepsindeling|indeling|subgroep|instructiegroep`)
	doelenTitle     = regexp.MustCompile(`(?i)doel`)
	resultatenTitle = regexp.MustCompile(`(?i)resultat|evaluatie|opbrengst`)
)

// BuildPrefill runs the document parser over text and maps what it finds onto the upload fields.
func BuildPrefill(text string) Prefill {
	doc := parsing.ParseGroepsplanOutput(text)
	var p Prefill

	if g := doc.Metadata.Groep; g != nil && *g >= 1 && *g <= 8 {
		p.Groep = *g
	}
	if v := doc.Metadata.Vakgebied; v != nil {
		p.Vakgebied = normalizedVakgebied(*v)
	}
	if per := doc.Metadata.Periode; per != nil {
		p.PreviousPeriode = strings.TrimSpace(*per)
	}

	if p.Vakgebied == "" {
		p.Vakgebied = vakgebiedInTitle(doc.Title)
	}

	flat := doc.Flatten()
	titles := []string{doc.Title}
	for _, s := range flat {
		titles = append(titles, s.Title)
		if p.Vakgebied == "" && s.Level == 1 {
			p.Vakgebied = vakgebiedInTitle(s.Title)
		}
	}
	for _, title := range titles {
		if p.Groep != 0 {
			break
		}
		if m := groepInTitle.FindStringSubmatch(title); m != nil {
			p.Groep = int(m[1][0] - '0')
		}
	}

	p.PreviousGroepsindeling = firstSectionBody(flat, indelingTitle)
	p.PreviousGoals = firstSectionBody(flat, doelenTitle)
	p.PreviousResults = firstSectionBody(flat, resultatenTitle)
	return p
}

// vakgebiedInTitle looks for a known subject among the words of a title, two-word names first.
func vakgebiedInTitle(title string) string {
	words := strings.Fields(title)
	for i := range words {
		if i+1 < len(words) {
			if v, ok := parsing.NormalizeVakgebied(words[i] + " " + words[i+1]); ok {
				return string(v)
			}
		}
		if v, ok := parsing.NormalizeVakgebied(words[i]); ok {
			return string(v)
		}
	}
	return ""
}

func normalizedVakgebied(raw string) string {
	if v, ok := parsing.NormalizeVakgebied(raw); ok {
		return string(v)
	}
	return strings.TrimSpace(raw)
}

// firstSectionBody returns the text of the first titled section matching pattern, without its title.
func firstSectionBody(sections []types.Section, pattern *regexp.Regexp) string {
	for _, s := range sections {
		if s.Title == "" || !pattern.MatchString(s.Title) {
			continue
		}
		body := strings.TrimSpace(strings.TrimPrefix(s.FullText(), s.Title))
		if body != "" {
			return body
		}
	}
	return ""
}

// Merge fills the empty fields of p from other. Fields already found in p are kept.
func (p Prefill) Merge(other Prefill) Prefill {
	if p.Groep == 0 && other.Groep >= 1 && other.Groep <= 8 {
		p.Groep = other.Groep
	}
	if p.Vakgebied == "" && other.Vakgebied != "" {
		p.Vakgebied = normalizedVakgebied(other.Vakgebied)
	}
	if p.PreviousPeriode == "" {
		p.PreviousPeriode = other.PreviousPeriode
	}
	if p.PreviousGroepsindeling == "" {
		p.PreviousGroepsindeling = other.PreviousGroepsindeling
	}
	if p.PreviousGoals == "" {
		p.PreviousGoals = other.PreviousGoals
	}
	if p.PreviousResults == "" {
		p.PreviousResults = other.PreviousResults
	}
	return p
}

// Complete reports whether every prefill field was found.
func (p Prefill) Complete() bool {
	return p.Groep != 0 && p.Vakgebied != "" && p.PreviousPeriode != "" &&
		p.PreviousGroepsindeling != "" && p.PreviousGoals != "" && p.PreviousResults != ""
}

// UploadInputs combines the prefill with the teacher's answers into prompt inputs.
func (e *Extraction) UploadInputs(newVakgebied, challengeDescription, modifications string) types.UploadPromptInputs {
	return types.UploadPromptInputs{
		ExtractedText:          e.Text,
		Groep:                  e.Prefill.Groep,
		Vakgebied:              e.Prefill.Vakgebied,
		PreviousPeriode:        e.Prefill.PreviousPeriode,
		PreviousGroepsindeling: e.Prefill.PreviousGroepsindeling,
		PreviousGoals:          e.Prefill.PreviousGoals,
		PreviousResults:        e.Prefill.PreviousResults,
		NewVakgebied:           newVakgebied,
		ChallengeDescription:   challengeDescription,
		UserModifications:      modifications,
	}
}

// Enrich asks the model for the fields the parser could not find. It is a no-op when the
// prefill is already complete. Values found by the parser always win.
func (e *Extraction) Enrich(ctx context.Context, client llm.Client) error {
	if e.Prefill.Complete() {
		return nil
	}

	prompt := llm.BuildExtractionPrompt(llm.UploadPrefillSchema(), e.Text)
	resp, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return fmt.Errorf("failed to extract upload fields: %w", err)
	}

	var extracted Prefill
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(resp)), &extracted); err != nil {
		return fmt.Errorf("failed to unmarshal upload fields: %w", err)
	}
	e.Prefill = e.Prefill.Merge(extracted)
	return nil
}
