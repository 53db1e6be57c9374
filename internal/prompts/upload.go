package prompts

import (
	"strconv"
	"strings"

	"github.com/jonathan/groepsplan/internal/types"
)

// BuildUploadPrompt assembles the prompt for a new plan based on a previously uploaded document.
// The extracted text is embedded in full.
func BuildUploadPrompt(in types.UploadPromptInputs) string {
	var sb strings.Builder

	sb.WriteString(MustGet("upload-preamble"))
	sb.WriteString("\n\n")

	groep := "onbekend"
	if in.Groep > 0 {
		groep = strconv.Itoa(in.Groep)
	}
	sb.WriteString(Format(MustGet("upload-previous"), map[string]string{
		"Groep":          groep,
		"Vakgebied":      orUnknown(in.Vakgebied),
		"Periode":        orUnknown(in.PreviousPeriode),
		"Groepsindeling": orUnknown(in.PreviousGroepsindeling),
		"Goals":          orUnknown(in.PreviousGoals),
		"Results":        orUnknown(in.PreviousResults),
		"ExtractedText":  strings.TrimSpace(in.ExtractedText),
	}))
	sb.WriteString("\n\n")

	modifications := strings.TrimSpace(in.UserModifications)
	if modifications == "" {
		modifications = "geen"
	}
	sb.WriteString(Format(MustGet("upload-new"), map[string]string{
		"NewVakgebied":  strings.TrimSpace(in.NewVakgebied),
		"Challenge":     strings.TrimSpace(in.ChallengeDescription),
		"Modifications": modifications,
	}))
	sb.WriteString("\n\n")

	sb.WriteString(MustGet("directive"))

	return sb.String()
}
