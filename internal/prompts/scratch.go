package prompts

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/groepsplan/internal/guidance"
	"github.com/jonathan/groepsplan/internal/types"
)

// BuildScratchPrompt assembles the generation prompt for the from-scratch wizard flow.
// The result depends only on in, so equal inputs give byte-identical prompts.
func BuildScratchPrompt(in types.ScratchInputs) string {
	var sb strings.Builder

	sb.WriteString(MustGet("scratch-preamble"))
	sb.WriteString("\n\n")

	sb.WriteString(Format(MustGet("scratch-framing"), map[string]string{
		"Groep":        strconv.Itoa(in.Groep),
		"Vakgebied":    in.Vakgebied.Label(),
		"Expectations": guidance.Expectations(in.Vakgebied, in.Groep),
	}))
	sb.WriteString("\n\n")

	sb.WriteString(Format(MustGet("scratch-challenge"), map[string]string{
		"Guidance": guidance.ChallengeGuidance(in.Challenge),
	}))
	sb.WriteString("\n\n")

	g := in.Groepsindeling
	sb.WriteString(Format(MustGet("scratch-composition"), map[string]string{
		"Aantal":       strconv.Itoa(in.AantalLeerlingen),
		"Basis":        strconv.Itoa(g.Basis),
		"BasisPct":     percentage(g.Basis, in.AantalLeerlingen),
		"Intensief":    strconv.Itoa(g.Intensief),
		"IntensiefPct": percentage(g.Intensief, in.AantalLeerlingen),
		"Meer":         strconv.Itoa(g.Meer),
		"MeerPct":      percentage(g.Meer, in.AantalLeerlingen),
	}))
	sb.WriteString("\n\n")

	if in.ToetsScores != nil {
		sb.WriteString(Format(MustGet("scratch-toets"), map[string]string{
			"Basis":     orUnknown(in.ToetsScores.Basis),
			"Intensief": orUnknown(in.ToetsScores.Intensief),
			"Meer":      orUnknown(in.ToetsScores.Meer),
		}))
		sb.WriteString("\n\n")
	}

	sb.WriteString(Format(MustGet("scratch-starting-point"), map[string]string{
		"Description": guidance.StartingPointDescription(in.StartingPoint),
	}))
	sb.WriteString("\n\n")

	sb.WriteString(MustGet("directive"))

	return sb.String()
}

func percentage(part, total int) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int(math.Round(float64(part)*100/float64(total))))
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "onbekend"
	}
	return s
}
