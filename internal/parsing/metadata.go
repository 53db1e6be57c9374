package parsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/groepsplan/internal/types"
)

// labelPatterns match a bold label ("**Groep:** 5" or "**Groep**: 5") anywhere on a line,
// and a plain label ("Groep: 5") at the start of a line or list item. Values end at a table
// cell border or at the next bold label.
type labelPatterns struct {
	bold  *regexp.Regexp
	plain *regexp.Regexp
}

func newLabel(label string) labelPatterns {
	return labelPatterns{
		bold:  regexp.MustCompile(fmt.Sprintf(`(?i)\*\*\s*%s\s*:?\s*\*\*\s*:?[ \t]*([^|]*)`, label)),
		plain: regexp.MustCompile(fmt.Sprintf(`(?i)^\s*(?:[-*+]\s+)?%s\s*:[ \t]*([^|]*)`, label)),
	}
}

func (p labelPatterns) find(line string) (string, bool) {
	for _, re := range []*regexp.Regexp{p.bold, p.plain} {
		if m := re.FindStringSubmatch(line); m != nil {
			value := nextBoldLabel.Split(m[1], 2)[0]
			value = strings.TrimSpace(strings.Trim(strings.TrimSpace(value), "*_"))
			if value != "" {
				return value, true
			}
		}
	}
	return "", false
}

var (
	labelGroep     = newLabel(`groep`)
	labelVakgebied = newLabel(`vak(?:gebied)?`)
	labelPeriode   = newLabel(`periode`)
	labelAantal    = newLabel(`aantal\s+leerlingen`)

	firstInt      = regexp.MustCompile(`\d+`)
	nextBoldLabel = regexp.MustCompile(`\*\*[^*]+:\s*\*\*|\*\*[^*]+\*\*\s*:`)
)

// ExtractMetadata scans every line of text for the labelled metadata fields.
// The first occurrence of each label wins; fields without a usable value stay nil.
func ExtractMetadata(text string) types.Metadata {
	var md types.Metadata
	for _, line := range strings.Split(text, "\n") {
		if md.Groep == nil {
			if v, ok := labelGroep.find(line); ok {
				md.Groep = parseInt(v)
			}
		}
		if md.Vakgebied == nil {
			if v, ok := labelVakgebied.find(line); ok {
				md.Vakgebied = &v
			}
		}
		if md.Periode == nil {
			if v, ok := labelPeriode.find(line); ok {
				md.Periode = &v
			}
		}
		if md.AantalLeerlingen == nil {
			if v, ok := labelAantal.find(line); ok {
				md.AantalLeerlingen = parseInt(v)
			}
		}
	}
	return md
}

func parseInt(value string) *int {
	digits := firstInt.FindString(value)
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}
