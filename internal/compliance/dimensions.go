package compliance

import (
	"regexp"
	"strings"

	"github.com/jonathan/groepsplan/internal/types"
)

// minDedicatedContent is the amount of body text a dedicated section needs to count as worked out.
const minDedicatedContent = 80

// dimension is one inspection criterion. presence is matched against the whole document,
// title finds a section dedicated to the criterion, and evidence decides whether it is done well.
type dimension struct {
	key      string
	label    string
	presence *regexp.Regexp
	title    *regexp.Regexp
	evidence func(text string) bool
}

var (
	digitPattern    = regexp.MustCompile(`\d`)
	timePattern     = regexp.MustCompile(`(?i)\b(week|weken|maand|periode|datum|schooljaar|januari|februari|maart|april|mei|juni|juli|augustus|september|oktober|november|december|middentoets|eindtoets|voor de herfstvakantie|voor de kerstvakantie)\b`)
	subgroupPattern = regexp.MustCompile(`(?i)\b(basisgroep|basis|intensieve groep|intensief|meer-groep|meergroep|verrijking|plusgroep)\b`)
)

var dimensions = []dimension{
	{
		key:      types.CheckBeginsituatie,
		label:    "Beginsituatie",
		presence: regexp.MustCompile(`(?i)beginsituatie|startsituatie|uitgangssituatie|toetsresultat|toetsgegevens|\bcito\b`),
		title:    regexp.MustCompile(`(?i)beginsituatie|startsituatie|uitgangssituatie|analyse`),
		evidence: func(text string) bool { return digitPattern.MatchString(text) },
	},
	{
		key:      types.CheckSmartiDoelen,
		label:    "SMARTI-doelen",
		presence: regexp.MustCompile(`(?i)\bsmarti?\b|\bdoel(en|stelling|stellingen)?\b`),
		title:    regexp.MustCompile(`(?i)doel`),
		evidence: func(text string) bool {
			return digitPattern.MatchString(text) && timePattern.MatchString(text)
		},
	},
	{
		key:      types.CheckInterventies,
		label:    "Interventies",
		presence: regexp.MustCompile(`(?i)interventie|\baanpak\b|instructie|verrijking`),
		title:    regexp.MustCompile(`(?i)interventie|aanpak|instructie`),
		evidence: func(text string) bool { return distinctMatches(subgroupPattern, text, normalizeSubgroup) >= 2 },
	},
	{
		key:      types.CheckEvaluatie,
		label:    "Evaluatie",
		presence: regexp.MustCompile(`(?i)evaluatie|evalueren|evalueer|\bvervolg`),
		title:    regexp.MustCompile(`(?i)evaluatie|vervolg`),
		evidence: func(text string) bool { return timePattern.MatchString(text) },
	},
	{
		key:      types.CheckBetrokkenen,
		label:    "Betrokkenen",
		presence: stakeholderPattern,
		title:    regexp.MustCompile(`(?i)betrokken|organisatie|samenwerking|ouders`),
		evidence: func(text string) bool { return distinctMatches(stakeholderPattern, text, normalizeStakeholder) >= 2 },
	},
	{
		key:      types.CheckHandelingsgericht,
		label:    "Handelingsgericht werken",
		presence: regexp.MustCompile(`(?i)onderwijsbehoefte|handelingsgericht|stimulerende|belemmerende|\bhgw\b`),
		title:    regexp.MustCompile(`(?i)onderwijsbehoefte|handelingsgericht|onderbouwing|\bhgw\b`),
		evidence: func(text string) bool {
			lower := strings.ToLower(text)
			return strings.Contains(lower, "stimulerend") && strings.Contains(lower, "belemmerend")
		},
	},
}

var stakeholderPattern = regexp.MustCompile(`(?i)\bouders?\b|intern begeleider|\bib(?:'er)?\b|\bcollega('s)?\b|remedial teacher|logopedist|betrokkenen`)

// grade evaluates the dimension against the flattened section list.
// It returns the grade and the id of the section the grade is based on.
func (d dimension) grade(sections []types.Section) (types.Grade, string) {
	present := ""
	for _, s := range sections {
		if d.presence.MatchString(s.Title) || d.presence.MatchString(s.Content) {
			present = s.ID
			break
		}
	}
	if present == "" {
		return types.GradeMissing, ""
	}

	for _, s := range sections {
		if !d.title.MatchString(s.Title) {
			continue
		}
		body := s.FullText()
		if s.ContentLength() < minDedicatedContent {
			return types.GradePoor, s.ID
		}
		if d.evidence(body) {
			return types.GradeGood, s.ID
		}
		return types.GradeAdequate, s.ID
	}
	return types.GradePoor, present
}

func distinctMatches(re *regexp.Regexp, text string, normalize func(string) string) int {
	seen := map[string]bool{}
	for _, m := range re.FindAllString(text, -1) {
		seen[normalize(strings.ToLower(m))] = true
	}
	return len(seen)
}

func normalizeSubgroup(m string) string {
	switch {
	case strings.HasPrefix(m, "basis"):
		return "basis"
	case strings.HasPrefix(m, "intensie"):
		return "intensief"
	default:
		return "meer"
	}
}

func normalizeStakeholder(m string) string {
	switch {
	case strings.HasPrefix(m, "ouder"):
		return "ouders"
	case m == "ib" || m == "ib'er" || m == "intern begeleider":
		return "ib"
	case strings.HasPrefix(m, "collega"):
		return "collega"
	default:
		return m
	}
}
