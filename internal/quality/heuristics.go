package quality

import (
	"strings"
	"unicode/utf8"
)

const (
	// minLanguageSignals is the number of recognized function words needed to judge language
	minLanguageSignals = 3
	// maxEnglishShare is the share of English function words at which text counts as wrong language
	maxEnglishShare = 0.3
)

// terminalMarks are the characters a finished last line may end with
const terminalMarks = ".!?:;)\"'»|…"

// englishWords are common English function words that do not occur as Dutch words
var englishWords = map[string]bool{
	"the": true, "and": true, "will": true, "are": true, "to": true,
	"with": true, "for": true, "this": true, "that": true, "students": true, "goals": true,
	"learn": true, "be": true, "have": true, "they": true, "their": true, "which": true,
	"should": true, "each": true, "by": true, "from": true, "not": true, "were": true,
	"has": true, "can": true, "it": true, "these": true, "group": true, "teacher": true,
	"an": true, "or": true, "at": true, "on": true,
}

// dutchWords are common Dutch function words that do not occur as English words
var dutchWords = map[string]bool{
	"de": true, "het": true, "een": true, "en": true, "van": true, "op": true,
	"te": true, "met": true, "voor": true, "niet": true, "zijn": true, "worden": true,
	"wordt": true, "dat": true, "ook": true, "als": true, "bij": true, "naar": true,
	"aan": true, "er": true, "om": true, "deze": true, "leerlingen": true, "groep": true,
	"leerkracht": true, "doelen": true, "wij": true, "ze": true, "hun": true,
	"kunnen": true, "moeten": true, "heeft": true, "hebben": true,
}

// IsWrongLanguage reports whether a material share of the recognized function words is English.
// Text with fewer than three recognized words is never flagged.
func IsWrongLanguage(text string) bool {
	english, dutch := 0, 0
	for _, w := range words(text) {
		switch {
		case englishWords[w]:
			english++
		case dutchWords[w]:
			dutch++
		}
	}

	total := english + dutch
	if total < minLanguageSignals {
		return false
	}
	return float64(english)/float64(total) >= maxEnglishShare
}

// IsIncomplete reports whether text stops mid-sentence or mid-section: the last non-empty line is a
// heading or does not end with a terminal mark. Empty text is incomplete.
func IsIncomplete(text string) bool {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return true
	}
	if strings.HasPrefix(last, "#") {
		return true
	}

	last = strings.TrimRight(last, "*_` \t")
	if last == "" {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(last)
	return !strings.ContainsRune(terminalMarks, r)
}
