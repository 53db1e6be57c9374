// Package quality runs the content heuristics that decide whether a generated groepsplan is usable.
package quality

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jonathan/groepsplan/internal/types"
)

const (
	// MinContentLength is the minimum number of body characters a plan needs
	MinContentLength = 400
	// minTrigrams is the number of word trigrams needed before repetition is judged
	minTrigrams = 30
	// minTrigramDiversity is the lowest acceptable ratio of distinct to total trigrams
	minTrigramDiversity = 0.35
	// maxTrigramShare is the highest share of all trigrams a single trigram may take
	maxTrigramShare = 0.15
)

type check struct {
	name string
	run  func(doc *types.ParsedGroepsplan, text string) (bool, string)
}

// checks are evaluated in this order and independently of each other
var checks = []check{
	{types.QualityLength, checkLength},
	{types.QualityMickeyMouse, checkSpecificity},
	{types.QualityLanguage, checkLanguage},
	{types.QualityCompleteness, checkCompleteness},
}

// RunChecks evaluates every quality check against doc. A nil doc is treated as an empty document.
func RunChecks(doc *types.ParsedGroepsplan) []types.QualityCheckResult {
	if doc == nil {
		doc = &types.ParsedGroepsplan{}
	}
	text := doc.Text()

	results := make([]types.QualityCheckResult, 0, len(checks))
	for _, c := range checks {
		passed, detail := c.run(doc, text)
		results = append(results, types.QualityCheckResult{Name: c.name, Passed: passed, Detail: detail})
	}
	return results
}

// checkLength fails plans whose body content is below MinContentLength
func checkLength(doc *types.ParsedGroepsplan, _ string) (bool, string) {
	n := doc.ContentLength()
	if n < MinContentLength {
		return false, fmt.Sprintf("%d tekens inhoud, minimaal %d verwacht", n, MinContentLength)
	}
	return true, fmt.Sprintf("%d tekens inhoud", n)
}

// checkSpecificity fails text that repeats the same low-information phrasing at volume
func checkSpecificity(_ *types.ParsedGroepsplan, text string) (bool, string) {
	stats := trigramStats(words(text))
	if stats.total < minTrigrams {
		return true, "te weinig tekst om herhaling te beoordelen"
	}

	diversity := float64(stats.distinct) / float64(stats.total)
	share := float64(stats.topCount) / float64(stats.total)
	if diversity < minTrigramDiversity || share > maxTrigramShare {
		return false, fmt.Sprintf("generieke herhaling: %.0f%% unieke woordreeksen, %q komt %d keer voor",
			diversity*100, stats.top, stats.topCount)
	}
	return true, fmt.Sprintf("%.0f%% unieke woordreeksen", diversity*100)
}

func checkLanguage(_ *types.ParsedGroepsplan, text string) (bool, string) {
	if IsWrongLanguage(text) {
		return false, "de tekst bevat te veel Engelse woorden"
	}
	return true, ""
}

// checkCompleteness fails text that stops mid-sentence or on a section without body
func checkCompleteness(doc *types.ParsedGroepsplan, text string) (bool, string) {
	if IsIncomplete(text) {
		return false, "de tekst eindigt midden in een zin of onderdeel"
	}
	if flat := doc.Flatten(); len(flat) > 0 {
		if last := flat[len(flat)-1]; strings.TrimSpace(last.Content) == "" {
			return false, fmt.Sprintf("het laatste onderdeel %q heeft geen inhoud", last.Title)
		}
	}
	return true, ""
}

type trigrams struct {
	total    int
	distinct int
	top      string
	topCount int
}

func trigramStats(tokens []string) trigrams {
	var stats trigrams
	if len(tokens) < 3 {
		return stats
	}

	counts := make(map[string]int)
	for i := 0; i+2 < len(tokens); i++ {
		key := tokens[i] + " " + tokens[i+1] + " " + tokens[i+2]
		counts[key]++
		stats.total++
		if c := counts[key]; c > stats.topCount || (c == stats.topCount && key < stats.top) {
			stats.top, stats.topCount = key, c
		}
	}
	stats.distinct = len(counts)
	return stats
}

// words splits text into lowercase word tokens, dropping markdown punctuation
func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
