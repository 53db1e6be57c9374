package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpaceRe  = regexp.MustCompile(`\s+`)
	blankLinesRe  = regexp.MustCompile(`\n\n\n+`)
	bulletMarkers = []string{"- ", "* ", "+ ", "• ", "· "}
)

// CleanText normalizes line endings and whitespace while keeping headings, lists and tables intact.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := blankLinesRe.ReplaceAllString(strings.Join(cleaned, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")

	// Headings and table rows keep their inner spacing.
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "|") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	if isBulletLine(trimmed) {
		// "•" bullets from word processors become markdown bullets
		for _, m := range []string{"• ", "· "} {
			if strings.HasPrefix(trimmed, m) {
				trimmed = "- " + strings.TrimPrefix(trimmed, m)
			}
		}
		return strings.Repeat(" ", indent) + trimmed
	}

	return strings.Repeat(" ", indent) + innerSpaceRe.ReplaceAllString(trimmed, " ")
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(trimmed string) bool {
	for _, m := range bulletMarkers {
		if strings.HasPrefix(trimmed, m) {
			return true
		}
	}
	return false
}
