package llm

import "strings"

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	return unwrapFence(text, "json")
}

// CleanMarkdownBlock removes a code fence the model put around its whole markdown answer.
// Without this the parser would treat the entire plan as a code block.
func CleanMarkdownBlock(text string) string {
	return unwrapFence(text, "markdown", "md")
}

// unwrapFence strips a fence that encloses the whole text. Fences inside the text are left alone.
func unwrapFence(text string, languages ...string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}

	body := strings.TrimPrefix(text, "```")
	nl := strings.Index(body, "\n")
	if nl < 0 {
		return text
	}
	info := strings.TrimSpace(body[:nl])
	if info != "" && !matchesLanguage(info, languages) {
		return text
	}

	body = strings.TrimSuffix(body[nl+1:], "```")
	if strings.Contains(body, "\n```") {
		// more than one block: not a single wrapper
		return text
	}
	return strings.TrimSpace(body)
}

func matchesLanguage(info string, languages []string) bool {
	for _, l := range languages {
		if strings.EqualFold(info, l) {
			return true
		}
	}
	return false
}
