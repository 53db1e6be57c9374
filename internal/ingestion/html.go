package ingestion

import (
	"bytes"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

// noiseSelector matches page chrome that never belongs to the plan itself.
const noiseSelector = "nav, header, footer, aside, script, style, noscript, iframe, form, button, " +
	".nav, .navbar, .sidebar, .menu, .cookie-banner, .breadcrumb"

var mainSelectors = []string{"main", "article", "[role=main]"}

func newConverter() *md.Converter {
	conv := md.NewConverter("", true, nil)
	conv.Use(plugin.GitHubFlavored())
	return conv
}

// htmlToMarkdown strips navigation and scripts and converts the main content to markdown.
// Tables survive as GitHub-flavored tables so groepsindeling overviews stay readable.
func htmlToMarkdown(data []byte) (title string, markdown string, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", "", &ExtractionError{Format: FormatHTML, Message: "invalid HTML", Cause: err}
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find(noiseSelector).Remove()

	content := doc.Find("body")
	for _, selector := range mainSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			content = sel
			break
		}
	}

	markdown = newConverter().Convert(content)
	return title, markdown, nil
}
