package types

import "strings"

// Section is one heading-delimited part of a generated document.
// Subsections nest by heading depth and keep document order.
type Section struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Level       int       `json:"level"`
	Content     string    `json:"content"`
	Subsections []Section `json:"subsections"`
}

// FullText returns the title, content and all nested subsection text of the section.
func (s Section) FullText() string {
	var sb strings.Builder
	s.writeText(&sb)
	return strings.TrimSpace(sb.String())
}

func (s Section) writeText(sb *strings.Builder) {
	if s.Title != "" {
		sb.WriteString(s.Title)
		sb.WriteString("\n")
	}
	if s.Content != "" {
		sb.WriteString(s.Content)
		sb.WriteString("\n")
	}
	for _, sub := range s.Subsections {
		sub.writeText(sb)
	}
}

// ContentLength returns the number of characters of body content in the section tree, titles excluded.
func (s Section) ContentLength() int {
	n := len([]rune(s.Content))
	for _, sub := range s.Subsections {
		n += sub.ContentLength()
	}
	return n
}

// Metadata holds the labelled fields extracted from a document. Absent fields stay nil.
type Metadata struct {
	Groep            *int    `json:"groep"`
	Vakgebied        *string `json:"vakgebied"`
	Periode          *string `json:"periode"`
	AantalLeerlingen *int    `json:"aantalLeerlingen"`
}

// ParsedGroepsplan is the structured form of a generated groepsplan.
type ParsedGroepsplan struct {
	// Title is the level-1 heading wrapping the whole document, when there is one.
	Title            string           `json:"title,omitempty"`
	Sections         []Section        `json:"sections"`
	Metadata         Metadata         `json:"metadata"`
	ComplianceChecks ComplianceResult `json:"complianceChecks"`
}

// Text joins the full text of every section in document order.
func (p *ParsedGroepsplan) Text() string {
	if p == nil {
		return ""
	}
	parts := make([]string, 0, len(p.Sections))
	for _, s := range p.Sections {
		if t := s.FullText(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// ContentLength returns the total body content length over all sections.
func (p *ParsedGroepsplan) ContentLength() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, s := range p.Sections {
		n += s.ContentLength()
	}
	return n
}

// Flatten returns every section of the tree in document order (pre-order).
func (p *ParsedGroepsplan) Flatten() []Section {
	if p == nil {
		return nil
	}
	var out []Section
	var walk func([]Section)
	walk = func(sections []Section) {
		for _, s := range sections {
			out = append(out, s)
			walk(s.Subsections)
		}
	}
	walk(p.Sections)
	return out
}
