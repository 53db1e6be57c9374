// Package parsing turns generated or uploaded markdown into a structured groepsplan.
package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/groepsplan/internal/compliance"
	"github.com/jonathan/groepsplan/internal/types"
)

const (
	rootSectionID     = "document"
	preambleSectionID = "inleiding"
	preambleTitle     = "Inleiding"
)

var headingPattern = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*?))?(?:[ \t]+#+)?[ \t]*$`)

// scanState is the state of the line automaton.
type scanState int

const (
	stateOutside scanState = iota // before the first heading
	stateSection                  // inside the section on top of the stack
	stateFence                    // inside a fenced code block
)

type node struct {
	section  types.Section
	lines    []string
	children []*node
}

// scanner walks the document one line at a time.
type scanner struct {
	state      scanState
	resume     scanState // state to return to when a fence closes
	fence      string
	preamble   []string
	roots      []*node
	stack      []*node
	ids        map[string]int
	sawHeading bool
}

// ParseGroepsplanOutput converts markdown into a ParsedGroepsplan. It never fails: malformed input
// yields whatever structure could be recovered, and absent metadata stays nil.
func ParseGroepsplanOutput(markdown string) *types.ParsedGroepsplan {
	text := strings.ReplaceAll(markdown, "\r\n", "\n")

	s := &scanner{ids: make(map[string]int)}
	for _, line := range strings.Split(text, "\n") {
		s.feed(line)
	}

	title, sections := s.finish()
	return &types.ParsedGroepsplan{
		Title:            title,
		Sections:         sections,
		Metadata:         ExtractMetadata(text),
		ComplianceChecks: compliance.Validate(sections, compliance.ModeDefault),
	}
}

func (s *scanner) feed(line string) {
	switch s.state {
	case stateFence:
		s.appendLine(line)
		if isFenceClose(line, s.fence) {
			s.state = s.resume
			s.fence = ""
		}
		return
	case stateOutside, stateSection:
		if marker := fenceOpen(line); marker != "" {
			s.appendLine(line)
			s.resume = s.state
			s.fence = marker
			s.state = stateFence
			return
		}
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			s.openSection(len(m[1]), cleanTitle(m[2]))
			s.state = stateSection
			return
		}
		s.appendLine(line)
	}
}

// openSection closes every open section at depth >= level and pushes a new one.
func (s *scanner) openSection(level int, title string) {
	s.sawHeading = true
	for len(s.stack) > 0 && s.stack[len(s.stack)-1].section.Level >= level {
		s.stack = s.stack[:len(s.stack)-1]
	}

	n := &node{section: types.Section{ID: s.uniqueID(title), Title: title, Level: level}}
	if len(s.stack) == 0 {
		s.roots = append(s.roots, n)
	} else {
		parent := s.stack[len(s.stack)-1]
		parent.children = append(parent.children, n)
	}
	s.stack = append(s.stack, n)
}

func (s *scanner) appendLine(line string) {
	if len(s.stack) == 0 {
		s.preamble = append(s.preamble, line)
		return
	}
	top := s.stack[len(s.stack)-1]
	top.lines = append(top.lines, line)
}

func (s *scanner) uniqueID(title string) string {
	base := Slugify(title)
	if base == "" {
		base = "sectie"
	}
	s.ids[base]++
	if n := s.ids[base]; n > 1 {
		return base + "-" + strconv.Itoa(n)
	}
	return base
}

// finish builds the section list. A single level-1 heading that wraps every other heading is the
// document title: its body joins the preamble in the inleiding section and its subsections move up
// to the top level.
func (s *scanner) finish() (string, []types.Section) {
	intro := []string{strings.TrimSpace(strings.Join(s.preamble, "\n"))}

	if !s.sawHeading {
		if intro[0] == "" {
			return "", []types.Section{}
		}
		return "", []types.Section{{ID: rootSectionID, Content: intro[0], Subsections: []types.Section{}}}
	}

	roots := s.roots
	var title string
	if w := s.titleNode(); w != nil {
		title = w.section.Title
		intro = append(intro, strings.TrimSpace(strings.Join(w.lines, "\n")))
		roots = w.children
	}

	sections := make([]types.Section, 0, len(roots)+1)
	if content := joinNonEmpty(intro); content != "" {
		sections = append(sections, types.Section{
			ID:          s.reserve(preambleSectionID),
			Title:       preambleTitle,
			Content:     content,
			Subsections: []types.Section{},
		})
	}
	for _, n := range roots {
		sections = append(sections, n.build())
	}
	return title, sections
}

// titleNode returns the only root when it is a level-1 heading with subsections.
func (s *scanner) titleNode() *node {
	if len(s.roots) != 1 {
		return nil
	}
	root := s.roots[0]
	if root.section.Level != 1 || len(root.children) == 0 {
		return nil
	}
	return root
}

func joinNonEmpty(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

// reserve returns id unless a heading already claimed it.
func (s *scanner) reserve(id string) string {
	if s.ids[id] == 0 {
		return id
	}
	return s.uniqueID(id)
}

func (n *node) build() types.Section {
	sec := n.section
	sec.Content = strings.TrimSpace(strings.Join(n.lines, "\n"))
	sec.Subsections = make([]types.Section, 0, len(n.children))
	for _, c := range n.children {
		sec.Subsections = append(sec.Subsections, c.build())
	}
	return sec
}

// fenceOpen returns the fence marker when line opens a fenced code block.
func fenceOpen(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return ""
	}
	for _, ch := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == ch {
			n++
		}
		if n >= 3 {
			return trimmed[:n]
		}
	}
	return ""
}

func isFenceClose(line, marker string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= len(marker) && strings.Trim(trimmed, marker[:1]) == "" && trimmed[0] == marker[0]
}
