package service

import (
	"strings"
	"unicode/utf8"

	"flyer/models"
)

const (
	boldMarker = "**"
	// lines at or below this many characters are never picked as headline
	minHeadlineLength = 10
)

var ctaKeywords = []string{"call", "action", "contact"}

type parseState int

const (
	noSectionSeen parseState = iota
	inSection
)

// structurer walks generated text line by line. Before the first header it
// only looks for a headline; after it, every line belongs to the open section.
type structurer struct {
	state  parseState
	title  string
	buffer []string
	out    models.StructuredContent
}

// Structure turns raw generator output into a headline, titled sections and
// an optional call to action. It never fails: text without headers yields no
// sections and at most a headline.
//
// contentType is the flyer type the text was generated for. Parsing is the
// same for every type.
func Structure(rawText string, contentType string) models.StructuredContent {
	s := &structurer{
		out: models.StructuredContent{Sections: []models.Section{}},
	}
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.feed(line)
	}
	s.closeSection()
	s.extractCallToAction()
	return s.out
}

func (s *structurer) feed(line string) {
	if isHeader(line) {
		s.closeSection()
		s.state = inSection
		s.title = headerTitle(line)
		s.buffer = nil
		return
	}

	switch s.state {
	case inSection:
		s.buffer = append(s.buffer, line)
	case noSectionSeen:
		if s.out.Headline == "" && utf8.RuneCountInString(line) > minHeadlineLength {
			s.out.Headline = line
		}
	}
}

// closeSection emits the open section. Sections without content lines are dropped.
func (s *structurer) closeSection() {
	if s.state != inSection || len(s.buffer) == 0 {
		return
	}
	s.out.Sections = append(s.out.Sections, models.Section{
		Title:   s.title,
		Content: strings.Join(s.buffer, "\n"),
	})
	s.buffer = nil
}

// extractCallToAction moves the last section into CallToAction when its title
// reads like one. Only the last section is considered.
func (s *structurer) extractCallToAction() {
	n := len(s.out.Sections)
	if n == 0 {
		return
	}
	last := s.out.Sections[n-1]
	if !containsAny(strings.ToLower(last.Title), ctaKeywords) {
		return
	}
	s.out.CallToAction = last.Content
	s.out.Sections = s.out.Sections[:n-1]
}

// isHeader reports whether a line is a markdown-style header. Both bold
// markers must be on the same line.
func isHeader(line string) bool {
	return strings.Count(line, boldMarker) >= 2
}

func headerTitle(line string) string {
	title := strings.ReplaceAll(line, boldMarker, "")
	title = strings.ReplaceAll(title, "#", "")
	return strings.TrimSpace(title)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
