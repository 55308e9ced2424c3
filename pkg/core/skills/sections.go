package skills

import (
	"errors"
	"strings"
)

// ErrNoSections reports that a model response carried no recognizable
// "Key: value" blocks, so callers can fall back to the raw text.
var ErrNoSections = errors.New("skills: no sections found in response")

// Section is one labeled block of a structured model response.
type Section struct {
	Title string
	Body  string
}

// parseSections splits a model response into blank-line separated blocks and
// reads each block's leading "Title:" label, preserving response order.
// Titles are trimmed of markdown emphasis and list numbering so
// "**1. Key Clauses:**" and "Key Clauses:" land on the same shape. Returns
// ErrNoSections when nothing matches.
func parseSections(text string) ([]Section, error) {
	var sections []Section
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		head, rest, ok := strings.Cut(block, ":")
		if !ok || strings.ContainsRune(head, '\n') {
			continue
		}
		title := normalizeSectionTitle(head)
		if title == "" {
			continue
		}
		body := strings.TrimSpace(rest)
		body = strings.TrimSpace(strings.TrimLeft(body, "*_"))
		sections = append(sections, Section{Title: title, Body: body})
	}
	if len(sections) == 0 {
		return nil, ErrNoSections
	}
	return sections, nil
}

func normalizeSectionTitle(head string) string {
	title := strings.TrimSpace(head)
	title = strings.Trim(title, "*#_ ")
	// Drop list numbering like "1." or "2)".
	for len(title) > 0 && title[0] >= '0' && title[0] <= '9' {
		title = title[1:]
	}
	title = strings.TrimLeft(title, ".) ")
	return strings.TrimSpace(title)
}
