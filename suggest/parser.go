// Package suggest turns a free-text task description into subtask title
// suggestions by calling an external chat-completions endpoint and parsing
// the markdown it returns.
package suggest

import (
	"regexp"
	"strings"
)

// Title holds one extracted subtask suggestion.
type Title struct {
	Title string `json:"title"`
}

var (
	// The model may leak internal reasoning wrapped in think tags, possibly
	// spanning lines; none of it belongs in a title.
	thinkRE = regexp.MustCompile(`(?s)<think>.*?</think>`)

	// Some replies preface the list with prose like "Here are ... 5 subtasks
	// ..." followed by a --- delimiter; only the text after the delimiter is
	// the list.
	preambleRE = regexp.MustCompile(`(?s)Here are .*?5 subtasks.*?(---\s*)(.*)`)

	// Numbered items with bold titles: "1. **Title**".
	numberedRE = regexp.MustCompile(`\d+\.\s+\*\*(.*?)\*\*`)

	// Fallback for bullet lists: "- **Title**".
	bulletRE = regexp.MustCompile(`-\s+\*\*(.*?)\*\*`)
)

// ParseTitles extracts subtask titles from a raw model reply. Think blocks
// are stripped, a trailing delimited list is preferred over the full text,
// and numbered bold items are matched before falling back to bullets. Order
// follows the reply; no exactly-five count is enforced, so callers may see
// fewer or more titles when the model deviates from the requested format.
func ParseTitles(content string) []Title {
	return parseBlock(extractBlock(content))
}

func extractBlock(content string) string {
	content = thinkRE.ReplaceAllString(content, "")
	if m := preambleRE.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[2])
	}
	return strings.TrimSpace(content)
}

func parseBlock(block string) []Title {
	matches := numberedRE.FindAllStringSubmatch(block, -1)
	if len(matches) == 0 {
		matches = bulletRE.FindAllStringSubmatch(block, -1)
	}

	titles := []Title{}
	for _, m := range matches {
		titles = append(titles, Title{Title: strings.TrimSpace(m[1])})
	}
	return titles
}
