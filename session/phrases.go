package session

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// phraseMatcher finds wake and exit phrases in a normalized line.
type phraseMatcher struct {
	wake        []string
	exit        []string
	maxDistance int
}

func (m phraseMatcher) isExit(line string) bool {
	for _, p := range m.exit {
		if strings.Contains(line, p) {
			return true
		}
	}

	return false
}

// isWake accepts a line containing a wake phrase. With a positive
// maxDistance, a run of tokens as long as the phrase that is within that
// edit distance also counts, so "hello devise" still wakes the session.
func (m phraseMatcher) isWake(line string, tokens []string) bool {
	for _, p := range m.wake {
		if strings.Contains(line, p) {
			return true
		}
	}

	if m.maxDistance <= 0 {
		return false
	}

	for _, p := range m.wake {
		width := len(strings.Fields(p))
		if width == 0 || width > len(tokens) {
			continue
		}

		for i := 0; i+width <= len(tokens); i++ {
			window := strings.Join(tokens[i:i+width], " ")
			if levenshtein.ComputeDistance(window, p) <= m.maxDistance {
				return true
			}
		}
	}

	return false
}
