package speech_to_text

import (
	"strings"
	"time"
)

type Segment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Text joins segment texts into a single utterance.
func Text(segments []Segment) string {
	parts := make([]string, 0, len(segments))

	for _, segment := range segments {
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " ")
}

// annotation reports whitespace-trimmed text wrapped in brackets or
// parentheses, which whisper emits for non-speech such as "[Music]".
func annotation(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	first, last := text[0], text[len(text)-1]

	return first == '(' || first == '[' || last == ')' || last == ']'
}

// filterSegments drops annotations, blank segments and repeated text.
func filterSegments(segments []Segment) []Segment {
	seenText := make(map[string]bool)
	kept := make([]Segment, 0, len(segments))

	for _, segment := range segments {
		text := strings.TrimSpace(segment.Text)
		if text == "" || annotation(text) {
			continue
		}

		if seenText[text] {
			continue
		}

		seenText[text] = true

		kept = append(kept, segment)
	}

	return kept
}
