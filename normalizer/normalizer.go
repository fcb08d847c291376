package normalizer

import (
	"strings"
)

// edgePunctuation is stripped from both ends of every token. Interior
// characters survive so that "t-shirt", "2.5" and "1,000" stay intact.
const edgePunctuation = `.,!?;:"'`

// Utterance is one turn's worth of normalized text.
type Utterance struct {
	// Line is the tokens joined by single spaces.
	Line   string
	Tokens []string
}

// Empty reports whether the utterance carries no words at all.
func (u Utterance) Empty() bool {
	return len(u.Tokens) == 0
}

// Normalize lower-cases the text and splits it on whitespace.
func Normalize(text string) Utterance {
	tokens := Tokenize(text)

	return Utterance{
		Line:   strings.Join(tokens, " "),
		Tokens: tokens,
	}
}

// Tokenize returns the ordered lower-cased words of text. An empty or
// all-punctuation input yields an empty slice.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))

	tokens := make([]string, 0, len(fields))

	for _, field := range fields {
		token := strings.Trim(field, edgePunctuation)
		if token == "" {
			continue
		}

		tokens = append(tokens, token)
	}

	return tokens
}
