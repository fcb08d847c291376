// Package lexicon holds the synonym tables the interpreter matches words
// against: number words, unit synonyms, household keywords, and the wake and
// exit phrases.
package lexicon

import (
	"fmt"
	"math"
	"strings"
)

// Lexicon is a compiled, read-only Table.
type Lexicon struct {
	numbers     map[string]float64
	units       map[string]string
	keywords    []string
	wakePhrases []string
	exitPhrases []string
}

// Compile validates t and builds the lookup maps. All words are lower-cased.
func Compile(t Table) (*Lexicon, error) {
	canonical := make(map[string]bool, len(CanonicalUnits))
	for _, u := range CanonicalUnits {
		canonical[u] = true
	}

	lex := &Lexicon{
		numbers: make(map[string]float64),
		units:   make(map[string]string),
	}

	for _, n := range t.Numbers {
		if n.Value < 0 || math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
			return nil, fmt.Errorf("number value %v is not a non-negative quantity", n.Value)
		}

		for _, w := range n.Words {
			w = clean(w)
			if w == "" {
				continue
			}

			lex.numbers[w] = n.Value
		}
	}

	for _, u := range t.Units {
		c := clean(u.Canonical)
		if !canonical[c] {
			return nil, fmt.Errorf("unit %q is not one of %s", u.Canonical, strings.Join(CanonicalUnits, ", "))
		}

		for _, w := range u.Words {
			w = clean(w)
			if w == "" {
				continue
			}

			lex.units[w] = c
		}
	}

	// a canonical unit always normalizes to itself
	for c := range canonical {
		lex.units[c] = c
	}

	lex.keywords = cleanList(flattenKeywords(t.Keywords))
	lex.wakePhrases = cleanList(t.WakePhrases)
	lex.exitPhrases = cleanList(t.ExitPhrases)

	if len(lex.exitPhrases) == 0 {
		return nil, fmt.Errorf("lexicon has no exit phrases")
	}

	if len(lex.wakePhrases) == 0 {
		return nil, fmt.Errorf("lexicon has no wake phrases")
	}

	return lex, nil
}

// Default compiles DefaultTable. The default table is known to be valid.
func Default() *Lexicon {
	lex, err := Compile(DefaultTable())
	if err != nil {
		panic(fmt.Sprintf("default lexicon: %v", err))
	}

	return lex
}

// Number looks word up in the number-word table.
func (l *Lexicon) Number(word string) (float64, bool) {
	v, ok := l.numbers[strings.ToLower(word)]

	return v, ok
}

// Unit returns the canonical unit for a raw synonym.
func (l *Lexicon) Unit(word string) (string, bool) {
	u, ok := l.units[strings.ToLower(word)]

	return u, ok
}

// NormalizeUnit returns the canonical form of u, or u unchanged when it is
// not a known synonym.
func (l *Lexicon) NormalizeUnit(u string) string {
	if c, ok := l.Unit(u); ok {
		return c
	}

	return u
}

// ContainsKeyword reports whether any household keyword is a substring of
// text, returning the first one found.
func (l *Lexicon) ContainsKeyword(text string) (string, bool) {
	text = strings.ToLower(text)

	for _, kw := range l.keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}

	return "", false
}

// WakePhrases returns the wake phrases in table order.
func (l *Lexicon) WakePhrases() []string {
	return append([]string(nil), l.wakePhrases...)
}

// ExitPhrases returns the exit phrases in table order.
func (l *Lexicon) ExitPhrases() []string {
	return append([]string(nil), l.exitPhrases...)
}

func flattenKeywords(groups []KeywordGroup) []string {
	words := make([]string, 0)

	for _, g := range groups {
		words = append(words, g.Words...)
	}

	return words
}

func cleanList(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))

	for _, s := range in {
		s = clean(s)
		if s == "" || seen[s] {
			continue
		}

		seen[s] = true
		out = append(out, s)
	}

	return out
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
