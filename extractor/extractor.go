// Package extractor recovers a (quantity, unit, item) triple from the words
// of one utterance.
package extractor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"grocery-voice-ledger/lexicon"
)

// DefaultQuantity is used when no explicit quantity is spoken.
const DefaultQuantity = 1.0

// Path names the strategy that produced an Entry.
type Path string

const (
	PathNumberFirst Path = "number_first"
	PathKeyword     Path = "keyword"
	PathNone        Path = "none"
)

// Entry is an extracted grocery triple. Item is never empty.
type Entry struct {
	Quantity float64
	Unit     string
	Item     string
	Path     Path
}

func (e Entry) String() string {
	if e.Unit == "" {
		return fmt.Sprintf("%s %s", FormatQuantity(e.Quantity), e.Item)
	}

	return fmt.Sprintf("%s %s %s", FormatQuantity(e.Quantity), e.Unit, e.Item)
}

type extractorImpl struct {
	lex *lexicon.Lexicon
}

type Config struct {
	Lexicon *lexicon.Lexicon
}

func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.Lexicon == nil {
		return nil, fmt.Errorf("lexicon is nil")
	}

	return &extractorImpl{
		lex: cfg.Lexicon,
	}, nil
}

// Extract tries the number-first path, then the keyword fallback. The
// fallback only runs when the number-first path found nothing.
func (e *extractorImpl) Extract(tokens []string) (Entry, bool) {
	if len(tokens) == 0 {
		return Entry{Path: PathNone}, false
	}

	if entry, ok := e.numberFirst(tokens); ok {
		return entry, true
	}

	if e.onlyQuantitiesAndUnits(tokens) {
		return Entry{Path: PathNone}, false
	}

	joined := strings.ToLower(strings.Join(tokens, " "))

	if _, ok := e.lex.ContainsKeyword(joined); ok {
		return Entry{
			Quantity: DefaultQuantity,
			Unit:     "",
			Item:     joined,
			Path:     PathKeyword,
		}, true
	}

	return Entry{Path: PathNone}, false
}

// <number> [unit] <item...>
func (e *extractorImpl) numberFirst(tokens []string) (Entry, bool) {
	if len(tokens) < 2 {
		return Entry{}, false
	}

	quantity, ok := e.ParseQuantity(tokens[0])
	if !ok {
		return Entry{}, false
	}

	idx := 1
	unit := ""

	if u, isUnit := e.lex.Unit(tokens[idx]); isUnit {
		unit = u
		idx++
	}

	if idx >= len(tokens) {
		return Entry{}, false
	}

	item := strings.TrimSpace(strings.Join(tokens[idx:], " "))
	if item == "" {
		return Entry{}, false
	}

	return Entry{
		Quantity: quantity,
		Unit:     unit,
		Item:     item,
		Path:     PathNumberFirst,
	}, true
}

// a phrase made only of quantities and units names no item, even when a unit
// word doubles as a household keyword
func (e *extractorImpl) onlyQuantitiesAndUnits(tokens []string) bool {
	for _, token := range tokens {
		if _, ok := e.ParseQuantity(token); ok {
			continue
		}

		if _, ok := e.lex.Unit(token); ok {
			continue
		}

		return false
	}

	return true
}

// ParseQuantity accepts a number word from the lexicon or a non-negative
// decimal literal, with thousands separators stripped.
func (e *extractorImpl) ParseQuantity(word string) (float64, bool) {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return 0, false
	}

	if v, ok := e.lex.Number(w); ok {
		return v, true
	}

	w = strings.ReplaceAll(w, ",", "")

	if !plainDecimal(w) {
		return 0, false
	}

	v, err := strconv.ParseFloat(w, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}

	return v, true
}

// plainDecimal reports digits with at most one dot. ParseFloat alone would
// also take exponents, hex floats, "inf" and "nan".
func plainDecimal(w string) bool {
	digits, dots := 0, 0

	for _, r := range w {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}

	return digits > 0 && dots <= 1
}

// FormatQuantity renders a quantity without a trailing ".0".
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
