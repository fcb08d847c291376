package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "lower-cases and splits on whitespace", in: "2 Kilo  ALOO", want: []string{"2", "kilo", "aloo"}},
		{name: "empty input yields no tokens", in: "", want: []string{}},
		{name: "whitespace only yields no tokens", in: " \t\n ", want: []string{}},
		{name: "sentence punctuation is trimmed", in: "Two litre milk.", want: []string{"two", "litre", "milk"}},
		{name: "interior punctuation is kept", in: "one t-shirt, 2.5 kg 1,000 g", want: []string{"one", "t-shirt", "2.5", "kg", "1,000", "g"}},
		{name: "lone punctuation tokens are dropped", in: "milk ! ?", want: []string{"milk"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Tokenize(tc.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("line is the tokens joined by single spaces", func(t *testing.T) {
		u := Normalize("  Update   Aloo TO 3 kilo aloo ")

		assert.Equal(t, "update aloo to 3 kilo aloo", u.Line)
		assert.Len(t, u.Tokens, 6)
		assert.False(t, u.Empty())
	})

	t.Run("empty text is an empty utterance", func(t *testing.T) {
		u := Normalize("")

		assert.True(t, u.Empty())
		assert.Equal(t, "", u.Line)
	})
}
