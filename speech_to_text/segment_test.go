package speech_to_text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSegments(t *testing.T) {
	segments := filterSegments([]Segment{
		{Text: " [Music]"},
		{Text: " two kilo aloo"},
		{Text: "(coughs)"},
		{Text: " two kilo aloo"},
		{Text: "  "},
		{Text: " and milk"},
	})

	assert.Equal(t, []Segment{{Text: " two kilo aloo"}, {Text: " and milk"}}, segments)
}

func TestText(t *testing.T) {
	assert.Equal(t, "two kilo aloo and milk",
		Text([]Segment{{Text: " two kilo aloo "}, {Text: ""}, {Text: "and milk"}}))
	assert.Empty(t, Text(nil))
}
