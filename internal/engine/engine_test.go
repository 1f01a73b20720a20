package engine

import (
	"testing"

	"github.com/conveydocs/searchreport/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStandardEnquiriesScenario runs the full classify/walk/render chain
// against a realistic CON29 reply fragment.
func TestStandardEnquiriesScenario(t *testing.T) {
	schema, err := rules.Parse([]byte(`
docs:
  - identifier: REPLIES TO STANDARD ENQUIRIES
    heading: Standard Enquiries
    found_message: Replies were provided.
    questions:
      - section: Highways
        search: 2(a)
        extract: '2\(a\)\s*(.*?)(?:\n|$).*?\(a\)\s*(.*?)\n'
        message: '{extracted_text_1}. The main road ({extracted_text_2}) is a highway maintainable at public expense.'
        none_message: The roads are not publicly maintained.
`))
	require.NoError(t, err)

	text := "REPLIES TO STANDARD ENQUIRIES\n" +
		"2(a) Highways maintainable at public expense\n" +
		"(a) Gordon Road is publicly maintained.\n"

	group, ok := Classify(text, schema)
	require.True(t, ok)

	walker := NewWalker(schema.TrackedSections())
	entries := walker.Walk(text, group.Questions, 3)
	require.Len(t, entries, 1)

	res := entries[0].Result
	assert.True(t, res.Found)
	assert.Equal(t,
		"Highways maintainable at public expense. The main road "+
			"(Gordon Road is publicly maintained.) is a highway maintainable at public expense.",
		res.Message)
}
