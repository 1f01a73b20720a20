package engine

import (
	"regexp"
	"testing"

	"github.com/conveydocs/searchreport/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func section(t *testing.T, search, extract, message, noneMessage string) *rules.Section {
	t.Helper()
	sec := &rules.Section{
		Name:        "test section",
		Search:      search,
		Extract:     extract,
		Message:     message,
		NoneMessage: noneMessage,
		Negatives:   rules.DefaultNegatives,
	}
	if extract != "" {
		sec.ExtractRe = regexp.MustCompile("(?ism)" + extract)
	}
	return sec
}

func TestEvaluate_Absent(t *testing.T) {
	sec := section(t, "2(a)", `2\(a\)\s*(.*?)\n`, "{extracted_text_1}", "nothing recorded")

	res := Evaluate("no clause numbers here at all", sec)
	assert.False(t, res.Found)
	assert.Empty(t, res.Extracted)
	assert.Equal(t, "nothing recorded", res.Message)
}

func TestEvaluate_SearchIsLiteralNotRegex(t *testing.T) {
	// "2(a)" must match as plain punctuation; under regex semantics it
	// would match "2a" instead.
	sec := section(t, "2(a)", "", "present", "absent")

	res := Evaluate("the clause 2a is here", sec)
	assert.False(t, res.Found)

	res = Evaluate("the clause 2(a) is here", sec)
	assert.True(t, res.Found)
	assert.Equal(t, "present", res.Message)
}

func TestEvaluate_PresenceWithoutExtraction(t *testing.T) {
	// Search phrase present, extract pattern unmatched: found but
	// degraded, never reported as absent.
	sec := section(t, "2(a)", `2\(a\)\s*answer:\s*(\S+)`, "{extracted_text_1}", "nothing recorded")

	res := Evaluate("clause 2(a) appears with an unexpected layout", sec)
	assert.True(t, res.Found)
	assert.Empty(t, res.Extracted)
	assert.Equal(t, NoContentMessage, res.Message)
}

func TestEvaluate_TemplateSubstitution(t *testing.T) {
	sec := section(t, "2(a)",
		`2\(a\)\s*(.*?)\n\(b\)\s*(.*?)\n`,
		"{extracted_text_1} / {extracted_text_2}",
		"nothing recorded")

	res := Evaluate("2(a) first answer\n(b) second answer\nrest", sec)
	require.True(t, res.Found)
	assert.Equal(t, "first answer", res.Extracted)
	assert.Equal(t, "first answer / second answer", res.Message)
}

func TestEvaluate_FirstMatchOnly(t *testing.T) {
	sec := section(t, "Ref", `Ref\s*(\w+)`, "{extracted_text_1}", "none")

	res := Evaluate("Ref alpha then Ref beta", sec)
	require.True(t, res.Found)
	assert.Equal(t, "alpha", res.Extracted)
}

func TestEvaluate_MultilineCapture(t *testing.T) {
	sec := section(t, "Decisions", `Decisions\s*(.*?)END`, "{extracted_text_1}", "none")

	res := Evaluate("Decisions granted 1999\nrefused 2004\nEND", sec)
	require.True(t, res.Found)
	assert.Equal(t, "granted 1999\nrefused 2004", res.Extracted)
}

func TestEvaluate_LineAnchoredExtractPattern(t *testing.T) {
	// Clause numbers pinned to line starts are a natural way to avoid
	// matching cross-references in running prose; ^ and $ must work on
	// interior lines.
	sec := section(t, "3.4", `^3\.4\s*(.*?)$`, "{extracted_text_1}", "no road schemes")

	res := Evaluate("see paragraph 3.4 of the notes\n3.4 Widening scheme approved\ntrailer\n", sec)
	require.True(t, res.Found)
	assert.Equal(t, "Widening scheme approved", res.Extracted)
	assert.Equal(t, "Widening scheme approved", res.Message)
}

func TestEvaluate_NegativeIndicatorOverride(t *testing.T) {
	sec := section(t, "2(a)", `2\(a\)\s*(.*?)\n`,
		"{extracted_text_1} is a highway", "no highway entries recorded")

	tests := []struct {
		name string
		text string
		want string
	}{
		{"none", "2(a) None\nmore", "no highway entries recorded"},
		{"none with punctuation", "2(a) None.\nmore", "no highway entries recorded"},
		{"not applicable", "2(a) Not applicable\nmore", "no highway entries recorded"},
		{"case insensitive", "2(a) NONE\nmore", "no highway entries recorded"},
		{"real answer", "2(a) Gordon Road\nmore", "Gordon Road is a highway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(tt.text, sec)
			require.True(t, res.Found)
			assert.Equal(t, tt.want, res.Message)
		})
	}
}

func TestEvaluate_NegativeOverrideClearsExtractedValue(t *testing.T) {
	sec := section(t, "2(a)", `2\(a\)\s*(.*?)\n`, "{extracted_text_1}", "none message")

	res := Evaluate("2(a) Not applicable\n", sec)
	require.True(t, res.Found)
	assert.Empty(t, res.Extracted, "negative answers must not feed the aggregation as content")
}
