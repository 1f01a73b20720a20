package engine

import (
	"strings"

	"github.com/conveydocs/searchreport/internal/rules"
)

// NoContentMessage is rendered when a section's presence test succeeded
// but its extract pattern matched nothing. This is a degraded state
// distinct from a genuinely absent answer: it signals a pattern that no
// longer fits the document layout, not an empty reply.
const NoContentMessage = "no matching content found"

// Result is the outcome of evaluating one section against one document's
// text. Results live only for the duration of a single document walk.
type Result struct {
	Section   string
	Found     bool
	Extracted string
	Message   string
}

// Evaluate runs a section's two-step match against document text.
//
// The presence test treats Search as a literal substring: clause numbers
// like "2(a)" are full of regex metacharacters used as plain punctuation,
// so regex semantics are reserved for the extract pattern alone. The
// extract pattern is applied single-shot; only the first match binds.
func Evaluate(text string, sec *rules.Section) Result {
	res := Result{Section: sec.Name}

	if !strings.Contains(text, sec.Search) {
		res.Message = sec.NoneMessage
		return res
	}
	res.Found = true

	if sec.ExtractRe == nil {
		res.Message = sec.Message
		return res
	}

	m := sec.ExtractRe.FindStringSubmatch(text)
	if m == nil {
		res.Message = NoContentMessage
		return res
	}

	captures := m[1:]
	for i := range captures {
		captures[i] = strings.TrimSpace(captures[i])
	}
	if len(captures) > 0 {
		res.Extracted = captures[0]
	}

	// A reply phrased as "None" or "Not applicable" is a negative answer,
	// not a finding; rendering "None is a highway" would invert its
	// meaning.
	if res.Extracted != "" && isNegative(res.Extracted, sec.Negatives) {
		res.Extracted = ""
		res.Message = sec.NoneMessage
		return res
	}

	res.Message = fillTemplate(sec.Message, captures)
	return res
}

// fillTemplate substitutes {extracted_text_N} placeholders positionally.
// References beyond the capture count were rejected at schema load time.
func fillTemplate(template string, captures []string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(ref string) string {
		n := placeholderIndex(ref)
		if n < 1 || n > len(captures) {
			return ref
		}
		return captures[n-1]
	})
}

// trimAnswer normalises an extracted value for negative-answer comparison:
// surrounding whitespace and trailing punctuation are ignored.
func trimAnswer(value string) string {
	return strings.TrimRight(strings.TrimSpace(value), ".,;:!")
}

// isNegative reports whether value is one of the configured negative
// indicator spellings.
func isNegative(value string, negatives []string) bool {
	trimmed := trimAnswer(value)
	for _, neg := range negatives {
		if strings.EqualFold(trimmed, neg) {
			return true
		}
	}
	return false
}
