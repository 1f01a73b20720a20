package engine

import (
	"strings"

	"github.com/conveydocs/searchreport/internal/rules"
)

// Classify selects the document group whose identifier occurs verbatim in
// the extracted text. Groups are tried in declared order and the first hit
// wins; a miss is a terminal per-document outcome for the caller, not an
// error.
func Classify(text string, schema *rules.Schema) (*rules.Group, bool) {
	for i := range schema.Groups {
		if strings.Contains(text, schema.Groups[i].Identifier) {
			return &schema.Groups[i], true
		}
	}
	return nil, false
}
