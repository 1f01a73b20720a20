package engine

import (
	"strings"

	"github.com/conveydocs/searchreport/internal/rules"
)

// Rollup is the outcome of evaluating the schema's section groupings
// against one document's results. Suppress names the members whose
// individual absent statements are replaced; Messages holds the combined
// statements to emit instead.
type Rollup struct {
	Suppress map[string]bool
	Messages []string
}

// Aggregate applies each grouping's strict all-or-nothing rule: only when
// every member resolved to a negative answer is the combined statement
// emitted, replacing the members' individual absent statements. One
// present member disables the roll-up entirely; there is no partial form.
func Aggregate(results map[string]Result, groupings []rules.Grouping) Rollup {
	rollup := Rollup{Suppress: make(map[string]bool)}
	for _, grouping := range groupings {
		if len(grouping.Sections) == 0 {
			continue
		}
		allAbsent := true
		for _, name := range grouping.Sections {
			if !memberAbsent(results, name) {
				allAbsent = false
				break
			}
		}
		if !allAbsent {
			continue
		}
		rollup.Messages = append(rollup.Messages, grouping.Message)
		for _, name := range grouping.Sections {
			rollup.Suppress[name] = true
		}
	}
	return rollup
}

// memberAbsent reports whether a grouping member's answer counts as
// negative: unevaluated, not found, or an extracted value that trims to
// one of the absent spellings.
func memberAbsent(results map[string]Result, name string) bool {
	res, ok := results[name]
	if !ok || !res.Found {
		return true
	}
	value := trimAnswer(res.Extracted)
	switch strings.ToUpper(value) {
	case "", "NONE", "NOT APPLICABLE", "NO":
		return true
	}
	return false
}
