package engine

import (
	"github.com/conveydocs/searchreport/internal/rules"
)

// Entry is one visited section in document order, carrying everything the
// renderer needs: the node, its evaluation result, and the heading level
// derived from recursion depth. Heading deduplication is a render-time
// concern: only the renderer knows which entries survive suppression.
type Entry struct {
	Section *rules.Section
	Result  Result
	Level   int
}

// Walker performs the pre-order walk of a group's question tree for a
// single document. State is document-local: construct one walker per
// document and discard it after aggregation.
type Walker struct {
	// Results maps section name to its evaluation result.
	Results map[string]Result
	// Collected holds extracted values for the sections named in the
	// schema's roll-up groupings, feeding the all-absent aggregation.
	Collected map[string]string

	tracked map[string]bool
}

// NewWalker returns a walker tracking extracted values for the given
// section names.
func NewWalker(tracked []string) *Walker {
	w := &Walker{
		Results:   make(map[string]Result),
		Collected: make(map[string]string),
		tracked:   make(map[string]bool, len(tracked)),
	}
	for _, name := range tracked {
		w.tracked[name] = true
	}
	return w
}

// Walk evaluates every section depth-first, pre-order: a section's own
// result precedes its subsections. Heading level increases by one per
// recursion depth, unbounded.
func (w *Walker) Walk(text string, sections []rules.Section, level int) []Entry {
	var entries []Entry
	w.walk(text, sections, level, &entries)
	return entries
}

func (w *Walker) walk(text string, sections []rules.Section, level int, entries *[]Entry) {
	for i := range sections {
		sec := &sections[i]
		res := Evaluate(text, sec)
		w.Results[sec.Name] = res
		if w.tracked[sec.Name] {
			w.Collected[sec.Name] = res.Extracted
		}
		*entries = append(*entries, Entry{Section: sec, Result: res, Level: level})
		w.walk(text, sec.Subsections, level+1, entries)
	}
}
