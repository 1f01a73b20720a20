package rules

import (
	"fmt"
	"regexp"
)

// DefaultNegatives are the answer spellings treated as "nothing applies"
// when a reply phrases a negative answer as free text.
var DefaultNegatives = []string{"none", "not applicable", "n/a", "no"}

// Schema is the full rule set driving classification, section walking and
// report boilerplate. Loaded once at startup and read-only afterwards.
type Schema struct {
	Title     string
	Scope     []ScopeEntry
	Groups    []Group
	Groupings []Grouping
}

// ScopeEntry is one heading/body pair of report front matter.
type ScopeEntry struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

// Group describes one recognisable document type. A document belongs to the
// first group whose Identifier occurs verbatim in its extracted text.
type Group struct {
	Identifier      string    `yaml:"identifier"`
	Heading         string    `yaml:"heading"`
	FoundMessage    string    `yaml:"found_message"`
	NotFoundMessage string    `yaml:"not_found_message"`
	Questions       []Section `yaml:"questions"`
}

// Section is a node in the question tree. Subsections share the exact same
// shape, at arbitrary depth.
//
// Search is a literal substring presence test. Extract is a real regular
// expression compiled with case-insensitive, multiline and
// dot-matches-newline flags, so ^ and $ anchor at line boundaries; its
// capture groups bind positionally to {extracted_text_1..N} in Message.
type Section struct {
	Name        string    `yaml:"section"`
	Search      string    `yaml:"search"`
	Extract     string    `yaml:"extract"`
	Message     string    `yaml:"message"`
	NoneMessage string    `yaml:"none_message"`
	Negatives   []string  `yaml:"negative"`
	Subsections []Section `yaml:"subsections"`

	// ExtractRe is compiled from Extract during load. Nil when the section
	// is a pure presence test with no capture step.
	ExtractRe *regexp.Regexp `yaml:"-"`
}

// Grouping is a cross-cutting roll-up rule: when every named section
// resolves to a negative answer, Message replaces the individual
// per-section statements. Members may live on different branches of the
// question tree.
type Grouping struct {
	Sections []string `yaml:"sections"`
	Message  string   `yaml:"message"`
}

// TrackedSections returns the union of section names that participate in
// any roll-up grouping.
func (s *Schema) TrackedSections() []string {
	var names []string
	seen := map[string]bool{}
	for _, g := range s.Groupings {
		for _, n := range g.Sections {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

// ConfigError reports an invalid rule schema. It is always raised at load
// time, before any document is processed: a malformed rule silently
// matching nothing is worse than a refused start.
type ConfigError struct {
	Path string // schema location, e.g. "docs[1].questions[0]"
	Msg  string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("rule schema: %s", e.Msg)
	}
	return fmt.Sprintf("rule schema: %s: %s", e.Path, e.Msg)
}
