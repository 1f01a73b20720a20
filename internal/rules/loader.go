package rules

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// schemaFile mirrors the on-disk YAML layout before compilation.
type schemaFile struct {
	General struct {
		Title string       `yaml:"title"`
		Scope []ScopeEntry `yaml:"scope"`
	} `yaml:"general"`
	Docs []Group `yaml:"docs"`
	None struct {
		Sections []string `yaml:"sections"`
		Message  string   `yaml:"message"`
	} `yaml:"none"`
}

// placeholderRe matches {extracted_text_N} references inside a message
// template.
var placeholderRe = regexp.MustCompile(`\{extracted_text_(\d+)\}`)

// Load reads and compiles a rule schema from a YAML file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule schema: %w", err)
	}
	return Parse(data)
}

// Parse compiles a rule schema from raw YAML. Missing required keys and
// template/pattern mismatches surface as *ConfigError.
func Parse(data []byte) (*Schema, error) {
	var file schemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rule schema: %w", err)
	}

	schema := &Schema{
		Title:  file.General.Title,
		Scope:  file.General.Scope,
		Groups: file.Docs,
	}
	if file.None.Message != "" || len(file.None.Sections) > 0 {
		schema.Groupings = []Grouping{{
			Sections: file.None.Sections,
			Message:  file.None.Message,
		}}
	}

	if err := schema.compile(); err != nil {
		return nil, err
	}
	return schema, nil
}

// compile validates required fields and compiles extraction patterns for
// every group and section, recursively.
func (s *Schema) compile() error {
	if len(s.Groups) == 0 {
		return &ConfigError{Path: "docs", Msg: "at least one document group is required"}
	}
	for i := range s.Groups {
		group := &s.Groups[i]
		loc := "docs[" + strconv.Itoa(i) + "]"
		if group.Identifier == "" {
			return &ConfigError{Path: loc, Msg: "identifier is required"}
		}
		if err := compileSections(group.Questions, loc+".questions"); err != nil {
			return err
		}
	}
	for i, g := range s.Groupings {
		if g.Message == "" {
			return &ConfigError{
				Path: "none[" + strconv.Itoa(i) + "]",
				Msg:  "roll-up message is required when sections are listed",
			}
		}
	}
	return nil
}

func compileSections(sections []Section, loc string) error {
	for i := range sections {
		sec := &sections[i]
		secLoc := loc + "[" + strconv.Itoa(i) + "]"
		if sec.Search == "" {
			return &ConfigError{Path: secLoc, Msg: "search pattern is required"}
		}
		if sec.Extract != "" {
			re, err := regexp.Compile("(?ism)" + sec.Extract)
			if err != nil {
				return &ConfigError{Path: secLoc, Msg: "invalid extract pattern: " + err.Error()}
			}
			sec.ExtractRe = re
		}
		if err := checkTemplate(sec, secLoc); err != nil {
			return err
		}
		if sec.Negatives == nil {
			sec.Negatives = DefaultNegatives
		}
		if err := compileSections(sec.Subsections, secLoc+".subsections"); err != nil {
			return err
		}
	}
	return nil
}

// checkTemplate verifies every {extracted_text_N} reference in the message
// template is backed by a capture group in the extract pattern. This is a
// load-time type check; discovering the mismatch at render time would
// silently mis-render every document.
func checkTemplate(sec *Section, loc string) error {
	refs := placeholderRe.FindAllStringSubmatch(sec.Message, -1)
	if len(refs) == 0 {
		return nil
	}
	groups := 0
	if sec.ExtractRe != nil {
		groups = sec.ExtractRe.NumSubexp()
	}
	for _, ref := range refs {
		n, err := strconv.Atoi(ref[1])
		if err != nil || n < 1 {
			return &ConfigError{Path: loc, Msg: "invalid placeholder " + ref[0]}
		}
		if n > groups {
			return &ConfigError{
				Path: loc,
				Msg: fmt.Sprintf("message references %s but extract pattern has %d capture group(s)",
					ref[0], groups),
			}
		}
	}
	return nil
}
