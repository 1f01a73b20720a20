package rules

// Default returns the built-in rule schema used when no rule file is
// configured. It covers the common replies found in a local-authority
// property search bundle: CON29 standard enquiries and the LLC1 local
// land charges certificate.
//
// The schema is compiled eagerly; an invalid built-in pattern is a
// programmer error and panics at startup.
func Default() *Schema {
	schema := &Schema{
		Title: "Property Search Report",
		Scope: []ScopeEntry{
			{
				Heading: "Scope of this report",
				Body: "This report summarises the replies received from the local " +
					"authority to the standard property search enquiries. Each reply " +
					"document has been read in full and the findings below are " +
					"extracted verbatim where possible.",
			},
		},
		Groups: []Group{
			{
				Identifier: "REPLIES TO STANDARD ENQUIRIES",
				Heading:    "Replies to Standard Enquiries (CON29)",
				FoundMessage: "The local authority has provided replies to the " +
					"standard enquiries. The findings for each enquiry are set out below.",
				NotFoundMessage: "No replies to the standard enquiries were found " +
					"in the documents supplied.",
				Questions: []Section{
					{
						Name:    "Planning and building decisions",
						Search:  "1.1",
						Extract: `1\.1\s*(.*?)(?:\n|$)`,
						Message: "{extracted_text_1}",
						NoneMessage: "No planning or building decisions are recorded " +
							"against the property.",
					},
					{
						Name:    "Highways",
						Search:  "2(a)",
						Extract: `2\(a\)\s*(.*?)(?:\n|$).*?\(a\)\s*(.*?)\n`,
						Message: "{extracted_text_1}. The main road ({extracted_text_2}) " +
							"is a highway maintainable at public expense.",
						NoneMessage: "The roads serving the property are not maintained " +
							"at public expense.",
						Subsections: []Section{
							{
								Name:        "Highways",
								Search:      "2(b)",
								Extract:     `2\(b\)\s*(.*?)(?:\n|$)`,
								Message:     "Footpaths: {extracted_text_1}",
								NoneMessage: "No footpaths or footways are recorded.",
							},
						},
					},
					{
						Name:    "Nearby road schemes",
						Search:  "3.4",
						Extract: `3\.4\s*(.*?)(?:\n|$)`,
						Message: "{extracted_text_1}",
						NoneMessage: "The property is not affected by any nearby " +
							"road schemes.",
					},
					{
						Name:    "Nearby railway schemes",
						Search:  "3.5",
						Extract: `3\.5\s*(.*?)(?:\n|$)`,
						Message: "{extracted_text_1}",
						NoneMessage: "The property is not affected by any nearby " +
							"railway schemes.",
					},
					{
						Name:    "Contaminated land",
						Search:  "3.12",
						Extract: `3\.12\s*(.*?)(?:\n|$)`,
						Message: "{extracted_text_1}",
						NoneMessage: "No entries relating to contaminated land appear " +
							"in the register.",
					},
				},
			},
			{
				Identifier: "LOCAL LAND CHARGES",
				Heading:    "Local Land Charges (LLC1)",
				FoundMessage: "An official certificate of search of the local land " +
					"charges register has been provided.",
				NotFoundMessage: "No local land charges certificate was found in the " +
					"documents supplied.",
				Questions: []Section{
					{
						Name:    "Registered charges",
						Search:  "Parts of the register",
						Extract: `Parts of the register searched\s*(.*?)(?:\n|$)`,
						Message: "The register discloses: {extracted_text_1}",
						NoneMessage: "The search reveals no subsisting registrations " +
							"in any part of the register.",
					},
				},
			},
		},
		Groupings: []Grouping{
			{
				Sections: []string{"Nearby road schemes", "Nearby railway schemes"},
				Message: "The property is not affected by any nearby road, rail or " +
					"traffic schemes.",
			},
		},
	}

	if err := schema.compile(); err != nil {
		panic("rules: built-in schema is invalid: " + err.Error())
	}
	return schema
}
