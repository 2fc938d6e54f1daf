// Package parser reads and writes the Given/When/Then dialect embedded in
// fenced blocks of a spec document.
//
// The parser is lenient on purpose. It never reports errors: lines it does
// not recognize are skipped, and steps that appear outside a Background or a
// Scenario are dropped. Both are recorded in Document.Skipped. It is a
// structural reader for an editing aid, not a validating grammar.
package parser

import "strings"

// DefaultTag is the fence language marker of the dialect.
const DefaultTag = "gherkin"

// Keyword is one of the five step keywords, in canonical title case.
type Keyword string

const (
	Given Keyword = "Given"
	When  Keyword = "When"
	Then  Keyword = "Then"
	And   Keyword = "And"
	But   Keyword = "But"
)

// CanonicalKeyword title-cases raw ("GIVEN" -> "Given").
func CanonicalKeyword(raw string) Keyword {
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	return Keyword(strings.ToUpper(lower[:1]) + lower[1:])
}

type Step struct {
	Keyword Keyword
	Text    string
}

func (s Step) String() string {
	return string(s.Keyword) + " " + s.Text
}

type Scenario struct {
	Title string
	Steps []Step
}

// Rule groups example scenarios. Rules do not nest.
type Rule struct {
	Title    string
	Examples []Scenario
}

// Document is the result of parsing one source. Rules and top-level
// scenarios are kept in separate lists, so their relative order in the
// source is not recorded.
type Document struct {
	Background []Step
	Rules      []Rule
	Scenarios  []Scenario

	// OtherContent is the trimmed prose outside the dialect's fences. It is
	// for display only; Serialize does not write it back.
	OtherContent string

	// Skipped lists, trimmed and in order, the lines inside the fences that
	// the parser did not keep: unrecognized lines, Feature headers and steps
	// with no owner. Serialize cannot reproduce them.
	Skipped []string
}

// Empty reports whether the document holds no steps, rules or scenarios.
func (d *Document) Empty() bool {
	return len(d.Background) == 0 && len(d.Rules) == 0 && len(d.Scenarios) == 0
}
