package parser

import "strings"

// Kinds of ParsedScenario.
const (
	KindScenario = "scenario"
	KindExample  = "example"
)

// ParsedScenario is one trackable scenario of a document: a top-level
// scenario or an example inside a rule.
type ParsedScenario struct {
	Name    string // Scenario:/Example: title
	Rule    string // enclosing rule title, empty for top-level scenarios
	Kind    string // KindScenario or KindExample
	Content string // scenario header and steps, unfenced
}

// Flatten lists the scenarios of doc in a stable order: rule examples in
// rule order first, then top-level scenarios.
func Flatten(doc *Document) []ParsedScenario {
	var out []ParsedScenario
	for _, r := range doc.Rules {
		for _, ex := range r.Examples {
			out = append(out, ParsedScenario{
				Name:    ex.Title,
				Rule:    r.Title,
				Kind:    KindExample,
				Content: strings.TrimSpace(scenarioBody("Example", ex, "")),
			})
		}
	}
	for _, s := range doc.Scenarios {
		out = append(out, ParsedScenario{
			Name:    s.Title,
			Kind:    KindScenario,
			Content: ScenarioText(s),
		})
	}
	return out
}

// BackgroundText renders the background steps without fences, or "" when
// there are none.
func BackgroundText(doc *Document) string {
	if len(doc.Background) == 0 {
		return ""
	}
	return strings.TrimSpace(backgroundBody(doc.Background))
}
