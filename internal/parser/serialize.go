package parser

import "strings"

// Serialize renders doc as gherkin blocks: the background first, then one
// block per rule, then one block per top-level scenario, separated by a blank
// line. OtherContent is not written.
func Serialize(doc *Document) string {
	return SerializeTag(doc, DefaultTag)
}

// SerializeTag is Serialize with a different fence language tag.
func SerializeTag(doc *Document, tag string) string {
	if doc == nil {
		return ""
	}

	var blocks []string
	if len(doc.Background) > 0 {
		blocks = append(blocks, fenced(tag, backgroundBody(doc.Background)))
	}
	for _, r := range doc.Rules {
		blocks = append(blocks, fenced(tag, ruleBody(r)))
	}
	for _, s := range doc.Scenarios {
		blocks = append(blocks, fenced(tag, scenarioBody("Scenario", s, "")))
	}
	return strings.Join(blocks, "\n\n")
}

func backgroundBody(steps []Step) string {
	var b strings.Builder
	b.WriteString("Background:\n")
	writeSteps(&b, steps, "  ")
	return b.String()
}

func ruleBody(r Rule) string {
	var b strings.Builder
	b.WriteString("Rule: " + r.Title + "\n")
	for _, ex := range r.Examples {
		b.WriteString(scenarioBody("Example", ex, "  "))
		b.WriteString("\n")
	}
	return b.String()
}

// ScenarioText renders one scenario's header and steps without fences.
func ScenarioText(s Scenario) string {
	return strings.TrimSpace(scenarioBody("Scenario", s, ""))
}

func scenarioBody(header string, s Scenario, indent string) string {
	var b strings.Builder
	b.WriteString(indent + header + ": " + s.Title + "\n")
	writeSteps(&b, s.Steps, indent+"  ")
	return b.String()
}

func writeSteps(b *strings.Builder, steps []Step, indent string) {
	for _, st := range steps {
		b.WriteString(indent + st.String() + "\n")
	}
}

func fenced(tag, body string) string {
	return fence + tag + "\n" + strings.TrimSpace(body) + "\n" + fence
}
