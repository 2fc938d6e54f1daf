package parser

import (
	"regexp"
	"strings"
)

var stepPattern = regexp.MustCompile(`(?i)^(Given|When|Then|And|But)\s+(.*)$`)

// Parse reads every gherkin block of content into one Document.
func Parse(content string) *Document {
	return ParseTag(content, DefaultTag)
}

// ParseTag is Parse for blocks fenced with a different language tag.
func ParseTag(content, tag string) *Document {
	blocks, rest := ExtractBlocks(content, tag)
	doc := ParseBlocks(blocks)
	doc.OtherContent = rest
	return doc
}

// ParseBlocks folds the given block bodies, in order, into a single Document.
// Blocks are not isolated from each other: they all append to the same
// background, rule and scenario lists.
func ParseBlocks(blocks []string) *Document {
	var b builder
	for _, block := range blocks {
		for _, l := range segmentLines(block) {
			b = b.feed(l)
		}
		b = b.endSegment()
	}
	doc := b.doc
	return &doc
}

type lineKind int

const (
	lineOther lineKind = iota
	lineFeature
	lineBackground
	lineRule
	lineScenario
	lineStep
)

type line struct {
	kind    lineKind
	keyword Keyword
	payload string
	text    string
}

// segmentLines splits a block body into classified lines, skipping blanks.
func segmentLines(block string) []line {
	var out []line
	for _, raw := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		l := classify(trimmed)
		l.text = trimmed
		out = append(out, l)
	}
	return out
}

// classify labels one trimmed line. Header keywords match case-sensitively,
// step keywords in any case.
func classify(trimmed string) line {
	switch {
	case strings.HasPrefix(trimmed, "Feature:"):
		return line{kind: lineFeature}
	case strings.HasPrefix(trimmed, "Background:"):
		return line{kind: lineBackground}
	case strings.HasPrefix(trimmed, "Rule:"):
		return line{kind: lineRule, payload: headerPayload(trimmed, "Rule:")}
	case strings.HasPrefix(trimmed, "Scenario:"):
		return line{kind: lineScenario, payload: headerPayload(trimmed, "Scenario:")}
	case strings.HasPrefix(trimmed, "Example:"):
		return line{kind: lineScenario, payload: headerPayload(trimmed, "Example:")}
	}

	if m := stepPattern.FindStringSubmatch(trimmed); m != nil {
		return line{
			kind:    lineStep,
			keyword: CanonicalKeyword(m[1]),
			payload: strings.TrimSpace(m[2]),
		}
	}
	return line{kind: lineOther}
}

func headerPayload(trimmed, keyword string) string {
	return strings.TrimSpace(strings.TrimPrefix(trimmed, keyword))
}

type state int

const (
	stateIdle state = iota
	stateBackground
	stateScenario    // top-level scenario open
	stateRule        // rule open, no example open
	stateRuleExample // rule open, example open
)

// builder accumulates a Document. It is a value: each transition takes the
// current builder and returns the next one.
//
// The state says where an open scenario belongs. ruleOpen is tracked on its
// own because a Background header does not close the current rule.
type builder struct {
	state    state
	ruleOpen bool
	rule     Rule
	scenario Scenario
	doc      Document
}

func (b builder) feed(l line) builder {
	switch l.kind {
	case lineBackground:
		b = b.flushScenario()
		b.state = stateBackground

	case lineRule:
		b = b.flushScenario().flushRule()
		b.rule = Rule{Title: l.payload}
		b.ruleOpen = true
		b.state = stateRule

	case lineScenario:
		b = b.flushScenario()
		b.scenario = Scenario{Title: l.payload}
		if b.ruleOpen {
			b.state = stateRuleExample
		} else {
			b.state = stateScenario
		}

	case lineStep:
		step := Step{Keyword: l.keyword, Text: l.payload}
		switch b.state {
		case stateBackground:
			b.doc.Background = append(b.doc.Background, step)
		case stateScenario, stateRuleExample:
			b.scenario.Steps = append(b.scenario.Steps, step)
		default:
			// No owner.
			b.doc.Skipped = append(b.doc.Skipped, l.text)
		}

	default:
		b.doc.Skipped = append(b.doc.Skipped, l.text)
	}
	return b
}

// flushScenario moves the open scenario into its container.
func (b builder) flushScenario() builder {
	switch b.state {
	case stateScenario:
		b.doc.Scenarios = append(b.doc.Scenarios, b.scenario)
	case stateRuleExample:
		b.rule.Examples = append(b.rule.Examples, b.scenario)
	default:
		return b
	}

	b.scenario = Scenario{}
	if b.ruleOpen {
		b.state = stateRule
	} else {
		b.state = stateIdle
	}
	return b
}

// flushRule moves the open rule into the document. Any open example must
// have been flushed first.
func (b builder) flushRule() builder {
	if !b.ruleOpen {
		return b
	}
	b.doc.Rules = append(b.doc.Rules, b.rule)
	b.rule = Rule{}
	b.ruleOpen = false
	if b.state == stateRule {
		b.state = stateIdle
	}
	return b
}

func (b builder) endSegment() builder {
	b = b.flushScenario().flushRule()
	b.state = stateIdle
	return b
}
