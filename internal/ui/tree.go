package ui

import (
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/chriserin/fspec/internal/parser"
)

// DocumentTree renders doc as a tree rooted at name: the background, then
// each rule with its examples, then the top-level scenarios.
func DocumentTree(name string, doc *parser.Document) string {
	root := tree.Root(headerStyle.Render(name)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(faintStyle)

	if len(doc.Background) > 0 {
		root.Child(stepsTree(keywordStyle.Render("Background"), doc.Background))
	}
	for _, r := range doc.Rules {
		rule := tree.Root(keywordStyle.Render("Rule:") + " " + r.Title).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(faintStyle)
		for _, ex := range r.Examples {
			rule.Child(stepsTree(keywordStyle.Render("Example:")+" "+ex.Title, ex.Steps))
		}
		root.Child(rule)
	}
	for _, s := range doc.Scenarios {
		root.Child(stepsTree(keywordStyle.Render("Scenario:")+" "+s.Title, s.Steps))
	}
	return root.String()
}

func stepsTree(label string, steps []parser.Step) *tree.Tree {
	t := tree.Root(label).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(faintStyle)
	for _, st := range steps {
		t.Child(stepStyle.Render(string(st.Keyword)) + " " + st.Text)
	}
	return t
}
