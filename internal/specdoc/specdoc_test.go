package specdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/fspec/internal/parser"
)

const loginSpec = `---
title: Login
status: draft
tags: [auth, web]
owner: platform
---

# Login

Users sign in with a password.

` + "```gherkin" + `
Background:
  Given a registered user
` + "```" + `

Notes between blocks.

` + "```gherkin" + `
Scenario: User logs in
  When they enter the right password
  Then they see the dashboard
` + "```" + `
`

func TestSplit_FrontMatter(t *testing.T) {
	fm, body, err := Split(loginSpec)
	require.NoError(t, err)

	assert.Equal(t, "Login", fm.Title)
	assert.Equal(t, "draft", fm.Status)
	assert.Equal(t, []string{"auth", "web"}, fm.Tags)
	assert.Contains(t, fm.Raw(), "owner: platform")
	assert.NotContains(t, body, "owner: platform")
	assert.Contains(t, body, "# Login")
}

func TestSplit_NoFrontMatter(t *testing.T) {
	fm, body, err := Split("# Title\n")
	require.NoError(t, err)

	assert.Empty(t, fm.Raw())
	assert.Equal(t, "# Title\n", body)
}

func TestSplit_UnclosedFrontMatter(t *testing.T) {
	fm, body, err := Split("---\ntitle: x\n")
	require.NoError(t, err)

	assert.Empty(t, fm.Title)
	assert.Equal(t, "---\ntitle: x\n", body)
}

func TestSplit_InvalidYAML(t *testing.T) {
	_, _, err := Split("---\ntitle: [unclosed\n---\n")

	assert.ErrorContains(t, err, "parsing front matter")
}

func TestLoad(t *testing.T) {
	spec, err := Load(loginSpec, parser.DefaultTag)
	require.NoError(t, err)

	assert.Len(t, spec.Doc.Background, 1)
	require.Len(t, spec.Doc.Scenarios, 1)
	assert.Equal(t, "User logs in", spec.Doc.Scenarios[0].Title)
	assert.Equal(t, "# Login\n\nUsers sign in with a password.\n\nNotes between blocks.", spec.Doc.OtherContent)
}

func TestRender_Canonical(t *testing.T) {
	spec, err := Load(loginSpec, parser.DefaultTag)
	require.NoError(t, err)

	expected := `---
title: Login
status: draft
tags: [auth, web]
owner: platform
---

# Login

Users sign in with a password.

Notes between blocks.

` + "```gherkin" + `
Background:
  Given a registered user
` + "```" + `

` + "```gherkin" + `
Scenario: User logs in
  When they enter the right password
  Then they see the dashboard
` + "```" + `
`
	assert.Equal(t, expected, spec.Render(parser.DefaultTag))
}

func TestRender_Idempotent(t *testing.T) {
	spec, err := Load(loginSpec, parser.DefaultTag)
	require.NoError(t, err)
	once := spec.Render(parser.DefaultTag)

	again, err := Load(once, parser.DefaultTag)
	require.NoError(t, err)

	assert.Equal(t, once, again.Render(parser.DefaultTag))
}

func TestRender_Empty(t *testing.T) {
	spec, err := Load("", parser.DefaultTag)
	require.NoError(t, err)

	assert.Equal(t, "", spec.Render(parser.DefaultTag))
}

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"front matter title", "---\ntitle: Checkout\n---\n# Other\n", "Checkout"},
		{"heading", "intro\n\n# Checkout flow\n", "Checkout flow"},
		{"nothing", "## Sub only\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Load(tt.content, parser.DefaultTag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec.Name())
		})
	}
}

func TestRender_KeepsFrontMatterDelimiters(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty block", "---\n---\n\n# Login\n"},
		{"dots closer", "---\ntitle: Login\n...\n\n# Login\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Load(tt.content, parser.DefaultTag)
			require.NoError(t, err)

			assert.Equal(t, tt.content, spec.Render(parser.DefaultTag))
		})
	}
}
