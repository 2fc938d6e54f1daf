package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_RuleExamplesThenScenarios(t *testing.T) {
	scenarios := Flatten(sampleDocument())

	require.Len(t, scenarios, 4)
	assert.Equal(t, ParsedScenario{
		Name:    "Valid password",
		Rule:    "Password requirements",
		Kind:    KindExample,
		Content: "Example: Valid password\n  Given a strong password\n  Then it is accepted",
	}, scenarios[0])
	assert.Equal(t, "Short password", scenarios[1].Name)
	assert.Equal(t, ParsedScenario{
		Name:    "Logout",
		Kind:    KindScenario,
		Content: "Scenario: Logout\n  When the user logs out\n  Then the session ends\n  But the cart is kept",
	}, scenarios[2])
	assert.Equal(t, "No steps yet", scenarios[3].Name)
	assert.Empty(t, scenarios[3].Rule)
}

func TestFlatten_Empty(t *testing.T) {
	assert.Empty(t, Flatten(&Document{}))
}

func TestBackgroundText(t *testing.T) {
	assert.Equal(t, "Background:\n  Given the system is configured\n  And a user exists", BackgroundText(sampleDocument()))
	assert.Equal(t, "", BackgroundText(&Document{}))
}
