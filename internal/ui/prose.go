package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Prose renders markdown for the terminal, wrapped at width. It falls back
// to the raw text if glamour cannot render it.
func Prose(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
