package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	trkStyle     = lipgloss.NewStyle().Faint(true)
	gonStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	keywordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

var statusStyles = map[string]lipgloss.Style{
	"accepted":    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	"ready":       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	"in-progress": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	"rejected":    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	"no-activity": faintStyle,
}

// IDTag formats a scenario id the way specs and tests reference it.
func IDTag(id int64) string {
	return fmt.Sprintf("@spec:%d", id)
}

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func TrkLine(w io.Writer, path string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+path)
}

// GoneLine reports a tracked file that no longer exists.
func GoneLine(w io.Writer, path string) {
	fmt.Fprintln(w, gonStyle.Render("gon")+"  "+path)
}

func SummaryLine(w io.Writer, count, added, removed int) {
	fmt.Fprintf(w, "synced %d files (%d scenarios added, %d removed)\n", count, added, removed)
}

func renderStatus(status string) string {
	if s, ok := statusStyles[status]; ok {
		return s.Render(status)
	}
	return status
}

// ListRow prints one scenario padded to the given column widths.
func ListRow(w io.Writer, id int64, fileName, name, status string, idWidth, fileWidth, nameWidth int) {
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		idStyle.Render(pad(IDTag(id), idWidth)),
		pad(fileName, fileWidth),
		pad(name, nameWidth),
		renderStatus(status),
	)
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func ShowHeader(w io.Writer, id int64, fileName string) {
	fmt.Fprintln(w, headerStyle.Render(IDTag(id))+"  "+fileName)
}

func ShowStatus(w io.Writer, status string) {
	fmt.Fprintln(w, "status: "+renderStatus(status))
}

// ShowGherkin prints gherkin text with header and step keywords highlighted.
func ShowGherkin(w io.Writer, content string) {
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintln(w, highlight(line))
	}
}

var headers = []string{"Background:", "Rule:", "Scenario:", "Example:"}

func highlight(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]

	for _, h := range headers {
		if strings.HasPrefix(trimmed, h) {
			return indent + keywordStyle.Render(h) + trimmed[len(h):]
		}
	}
	if kw, rest, ok := strings.Cut(trimmed, " "); ok {
		switch kw {
		case "Given", "When", "Then", "And", "But":
			return indent + stepStyle.Render(kw) + " " + rest
		}
	}
	return line
}

func StatusConfirm(w io.Writer, id int64, prev, status string) {
	if prev == "" {
		prev = "no-activity"
	}
	fmt.Fprintf(w, "%s  %s -> %s\n", IDTag(id), renderStatus(prev), renderStatus(status))
}
