// Package specdoc handles a spec document as a whole: optional YAML front
// matter, free prose, and the gherkin blocks read by package parser.
package specdoc

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chriserin/fspec/internal/parser"
)

const delimiter = "---"

// FrontMatter holds the fields fspec reads from the leading YAML block. The
// block itself is written back verbatim, so unknown keys survive a rewrite.
type FrontMatter struct {
	Title  string   `yaml:"title"`
	Status string   `yaml:"status"`
	Tags   []string `yaml:"tags"`

	present bool
	raw     string
	closer  string
}

// Raw returns the YAML between the delimiters, or "" if there was none.
func (fm FrontMatter) Raw() string {
	return fm.raw
}

func (fm FrontMatter) block() string {
	if fm.raw == "" {
		return delimiter + "\n" + fm.closer
	}
	return delimiter + "\n" + fm.raw + "\n" + fm.closer
}

// Split separates a leading front matter block from the body. A document
// that does not open with "---", or never closes it, has no front matter.
func Split(content string) (FrontMatter, string, error) {
	var fm FrontMatter

	content = strings.TrimPrefix(content, "\ufeff")
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return fm, content, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		t := strings.TrimSpace(lines[i])
		if t == delimiter || t == "..." {
			end = i
			break
		}
	}
	if end < 0 {
		return fm, content, nil
	}

	raw := strings.TrimRight(strings.Join(lines[1:end], "\n"), "\r\n")
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return FrontMatter{}, "", fmt.Errorf("parsing front matter: %w", err)
	}
	fm.present = true
	fm.raw = raw
	fm.closer = strings.TrimSpace(lines[end])
	return fm, strings.Join(lines[end+1:], "\n"), nil
}

// Spec is one parsed spec document.
type Spec struct {
	Front FrontMatter
	Doc   *parser.Document
}

// Load parses content, reading gherkin blocks fenced with tag.
func Load(content, tag string) (*Spec, error) {
	fm, body, err := Split(content)
	if err != nil {
		return nil, err
	}
	return &Spec{Front: fm, Doc: parser.ParseTag(body, tag)}, nil
}

// ReadFile loads the spec document at path.
func ReadFile(path, tag string) (*Spec, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	spec, err := Load(string(content), tag)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// Render writes the spec back in canonical form: front matter, then the
// prose, then the gherkin blocks. Prose that sat between blocks in the
// source ends up above all of them.
func (s *Spec) Render(tag string) string {
	var parts []string
	if s.Front.present {
		parts = append(parts, s.Front.block())
	}
	if s.Doc != nil && s.Doc.OtherContent != "" {
		parts = append(parts, s.Doc.OtherContent)
	}
	if blocks := parser.SerializeTag(s.Doc, tag); blocks != "" {
		parts = append(parts, blocks)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// Name is the front matter title, else the first level-one heading of the
// prose, else "".
func (s *Spec) Name() string {
	if s.Front.Title != "" {
		return s.Front.Title
	}
	if s.Doc == nil {
		return ""
	}
	for _, l := range strings.Split(s.Doc.OtherContent, "\n") {
		if t := strings.TrimSpace(l); strings.HasPrefix(t, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(t, "# "))
		}
	}
	return ""
}
