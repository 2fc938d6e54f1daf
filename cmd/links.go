package cmd

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/chriserin/fspec/internal/db"
)

var linkPattern = regexp.MustCompile(`@spec:(\d+)`)

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"testdata":     true,
}

// scanTestLinks walks root for files matching pattern and collects every
// "@spec:<id>" reference that appears in a // comment.
func scanTestLinks(root, pattern string) ([]db.TestLink, error) {
	var links []db.TestLink
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); !ok {
			return nil
		}

		found, err := linksInFile(path)
		if err != nil {
			return err
		}
		links = append(links, found...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning test files: %w", err)
	}
	return links, nil
}

func linksInFile(path string) ([]db.TestLink, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var links []db.TestLink
	rel := filepath.ToSlash(path)
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		text := scanner.Text()
		c := strings.Index(text, "//")
		if c < 0 {
			continue
		}
		for _, m := range linkPattern.FindAllStringSubmatch(text[c:], -1) {
			id, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				continue
			}
			links = append(links, db.TestLink{ScenarioID: id, FilePath: rel, LineNumber: n})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return links, nil
}
