package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/fspec/internal/config"
	"github.com/chriserin/fspec/internal/db"
	"github.com/chriserin/fspec/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a scenario by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), cfg, args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, c *config.Config, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if err := requireInit(c); err != nil {
		return err
	}

	sqlDB, err := db.Open(c.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	var (
		rule, content, status string
		filePath, background  string
		removed               bool
	)
	err = sqlDB.QueryRow(`
		SELECT s.rule, s.content, s.removed, `+currentStatusSQL+`, f.file_path, f.background
		FROM scenarios s
		JOIN files f ON s.file_id = f.id
		WHERE s.id = ?
	`, id).Scan(&rule, &content, &removed, &status, &filePath, &background)
	if err != nil {
		return fmt.Errorf("scenario %d not found", id)
	}

	ui.ShowHeader(w, id, filepath.Base(filePath))
	ui.ShowStatus(w, status)
	if removed {
		fmt.Fprintf(w, "removed from %s\n", filePath)
	}

	if background != "" {
		fmt.Fprintln(w)
		ui.ShowGherkin(w, background)
	}

	fmt.Fprintln(w)
	if rule != "" {
		ui.ShowGherkin(w, "Rule: "+rule)
		content = indent(content, "  ")
	}
	ui.ShowGherkin(w, content)
	return nil
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
