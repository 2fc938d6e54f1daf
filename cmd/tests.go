package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/fspec/internal/config"
	"github.com/chriserin/fspec/internal/db"
	"github.com/chriserin/fspec/internal/ui"
)

var testsCmd = &cobra.Command{
	Use:   "tests <id>",
	Short: "List test files linked to a scenario",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunTests(cmd.OutOrStdout(), cfg, args[0])
	},
}

func init() {
	rootCmd.AddCommand(testsCmd)
}

func RunTests(w io.Writer, c *config.Config, rawID string) error {
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

	var existingID int64
	if err := sqlDB.QueryRow(`SELECT id FROM scenarios WHERE id = ?`, id).Scan(&existingID); err != nil {
		return fmt.Errorf("scenario %d not found", id)
	}

	rows, err := sqlDB.Query(`SELECT file_path, line_number FROM test_links WHERE scenario_id = ? ORDER BY file_path, line_number`, id)
	if err != nil {
		return fmt.Errorf("querying test links: %w", err)
	}
	defer rows.Close()

	var found bool
	for rows.Next() {
		var filePath string
		var lineNumber int
		if err := rows.Scan(&filePath, &lineNumber); err != nil {
			return fmt.Errorf("scanning test link: %w", err)
		}
		fmt.Fprintf(w, "  %s:%d\n", filePath, lineNumber)
		found = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating test links: %w", err)
	}

	if !found {
		fmt.Fprintf(w, "no linked tests for %s\n", ui.IDTag(id))
	}
	return nil
}
