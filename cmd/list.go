package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chriserin/fspec/internal/config"
	"github.com/chriserin/fspec/internal/db"
	"github.com/chriserin/fspec/internal/ui"
)

var (
	statusFlag     string
	noActivityFlag bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracked scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), cfg, statusFlag, noActivityFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status")
	listCmd.Flags().BoolVar(&noActivityFlag, "no-activity", false, "Show only scenarios with no status")
	rootCmd.AddCommand(listCmd)
}

// currentStatusSQL is the latest status of scenario s, or 'no-activity'.
const currentStatusSQL = `COALESCE(
	(SELECT status FROM statuses WHERE scenario_id = s.id ORDER BY changed_at DESC, id DESC LIMIT 1),
	'no-activity'
)`

type listRow struct {
	id       int64
	fileName string
	name     string
	status   string
}

func RunList(w io.Writer, c *config.Config, statusFilter string, noActivity bool) error {
	if err := requireInit(c); err != nil {
		return err
	}

	sqlDB, err := db.Open(c.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`
		SELECT s.id, f.file_path, s.rule, s.name, ` + currentStatusSQL + ` AS current_status
		FROM scenarios s
		JOIN files f ON s.file_id = f.id
		WHERE s.removed = 0
		ORDER BY f.file_path, s.id
	`)
	if err != nil {
		return fmt.Errorf("querying scenarios: %w", err)
	}
	defer rows.Close()

	var results []listRow
	for rows.Next() {
		var r listRow
		var filePath, rule string
		if err := rows.Scan(&r.id, &filePath, &rule, &r.name, &r.status); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		r.fileName = filepath.Base(filePath)
		if rule != "" {
			r.name = rule + " / " + r.name
		}

		if statusFilter != "" && r.status != statusFilter {
			continue
		}
		if noActivity && r.status != "no-activity" {
			continue
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	idWidth, fileWidth, nameWidth := 0, 0, 0
	for _, r := range results {
		idWidth = max(idWidth, len(ui.IDTag(r.id)))
		fileWidth = max(fileWidth, len(r.fileName))
		nameWidth = max(nameWidth, len(r.name))
	}

	for _, r := range results {
		ui.ListRow(w, r.id, r.fileName, r.name, r.status, idWidth, fileWidth, nameWidth)
	}
	return nil
}
