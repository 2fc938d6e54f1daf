package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/fspec/internal/config"
	"github.com/chriserin/fspec/internal/db"
	"github.com/chriserin/fspec/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status [<id> <status>]",
	Short: "Show project status or update a scenario's status",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return RunStatusReport(cmd.OutOrStdout(), cfg)
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: fspec status <id> <status>")
		}
		return RunStatusUpdate(cmd.OutOrStdout(), cfg, args[0], strings.Join(args[1:], " "))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatusUpdate(w io.Writer, c *config.Config, rawID, status string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	status = strings.TrimSpace(status)
	if status == "" || status == "no-activity" {
		return fmt.Errorf("invalid status: %q", status)
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
	err = sqlDB.QueryRow(`SELECT id FROM scenarios WHERE id = ?`, id).Scan(&existingID)
	if err != nil {
		return fmt.Errorf("scenario %d not found", id)
	}

	var prevStatus string
	err = sqlDB.QueryRow(`SELECT status FROM statuses WHERE scenario_id = ? ORDER BY changed_at DESC, id DESC LIMIT 1`, id).Scan(&prevStatus)
	if err != nil {
		prevStatus = ""
	}

	if _, err := sqlDB.Exec(`INSERT INTO statuses (scenario_id, status) VALUES (?, ?)`, id, status); err != nil {
		return fmt.Errorf("inserting status: %w", err)
	}
	logger.Info().Int64("scenario", id).Str("from", prevStatus).Str("to", status).Msg("status changed")

	ui.StatusConfirm(w, id, prevStatus, status)
	return nil
}

func RunStatusReport(w io.Writer, c *config.Config) error {
	if err := requireInit(c); err != nil {
		return err
	}

	sqlDB, err := db.Open(c.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	var count int
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM scenarios WHERE removed = 0`).Scan(&count); err != nil {
		return fmt.Errorf("counting scenarios: %w", err)
	}
	fmt.Fprintf(w, "Scenarios: %d\n", count)
	if count == 0 {
		return nil
	}

	rows, err := sqlDB.Query(`
		SELECT ` + currentStatusSQL + ` AS current_status, COUNT(*) AS cnt
		FROM scenarios s
		WHERE s.removed = 0
		GROUP BY current_status
		ORDER BY CASE WHEN current_status = 'no-activity' THEN 1 ELSE 0 END, cnt DESC, current_status
	`)
	if err != nil {
		return fmt.Errorf("querying status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var cnt int
		if err := rows.Scan(&status, &cnt); err != nil {
			return fmt.Errorf("scanning status row: %w", err)
		}
		fmt.Fprintf(w, "  %s: %d\n", status, cnt)
	}
	return rows.Err()
}
