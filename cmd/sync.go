package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chriserin/fspec/internal/config"
	"github.com/chriserin/fspec/internal/db"
	"github.com/chriserin/fspec/internal/parser"
	"github.com/chriserin/fspec/internal/specdoc"
	"github.com/chriserin/fspec/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Parse spec documents and register their scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func RunSync(w io.Writer, c *config.Config) error {
	if err := requireInit(c); err != nil {
		return err
	}

	sqlDB, err := db.Open(c.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	matches, err := filepath.Glob(c.Documents())
	if err != nil {
		return fmt.Errorf("scanning %s: %w", c.Dir, err)
	}
	sort.Strings(matches)

	present := map[string]bool{}
	added, removed := 0, 0
	var failed []error
	for _, path := range matches {
		path = filepath.ToSlash(path)
		present[path] = true

		spec, err := specdoc.ReadFile(path, c.FenceTag)
		if err != nil {
			logger.Error().Err(err).Str("file", path).Msg("skipping document")
			failed = append(failed, err)
			continue
		}
		res, err := db.SyncFile(sqlDB, path, spec.Name(), parser.BackgroundText(spec.Doc), parser.Flatten(spec.Doc))
		if err != nil {
			return err
		}
		logger.Debug().
			Str("file", path).
			Int("added", res.Added).
			Int("updated", res.Updated).
			Int("removed", res.Removed).
			Msg("synced")

		if res.New {
			ui.NewLine(w, path)
		} else {
			ui.TrkLine(w, path)
		}
		added += res.Added
		removed += res.Removed
	}

	gone, err := removeMissingFiles(w, sqlDB, present)
	if err != nil {
		return err
	}
	removed += gone

	links, err := scanTestLinks(".", c.TestsPattern)
	if err != nil {
		return err
	}
	stored, err := db.ReplaceTestLinks(sqlDB, links)
	if err != nil {
		return err
	}
	if stored < len(links) {
		logger.Warn().Int("found", len(links)).Int("stored", stored).Msg("some test links point at unknown scenarios")
	}

	ui.SummaryLine(w, len(matches)-len(failed), added, removed)
	return errors.Join(failed...)
}

// removeMissingFiles marks the scenarios of tracked files that are no longer
// on disk as removed, and returns how many it marked.
func removeMissingFiles(w io.Writer, sqlDB *sql.DB, present map[string]bool) (int, error) {
	rows, err := sqlDB.Query(`SELECT id, file_path FROM files ORDER BY file_path`)
	if err != nil {
		return 0, fmt.Errorf("querying files: %w", err)
	}
	type file struct {
		id   int64
		path string
	}
	var missing []file
	for rows.Next() {
		var f file
		if err := rows.Scan(&f.id, &f.path); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning file row: %w", err)
		}
		if !present[f.path] {
			missing = append(missing, f)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating files: %w", err)
	}

	total := 0
	for _, f := range missing {
		r, err := sqlDB.Exec(`UPDATE scenarios SET removed = 1, updated_at = datetime('now') WHERE file_id = ? AND removed = 0`, f.id)
		if err != nil {
			return 0, fmt.Errorf("removing scenarios of %s: %w", f.path, err)
		}
		n, err := r.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("removing scenarios of %s: %w", f.path, err)
		}
		if n > 0 {
			ui.GoneLine(w, f.path)
		}
		total += int(n)
	}
	return total, nil
}
