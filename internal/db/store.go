package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/chriserin/fspec/internal/parser"
)

// FileSync describes what SyncFile changed.
type FileSync struct {
	FileID  int64
	New     bool // file was not tracked before
	Added   int
	Updated int
	Removed int
}

// TestLink ties a scenario to the test that exercises it.
type TestLink struct {
	ScenarioID int64
	FilePath   string
	LineNumber int
}

func scenarioKey(rule, name string) string {
	return rule + "\x00" + name
}

// SyncFile registers the document at path and reconciles its scenarios with
// the stored ones. Scenarios are matched by rule and name; matched rows keep
// their id, new ones are inserted, and rows no longer in the document are
// marked removed. A repeated rule and name pair within one document is
// stored once.
func SyncFile(sqlDB *sql.DB, path, title, background string, scenarios []parser.ParsedScenario) (FileSync, error) {
	var res FileSync

	tx, err := sqlDB.Begin()
	if err != nil {
		return res, fmt.Errorf("beginning sync of %s: %w", path, err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`SELECT id FROM files WHERE file_path = ?`, path).Scan(&res.FileID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		r, err := tx.Exec(`INSERT INTO files (file_path, title, background) VALUES (?, ?, ?)`, path, title, background)
		if err != nil {
			return res, fmt.Errorf("inserting %s: %w", path, err)
		}
		if res.FileID, err = r.LastInsertId(); err != nil {
			return res, fmt.Errorf("reading id of %s: %w", path, err)
		}
		res.New = true
	case err != nil:
		return res, fmt.Errorf("querying %s: %w", path, err)
	default:
		_, err := tx.Exec(`UPDATE files SET title = ?, background = ?, updated_at = datetime('now') WHERE id = ?`, title, background, res.FileID)
		if err != nil {
			return res, fmt.Errorf("updating %s: %w", path, err)
		}
	}

	type stored struct {
		id      int64
		content string
		removed bool
	}
	existing := map[string]stored{}
	rows, err := tx.Query(`SELECT id, rule, name, content, removed FROM scenarios WHERE file_id = ?`, res.FileID)
	if err != nil {
		return res, fmt.Errorf("querying scenarios of %s: %w", path, err)
	}
	for rows.Next() {
		var s stored
		var rule, name string
		if err := rows.Scan(&s.id, &rule, &name, &s.content, &s.removed); err != nil {
			rows.Close()
			return res, fmt.Errorf("scanning scenario: %w", err)
		}
		existing[scenarioKey(rule, name)] = s
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("iterating scenarios: %w", err)
	}

	seen := map[string]bool{}
	for _, ps := range scenarios {
		key := scenarioKey(ps.Rule, ps.Name)
		if seen[key] {
			continue
		}
		seen[key] = true

		s, ok := existing[key]
		if !ok {
			_, err := tx.Exec(`INSERT INTO scenarios (file_id, rule, name, kind, content) VALUES (?, ?, ?, ?, ?)`,
				res.FileID, ps.Rule, ps.Name, ps.Kind, ps.Content)
			if err != nil {
				return res, fmt.Errorf("inserting scenario %q: %w", ps.Name, err)
			}
			res.Added++
			continue
		}
		if s.content == ps.Content && !s.removed {
			continue
		}
		_, err := tx.Exec(`UPDATE scenarios SET kind = ?, content = ?, removed = 0, updated_at = datetime('now') WHERE id = ?`,
			ps.Kind, ps.Content, s.id)
		if err != nil {
			return res, fmt.Errorf("updating scenario %d: %w", s.id, err)
		}
		res.Updated++
	}

	for key, s := range existing {
		if seen[key] || s.removed {
			continue
		}
		if _, err := tx.Exec(`UPDATE scenarios SET removed = 1, updated_at = datetime('now') WHERE id = ?`, s.id); err != nil {
			return res, fmt.Errorf("removing scenario %d: %w", s.id, err)
		}
		res.Removed++
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("committing sync of %s: %w", path, err)
	}
	return res, nil
}

// ReplaceTestLinks swaps all stored test links for links. Links to unknown
// scenarios are skipped; the number stored is returned.
func ReplaceTestLinks(sqlDB *sql.DB, links []TestLink) (int, error) {
	tx, err := sqlDB.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning test link update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM test_links`); err != nil {
		return 0, fmt.Errorf("clearing test links: %w", err)
	}

	stored := 0
	for _, l := range links {
		r, err := tx.Exec(`INSERT OR IGNORE INTO test_links (scenario_id, file_path, line_number)
			SELECT id, ?, ? FROM scenarios WHERE id = ?`, l.FilePath, l.LineNumber, l.ScenarioID)
		if err != nil {
			return 0, fmt.Errorf("inserting test link %s:%d: %w", l.FilePath, l.LineNumber, err)
		}
		n, err := r.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("inserting test link %s:%d: %w", l.FilePath, l.LineNumber, err)
		}
		if n > 0 {
			stored++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing test links: %w", err)
	}
	return stored, nil
}
