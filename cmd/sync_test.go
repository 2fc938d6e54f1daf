package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/fspec/internal/db"
)

const loginSpec = "---\ntitle: Login\n---\n\n# Login\n\n" +
	"```gherkin\nBackground:\n  Given a registered user\n```\n\n" +
	"```gherkin\nRule: Passwords\n  Example: Strong password\n    Given a strong password\n    Then it is accepted\n```\n\n" +
	"```gherkin\nScenario: User logs in\n  When they log in\n  Then they see the dashboard\n```\n"

func runSync(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunSync(&buf, testConfig()))
	return buf.String()
}

func countRows(t *testing.T, query string, args ...any) int {
	t.Helper()
	sqlDB, err := db.Open("specs/fspec.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	var n int
	require.NoError(t, sqlDB.QueryRow(query, args...).Scan(&n))
	return n
}

func TestSync_RequiresInit(t *testing.T) {
	inTempDir(t)

	err := RunSync(&bytes.Buffer{}, testConfig())

	assert.EqualError(t, err, "run `fspec init` first")
}

func TestSync_RegisterNewFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSpec(t, "login.md", "")

	out := runSync(t)

	assert.Equal(t, 1, countRows(t, `SELECT COUNT(*) FROM files WHERE file_path = ?`, "specs/login.md"))
	assert.Contains(t, out, "new  specs/login.md")
}

func TestSync_ShowAlreadyTrackedFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSpec(t, "login.md", "")

	runSync(t)
	out := runSync(t)

	assert.Contains(t, out, "trk  specs/login.md")
}

func TestSync_NoSpecFiles(t *testing.T) {
	inTempDir(t)
	runInit(t)
	require.NoError(t, os.WriteFile("specs/notes.txt", []byte("x"), 0o644))

	out := runSync(t)

	assert.Contains(t, out, "synced 0 files")
}

func TestSync_RegistersScenariosAndExamples(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSpec(t, "login.md", loginSpec)

	out := runSync(t)

	assert.Contains(t, out, "synced 1 files (2 scenarios added, 0 removed)")
	assert.Equal(t, 1, countRows(t, `SELECT COUNT(*) FROM scenarios WHERE rule = 'Passwords' AND name = 'Strong password' AND kind = 'example'`))
	assert.Equal(t, 1, countRows(t, `SELECT COUNT(*) FROM scenarios WHERE rule = '' AND name = 'User logs in' AND kind = 'scenario'`))
	assert.Equal(t, 1, countRows(t, `SELECT COUNT(*) FROM files WHERE title = 'Login' AND background LIKE 'Background:%'`))
}

func TestSync_IDsStableAcrossEdits(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSpec(t, "login.md", loginSpec)
	runSync(t)

	writeSpec(t, "login.md", "```gherkin\nScenario: New one\n  Given x\n```\n\n"+loginSpec)
	out := runSync(t)

	assert.Contains(t, out, "(1 scenarios added, 0 removed)")
	assert.Equal(t, 1, countRows(t, `SELECT COUNT(*) FROM scenarios WHERE id = 2 AND name = 'User logs in'`))
}

func TestSync_MarksRemovedScenarios(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSpec(t, "login.md", loginSpec)
	runSync(t)

	writeSpec(t, "login.md", "```gherkin\nScenario: User logs in\n  When they log in\n```\n")
	out := runSync(t)

	assert.Contains(t, out, "(0 scenarios added, 1 removed)")
	assert.Equal(t, 1, countRows(t, `SELECT COUNT(*) FROM scenarios WHERE removed = 1`))
}

func TestSync_DeletedFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSpec(t, "login.md", loginSpec)
	runSync(t)

	require.NoError(t, os.Remove("specs/login.md"))
	out := runSync(t)

	assert.Contains(t, out, "gon  specs/login.md")
	assert.Contains(t, out, "(0 scenarios added, 2 removed)")

	out = runSync(t)
	assert.NotContains(t, out, "gon")
}

func TestSync_InvalidFrontMatter(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSpec(t, "bad.md", "---\ntitle: [oops\n---\n")

	err := RunSync(&bytes.Buffer{}, testConfig())

	assert.ErrorContains(t, err, "specs/bad.md")
}

func TestSync_CustomFenceTag(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSpec(t, "cart.md", "```feature\nScenario: Add item\n  Given a cart\n```\n")

	c := testConfig()
	c.FenceTag = "feature"
	var buf bytes.Buffer
	require.NoError(t, RunSync(&buf, c))

	assert.Equal(t, 1, countRows(t, `SELECT COUNT(*) FROM scenarios WHERE name = 'Add item'`))
}

func TestSync_LinksTests(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSpec(t, "login.md", loginSpec)
	runSync(t)

	require.NoError(t, os.MkdirAll("pkg", 0o755))
	require.NoError(t, os.WriteFile("pkg/login_test.go", []byte("package pkg\n// @spec:2\nfunc TestLogin(t *testing.T) {}\n"), 0o644))
	require.NoError(t, os.MkdirAll(".hidden", 0o755))
	require.NoError(t, os.WriteFile(".hidden/x_test.go", []byte("// @spec:1\n"), 0o644))
	runSync(t)

	assert.Equal(t, 1, countRows(t, `SELECT COUNT(*) FROM test_links`))
	assert.Equal(t, 1, countRows(t, `SELECT COUNT(*) FROM test_links WHERE scenario_id = 2 AND file_path = 'pkg/login_test.go' AND line_number = 2`))
}

func TestSync_SkipsDocumentWithBadFrontMatter(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSpec(t, "old.md", "```gherkin\nScenario: Old\n```\n")
	runSync(t)
	require.NoError(t, os.Remove("specs/old.md"))
	writeSpec(t, "bad.md", "---\ntags: foo\n---\n\n```gherkin\nScenario: Bad\n```\n")
	writeSpec(t, "login.md", loginSpec)
	captureLog(t)

	var buf bytes.Buffer
	err := RunSync(&buf, testConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "specs/bad.md")
	out := buf.String()
	assert.Contains(t, out, "new  specs/login.md")
	assert.Contains(t, out, "gon  specs/old.md")
	assert.Contains(t, out, "synced 1 files (2 scenarios added, 1 removed)")
	assert.Equal(t, 0, countRows(t, `SELECT COUNT(*) FROM files WHERE file_path = ?`, "specs/bad.md"))
	assert.Equal(t, 2, countRows(t, `SELECT COUNT(*) FROM scenarios WHERE removed = 0`))
}
