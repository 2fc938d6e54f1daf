package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/fspec/internal/db"
)

func TestScanTestLinks(t *testing.T) {
	inTempDir(t)
	files := map[string]string{
		"a/login_test.go":        "package a\n\n// @spec:4\nfunc TestA(t *testing.T) {} // @spec:5 and @spec:6\n",
		"a/login.go":             "package a\n// @spec:9\n",
		"a/raw_test.go":          "var s = \"@spec:7\"\n",
		"vendor/x/x_test.go":     "// @spec:8\n",
		"node_modules/y_test.go": "// @spec:8\n",
	}
	for path, content := range files {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	links, err := scanTestLinks(".", "*_test.go")
	require.NoError(t, err)

	assert.ElementsMatch(t, []db.TestLink{
		{ScenarioID: 4, FilePath: "a/login_test.go", LineNumber: 3},
		{ScenarioID: 5, FilePath: "a/login_test.go", LineNumber: 4},
		{ScenarioID: 6, FilePath: "a/login_test.go", LineNumber: 4},
	}, links)
}
