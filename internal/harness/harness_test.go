package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScenariosGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no scenario files found")

	for _, file := range files {
		sc, err := LoadScenario(file)
		require.NoError(t, err, file)

		t.Run(sc.Name, func(t *testing.T) {
			RunWithGolden(t, sc)
		})
	}
}

func TestLoadScenarioRejectsUnknownOp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, `
name: bad
doc: {}
edits:
  - path: a
    op: rename
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown op")
}

func TestLoadScenarioRequiresName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anon.yaml")
	writeFile(t, path, `
doc: {}
edits:
  - path: a
    op: set
    value: 1
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no name")
}
