package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.cue")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunCommandAppliesScriptAsBatch(t *testing.T) {
	doc := writeDoc(t, `{"cart":{"items":["x"]},"count":1}`)
	script := writeScript(t, `
edits: [
	{path: "cart.items", op: "append", values: ["y"]},
	{path: "count", op: "set", value: 2},
]
`)

	out, err := runCommand(t, "--format", "json", "run", script, doc)
	require.NoError(t, err)
	assert.Equal(t, `{"cart":{"items":["x","y"]},"count":2}`+"\n", out)
}

func TestRunCommandAbandonsOnFailedEdit(t *testing.T) {
	doc := writeDoc(t, `{"a":1}`)
	before, err := os.ReadFile(doc)
	require.NoError(t, err)

	script := writeScript(t, `
edits: [
	{path: "a", op: "set", value: 2},
	{path: "missing.deep", op: "set", value: 3},
]
`)

	_, err = runCommand(t, "run", script, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "edit 1")

	after, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, before, after, "abandoned batch must not rewrite the file")
}

func TestLoadScriptRejectsUnknownOp(t *testing.T) {
	script := writeScript(t, `
edits: [
	{path: "a", op: "rename", value: 1},
]
`)

	_, err := loadScript(script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating")
}

func TestLoadScriptRejectsMissingPath(t *testing.T) {
	script := writeScript(t, `
edits: [
	{op: "delete"},
]
`)

	_, err := loadScript(script)
	require.Error(t, err)
}

func TestLoadScriptRejectsEmptyScript(t *testing.T) {
	script := writeScript(t, `edits: []`)

	_, err := loadScript(script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no edits")
}

func TestLoadScriptDecodesEdits(t *testing.T) {
	script := writeScript(t, `
edits: [
	{path: "user.name", op: "set", value: "grace"},
	{path: "tags[0]", op: "delete"},
]
`)

	got, err := loadScript(script)
	require.NoError(t, err)
	require.Len(t, got.Edits, 2)
	assert.Equal(t, "set", got.Edits[0].Op)
	assert.Equal(t, "grace", got.Edits[0].Value)
	assert.Equal(t, "tags[0]", got.Edits[1].Path)
}
