package harness

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/sculpt/value"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunSequentialEdits(t *testing.T) {
	sc := &Scenario{
		Name: "sequential",
		Doc:  map[string]any{"a": 1, "b": []any{"x"}},
		Edits: []EditStep{
			{Path: "a", Op: "set", Value: 2},
			{Path: "b", Op: "append", Values: []any{"y"}},
		},
	}

	out, err := Run(sc)
	require.NoError(t, err)

	want := value.RecordOf(
		value.P("a", value.Int(2)),
		value.P("b", value.NewList(value.String("x"), value.String("y"))),
	)
	require.True(t, value.Equal(want, out), "got %v", out)
}

func TestRunBatchAbandonsOnError(t *testing.T) {
	sc := &Scenario{
		Name:  "abandoned",
		Doc:   map[string]any{"a": 1},
		Batch: true,
		Edits: []EditStep{
			{Path: "a", Op: "set", Value: 2},
			{Path: "missing.deep", Op: "set", Value: 3},
		},
	}

	_, err := Run(sc)
	require.Error(t, err)
	require.Equal(t, "PATH_TYPE", ErrorCode(err))
}

func TestErrorCodeClassification(t *testing.T) {
	require.Equal(t, "", ErrorCode(nil))
	require.Equal(t, "UNKNOWN", ErrorCode(os.ErrClosed))
}
