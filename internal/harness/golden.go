package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sculpt/value"
)

// RunWithGolden executes a scenario and compares the final document's
// canonical JSON against a golden file at testdata/{scenario.Name}.golden.
//
// Scenarios with want_error assert the error classification instead of
// comparing output.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, sc *Scenario) {
	t.Helper()

	out, err := Run(sc)
	if sc.WantError != "" {
		require.Error(t, err, "scenario %s: expected %s", sc.Name, sc.WantError)
		require.Equal(t, sc.WantError, ErrorCode(err), "scenario %s: error was %v", sc.Name, err)
		return
	}
	require.NoError(t, err, "scenario %s", sc.Name)

	data, err := value.MarshalCanonical(out)
	require.NoError(t, err, "scenario %s: canonical encoding", sc.Name)

	g := goldie.New(t)
	g.Assert(t, sc.Name, append(data, '\n'))
}
