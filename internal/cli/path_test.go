package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sculpt"
	"github.com/roach88/sculpt/value"
)

func TestParsePathFields(t *testing.T) {
	steps, err := ParsePath("user.profile.name")
	require.NoError(t, err)
	assert.Equal(t, []sculpt.Step{
		sculpt.Field("user"),
		sculpt.Field("profile"),
		sculpt.Field("name"),
	}, steps)
}

func TestParsePathIndex(t *testing.T) {
	steps, err := ParsePath("tags[0]")
	require.NoError(t, err)
	assert.Equal(t, []sculpt.Step{sculpt.Field("tags"), sculpt.Index(0)}, steps)
}

func TestParsePathMapKey(t *testing.T) {
	steps, err := ParsePath(`sessions{"us-east"}.count`)
	require.NoError(t, err)
	assert.Equal(t, []sculpt.Step{
		sculpt.Field("sessions"),
		sculpt.MapKey(value.String("us-east")),
		sculpt.Field("count"),
	}, steps)
}

func TestParsePathStructuredKey(t *testing.T) {
	// Any JSON literal works as a key, braces and all.
	steps, err := ParsePath(`index{{"region":"eu","zone":1}}`)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, sculpt.StepMapKey, steps[1].Kind)

	key := steps[1].Key.(*value.Record)
	region, _ := key.Get("region")
	assert.Equal(t, value.String("eu"), region)
}

func TestParsePathOptionalMarkers(t *testing.T) {
	steps, err := ParsePath(`user?.tags[0]?.meta{"k"}?`)
	require.NoError(t, err)
	require.Len(t, steps, 5)
	assert.True(t, steps[0].Optional)  // user?
	assert.False(t, steps[1].Optional) // tags
	assert.True(t, steps[2].Optional)  // [0]?
	assert.False(t, steps[3].Optional) // meta
	assert.True(t, steps[4].Optional)  // {"k"}?
}

func TestParsePathChainedAccessors(t *testing.T) {
	steps, err := ParsePath(`matrix[1][2]`)
	require.NoError(t, err)
	assert.Equal(t, []sculpt.Step{
		sculpt.Field("matrix"),
		sculpt.Index(1),
		sculpt.Index(2),
	}, steps)
}

func TestParsePathErrors(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"", "empty path"},
		{"  ", "empty path"},
		{".user", "unexpected '.'"},
		{"user.", "trailing '.'"},
		{"user..name", "empty field name"},
		{"tags[", "unterminated '['"},
		{"tags[x]", "bad index"},
		{`m{"k"`, "unterminated '{'"},
		{"m{nope}", "bad key literal"},
	}
	for _, tc := range cases {
		_, err := ParsePath(tc.expr)
		require.Error(t, err, "expr %q", tc.expr)
		assert.Contains(t, err.Error(), tc.want, "expr %q", tc.expr)
	}
}
