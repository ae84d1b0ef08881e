package sculpt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sculpt/value"
)

func TestSelectorRecordsSteps(t *testing.T) {
	sel := Edit(value.NewRecord()).
		Field("user").
		OptField("profile").
		At(3).
		Key(value.String("k"))

	steps := sel.Path()
	require.Len(t, steps, 4)
	assert.Equal(t, Field("user"), steps[0])
	assert.Equal(t, OptField("profile"), steps[1])
	assert.Equal(t, Index(3), steps[2])
	assert.Equal(t, MapKey(value.String("k")), steps[3])
}

func TestSelectorPrefixReuse(t *testing.T) {
	root := value.RecordOf(value.P("user", value.RecordOf(
		value.P("name", value.String("ada")),
		value.P("email", value.String("ada@x")),
	)))

	user := Edit(root).Field("user")
	byName := user.Field("name")
	byEmail := user.Field("email")

	// Extending a shared prefix never leaks steps across selectors.
	require.Len(t, user.Path(), 1)
	assert.Equal(t, []Step{Field("user"), Field("name")}, byName.Path())
	assert.Equal(t, []Step{Field("user"), Field("email")}, byEmail.Path())

	out1, err := byName.Set(context.Background(), value.String("grace"))
	require.NoError(t, err)
	out2, err := byEmail.Set(context.Background(), value.String("grace@x"))
	require.NoError(t, err)

	// Each terminal replays against the same original root.
	u1, _ := out1.(*value.Record).Get("user")
	e1, _ := u1.(*value.Record).Get("email")
	assert.Equal(t, value.String("ada@x"), e1)

	u2, _ := out2.(*value.Record).Get("user")
	n2, _ := u2.(*value.Record).Get("name")
	assert.Equal(t, value.String("ada"), n2)
}

func TestSelectorStepsFeedsParsedPaths(t *testing.T) {
	root := value.RecordOf(value.P("tags", value.NewList(value.String("a"))))

	out, err := Edit(root).Steps(Field("tags"), Index(0)).Set(context.Background(), value.String("b"))
	require.NoError(t, err)

	tags, _ := out.(*value.Record).Get("tags")
	v, _ := tags.(*value.List).At(0)
	assert.Equal(t, value.String("b"), v)
}

func TestSelectorMapKeyAccess(t *testing.T) {
	root := value.RecordOf(value.P("sessions", value.MapOf(
		value.E(value.String("us"), value.Int(1)),
	)))

	out, err := Edit(root).Field("sessions").Key(value.String("eu")).Set(context.Background(), value.Int(2))
	require.NoError(t, err)

	sessions, _ := out.(*value.Record).Get("sessions")
	eu, ok := sessions.(*value.Map).Get(value.String("eu"))
	require.True(t, ok)
	assert.Equal(t, value.Int(2), eu)
	assert.Equal(t, 2, sessions.(*value.Map).Len())
}

func TestSelectorFieldOnMapRejected(t *testing.T) {
	root := value.RecordOf(value.P("sessions", value.NewMap()))

	_, err := Edit(root).Field("sessions").Field("us").Set(context.Background(), value.Int(1))
	require.True(t, IsCollectionAccessError(err))
	assert.Contains(t, err.Error(), "Key")
}

func TestSelectorSetMemberDeleteOnly(t *testing.T) {
	root := value.RecordOf(value.P("labels", value.NewSet(value.String("a"), value.String("b"))))

	out, err := Edit(root).Field("labels").Key(value.String("a")).Delete(context.Background())
	require.NoError(t, err)
	labels, _ := out.(*value.Record).Get("labels")
	assert.Equal(t, 1, labels.(*value.Set).Len())

	_, err = Edit(root).Field("labels").Key(value.String("a")).Set(context.Background(), value.String("c"))
	require.True(t, IsUnsupportedOperationError(err))
}

func TestEditAccessorReadsAndWrites(t *testing.T) {
	v := NewVar(value.RecordOf(value.P("n", value.Int(1))))

	out, err := EditAccessor(v).Field("n").Set(context.Background(), value.Int(2))
	require.NoError(t, err)

	n, _ := v.Value().(*value.Record).Get("n")
	assert.Equal(t, value.Int(2), n)
	assert.True(t, value.Equal(out, v.Value()))
}

func TestEditAccessorAbsentStateSkips(t *testing.T) {
	var v Var // zero Var holds nothing

	_, err := EditAccessor(&v).Field("n").Set(context.Background(), value.Int(1))
	require.ErrorIs(t, err, ErrNotReachable)
	assert.Nil(t, v.Value(), "skipped edit must not write")
}

func TestEditAccessorFailedEditDoesNotWrite(t *testing.T) {
	v := NewVar(value.RecordOf(value.P("n", value.Int(1))))
	before := v.Value()

	_, err := EditAccessor(v).Field("n").Field("deep").Set(context.Background(), value.Int(2))
	require.Error(t, err)
	assert.Same(t, before.(*value.Record), v.Value().(*value.Record), "failed edit wrote back")
}
