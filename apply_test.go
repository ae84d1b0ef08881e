package sculpt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sculpt/value"
)

func userRoot() *value.Record {
	return value.RecordOf(
		value.P("user", value.RecordOf(
			value.P("name", value.String("ada")),
			value.P("tags", value.NewList(value.String("x"))),
		)),
		value.P("settings", value.RecordOf(
			value.P("theme", value.String("dark")),
		)),
	)
}

func TestSetDoesNotMutateOriginal(t *testing.T) {
	root := userRoot()
	snapshot := value.Clone(root)

	out, err := Edit(root).Field("user").Field("name").Set(context.Background(), value.String("grace"))
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, value.Equal(snapshot, root), "original mutated by edit")
}

func TestOriginalUnchangedOnFailureToo(t *testing.T) {
	root := userRoot()
	snapshot := value.Clone(root)

	_, err := Edit(root).Field("missing").Field("deep").Set(context.Background(), value.Int(1))
	require.Error(t, err)
	assert.True(t, value.Equal(snapshot, root))
}

func TestStructuralSharingOfSiblings(t *testing.T) {
	root := userRoot()
	settings, _ := root.Get("settings")

	out, err := Edit(root).Field("user").Field("name").Set(context.Background(), value.String("grace"))
	require.NoError(t, err)

	newRoot := out.(*value.Record)
	assert.NotSame(t, root, newRoot)

	gotSettings, _ := newRoot.Get("settings")
	assert.Same(t, settings.(*value.Record), gotSettings.(*value.Record), "untouched sibling was copied")

	gotUser, _ := newRoot.Get("user")
	origUser, _ := root.Get("user")
	assert.NotSame(t, origUser.(*value.Record), gotUser.(*value.Record), "frontier ancestor was not copied")

	name, _ := gotUser.(*value.Record).Get("name")
	assert.Equal(t, value.String("grace"), name)
}

func TestOptionalChainShortCircuits(t *testing.T) {
	root := value.NewRecord() // no "user" at all
	called := false

	_, err := Edit(root).OptField("user").Field("name").Update(context.Background(),
		func(v value.Value) (value.Value, error) {
			called = true
			return v, nil
		})

	require.ErrorIs(t, err, ErrNotReachable)
	assert.False(t, called, "updater invoked on unreachable path")
}

func TestOptionalChainShortCircuitsOnNull(t *testing.T) {
	root := value.RecordOf(value.P("user", value.Null{}))

	_, err := Edit(root).OptField("user").Field("name").Set(context.Background(), value.String("x"))
	require.ErrorIs(t, err, ErrNotReachable)
}

func TestRequiredChainFailure(t *testing.T) {
	root := value.RecordOf(value.P("user", value.Null{}))

	_, err := Edit(root).Field("user").Field("name").Set(context.Background(), value.String("x"))
	require.Error(t, err)
	require.True(t, IsPathTypeError(err))
	assert.Contains(t, err.Error(), `"name"`)
	assert.Contains(t, err.Error(), "null")
}

func TestRequiredMissingFieldFailure(t *testing.T) {
	root := value.NewRecord()

	_, err := Edit(root).Field("user").Field("name").Set(context.Background(), value.String("x"))
	require.True(t, IsPathTypeError(err))
	assert.Contains(t, err.Error(), `"name"`)
}

func TestSetCreatesAbsentField(t *testing.T) {
	root := value.RecordOf(value.P("user", value.NewRecord()))

	out, err := Edit(root).Field("user").Field("email").Set(context.Background(), value.String("a@b"))
	require.NoError(t, err)

	user, _ := out.(*value.Record).Get("user")
	email, ok := user.(*value.Record).Get("email")
	require.True(t, ok)
	assert.Equal(t, value.String("a@b"), email)
}

func TestSetClonesSuppliedValue(t *testing.T) {
	supplied := value.RecordOf(value.P("n", value.Int(1)))
	root := value.NewRecord()

	out, err := Edit(root).Field("child").Set(context.Background(), supplied)
	require.NoError(t, err)

	// Mutating the caller's value never shows in the result.
	supplied.Set("n", value.Int(9))
	child, _ := out.(*value.Record).Get("child")
	n, _ := child.(*value.Record).Get("n")
	assert.Equal(t, value.Int(1), n)
}

func TestSetReusesOpaqueReference(t *testing.T) {
	handler := &struct{ hits int }{}
	root := value.NewRecord()

	out, err := Edit(root).Field("handler").Set(context.Background(), value.Opaque{Ref: handler})
	require.NoError(t, err)

	got, _ := out.(*value.Record).Get("handler")
	assert.Same(t, handler, got.(value.Opaque).Ref)
}

func TestUpdateTransformsLeaf(t *testing.T) {
	root := value.RecordOf(value.P("count", value.Int(41)))

	out, err := Edit(root).Field("count").Update(context.Background(),
		func(v value.Value) (value.Value, error) {
			return value.Int(int64(v.(value.Int)) + 1), nil
		})
	require.NoError(t, err)

	count, _ := out.(*value.Record).Get("count")
	assert.Equal(t, value.Int(42), count)
}

func TestUpdateCanOpenNestedEdits(t *testing.T) {
	root := value.RecordOf(value.P("user", value.RecordOf(
		value.P("name", value.String("ada")),
		value.P("visits", value.Int(1)),
	)))

	out, err := Edit(root).Field("user").Update(context.Background(),
		func(v value.Value) (value.Value, error) {
			return Edit(v).Field("visits").Set(context.Background(), value.Int(2))
		})
	require.NoError(t, err)

	user, _ := out.(*value.Record).Get("user")
	visits, _ := user.(*value.Record).Get("visits")
	name, _ := user.(*value.Record).Get("name")
	assert.Equal(t, value.Int(2), visits)
	assert.Equal(t, value.String("ada"), name)
}

func TestUpdateErrorPropagates(t *testing.T) {
	root := value.RecordOf(value.P("a", value.Int(1)))
	wantErr := assert.AnError

	_, err := Edit(root).Field("a").Update(context.Background(),
		func(value.Value) (value.Value, error) { return nil, wantErr })
	require.ErrorIs(t, err, wantErr)
}

func TestDeleteRemovesEntry(t *testing.T) {
	root := userRoot()

	out, err := Edit(root).Field("user").Field("name").Delete(context.Background())
	require.NoError(t, err)

	user, _ := out.(*value.Record).Get("user")
	_, ok := user.(*value.Record).Get("name")
	assert.False(t, ok)

	// Original still has it.
	origUser, _ := root.Get("user")
	_, ok = origUser.(*value.Record).Get("name")
	assert.True(t, ok)
}

func TestDeleteAbsentEntryStillClones(t *testing.T) {
	root := value.RecordOf(value.P("a", value.Int(1)))

	out, err := Edit(root).Field("missing").Delete(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, root, out.(*value.Record))
	assert.True(t, value.Equal(root, out))
}

func TestDeleteListIndexShifts(t *testing.T) {
	root := value.RecordOf(value.P("tags", value.NewList(
		value.String("a"), value.String("b"), value.String("c"),
	)))

	out, err := Edit(root).Field("tags").At(1).Delete(context.Background())
	require.NoError(t, err)

	tags, _ := out.(*value.Record).Get("tags")
	require.Equal(t, 2, tags.(*value.List).Len())
	v, _ := tags.(*value.List).At(1)
	assert.Equal(t, value.String("c"), v)
}

func TestAppendToList(t *testing.T) {
	root := userRoot()

	out, err := Edit(root).Field("user").Field("tags").Append(context.Background(),
		value.String("y"), value.String("z"))
	require.NoError(t, err)

	user, _ := out.(*value.Record).Get("user")
	tags, _ := user.(*value.Record).Get("tags")
	assert.Equal(t, 3, tags.(*value.List).Len())

	// Original list untouched.
	origUser, _ := root.Get("user")
	origTags, _ := origUser.(*value.Record).Get("tags")
	assert.Equal(t, 1, origTags.(*value.List).Len())
}

func TestAppendToSet(t *testing.T) {
	root := value.RecordOf(value.P("labels", value.NewSet(value.String("a"))))

	out, err := Edit(root).Field("labels").Append(context.Background(), value.String("b"), value.String("a"))
	require.NoError(t, err)

	labels, _ := out.(*value.Record).Get("labels")
	assert.Equal(t, 2, labels.(*value.Set).Len())
}

func TestAppendToRecordFails(t *testing.T) {
	root := value.RecordOf(value.P("user", value.NewRecord()))

	_, err := Edit(root).Field("user").Append(context.Background(), value.Int(1))
	require.True(t, IsUnsupportedOperationError(err))
}

func TestListIndexTraversal(t *testing.T) {
	root := value.RecordOf(value.P("rows", value.NewList(
		value.RecordOf(value.P("id", value.Int(1))),
		value.RecordOf(value.P("id", value.Int(2))),
	)))

	out, err := Edit(root).Field("rows").At(1).Field("id").Set(context.Background(), value.Int(99))
	require.NoError(t, err)

	rows, _ := out.(*value.Record).Get("rows")
	row0, _ := rows.(*value.List).At(0)
	row1, _ := rows.(*value.List).At(1)

	origRows, _ := root.Get("rows")
	origRow0, _ := origRows.(*value.List).At(0)

	assert.Same(t, origRow0.(*value.Record), row0.(*value.Record), "untouched row was copied")
	id, _ := row1.(*value.Record).Get("id")
	assert.Equal(t, value.Int(99), id)
}

func TestSetAtOutOfRangeIsPathTypeError(t *testing.T) {
	root := value.RecordOf(value.P("tags", value.NewList(value.String("a"))))

	_, err := Edit(root).Field("tags").At(5).Set(context.Background(), value.String("x"))
	require.True(t, IsPathTypeError(err))
}

func TestOptionalIndexShortCircuits(t *testing.T) {
	root := value.RecordOf(value.P("tags", value.NewList(value.String("a"))))

	_, err := Edit(root).Field("tags").OptAt(5).Set(context.Background(), value.String("x"))
	require.ErrorIs(t, err, ErrNotReachable)
}

func TestFieldStepOnScalarIsPathTypeError(t *testing.T) {
	root := value.RecordOf(value.P("n", value.Int(1)))

	_, err := Edit(root).Field("n").Field("x").Set(context.Background(), value.Int(2))
	require.True(t, IsPathTypeError(err))
	assert.Contains(t, err.Error(), "int")
}
