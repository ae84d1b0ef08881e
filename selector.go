package sculpt

import (
	"context"

	"github.com/roach88/sculpt/value"
)

// Selector records an access path over a root without reading through
// it. Every navigation method returns a NEW selector with the step
// appended, so a partially built selector can be reused as a shared
// prefix: recording is reentrant and selectors never observe each
// other's steps.
//
// A terminal call (Set, Update, Delete, Append) ends recording and
// immediately replays the path against the root, producing a new root
// that shares all untouched substructure with the original.
type Selector struct {
	sess  *Session
	root  value.Value
	acc   Accessor
	frame *frame
	steps []Step
}

// Field appends a required named-field step.
func (sel *Selector) Field(name string) *Selector { return sel.with(Field(name)) }

// OptField appends an optional named-field step: an absent or null
// field short-circuits the edit with ErrNotReachable.
func (sel *Selector) OptField(name string) *Selector { return sel.with(OptField(name)) }

// At appends a required sequence-position step.
func (sel *Selector) At(i int) *Selector { return sel.with(Index(i)) }

// OptAt appends an optional sequence-position step.
func (sel *Selector) OptAt(i int) *Selector { return sel.with(OptIndex(i)) }

// Key appends a required key-access step for Map entries and Set
// members.
func (sel *Selector) Key(key value.Value) *Selector { return sel.with(MapKey(key)) }

// OptKey appends an optional key-access step.
func (sel *Selector) OptKey(key value.Value) *Selector { return sel.with(OptMapKey(key)) }

// Step appends an already-constructed step. Parsed or programmatic
// paths use this to feed a selector.
func (sel *Selector) Step(st Step) *Selector { return sel.with(st) }

// Steps appends each step in order.
func (sel *Selector) Steps(steps ...Step) *Selector {
	out := sel
	for _, st := range steps {
		out = out.with(st)
	}
	return out
}

// Path returns a copy of the recorded steps.
func (sel *Selector) Path() []Step {
	out := make([]Step, len(sel.steps))
	copy(out, sel.steps)
	return out
}

func (sel *Selector) with(st Step) *Selector {
	steps := make([]Step, len(sel.steps)+1)
	copy(steps, sel.steps)
	steps[len(sel.steps)] = st
	next := *sel
	next.steps = steps
	return &next
}

// Set replaces the value at the recorded path. The supplied value is
// deep-cloned into the result, except Opaque references which are
// reused. Replacing an absent record field or map entry creates it.
func (sel *Selector) Set(ctx context.Context, v value.Value) (value.Value, error) {
	return sel.commit(ctx, operation{kind: opReplace, val: v})
}

// Update substitutes the return value of fn for the current leaf
// value. fn must treat its argument as read-only; it may itself open
// nested edits on it. Update on an absent required leaf fails with a
// PathTypeError; an absent optional leaf short-circuits and fn is
// never invoked.
func (sel *Selector) Update(ctx context.Context, fn func(value.Value) (value.Value, error)) (value.Value, error) {
	return sel.commit(ctx, operation{kind: opTransform, fn: fn})
}

// Delete removes the entry at the recorded path. Deleting an absent
// entry is a no-op that still produces a fresh root.
func (sel *Selector) Delete(ctx context.Context) (value.Value, error) {
	return sel.commit(ctx, operation{kind: opDelete})
}

// Append inserts vals at the end of the List at the path, or into the
// Set at the path. Appending to any other shape fails with an
// UnsupportedOperationError.
func (sel *Selector) Append(ctx context.Context, vals ...value.Value) (value.Value, error) {
	return sel.commit(ctx, operation{kind: opAppend, extras: vals})
}

// commit resolves the current root (frame working copy, accessor state,
// or bare value), applies the operation, and routes the result: into
// the open frame, through the accessor, or straight back to the caller.
func (sel *Selector) commit(ctx context.Context, op operation) (value.Value, error) {
	sess := sel.sess
	if sess == nil {
		sess = DefaultSession()
	}

	if sel.frame != nil {
		return sel.frame.commit(op, sel.steps)
	}

	cur := sel.root
	if sel.acc != nil {
		got, err := sel.acc.Get(ctx)
		if err != nil {
			return nil, err
		}
		if value.IsNull(got) {
			// Absent accessor state: skip the write entirely.
			return nil, ErrNotReachable
		}
		cur = got
	}

	out, err := apply(cur, sel.steps, op)
	if err != nil {
		return nil, err
	}

	if sel.acc != nil {
		if err := sel.acc.Set(ctx, out); err != nil {
			return nil, err
		}
	}

	if sess.DevMode() {
		value.Freeze(out)
	}
	sess.logger.Debug("edit committed", "op", op.kind.String(), "depth", len(sel.steps))
	return out, nil
}
