package sculpt

import (
	"context"

	"github.com/roach88/sculpt/value"
)

// frame is the unit of deferred, coalesced commit. Every edit issued
// against an open frame clones from and writes back to the frame's
// working copy; the real commit happens exactly once, when the
// outermost frame closes. Frames are pooled and reset between uses.
//
// A frame chain is confined to one batch call chain. It is not safe to
// share a Draft across goroutines running concurrently; suspension
// points hand the frame along, they never fork it.
type frame struct {
	sess     *Session
	token    string
	parent   *frame // navigational only, never owning
	base     value.Value
	working  value.Value // nil until the first write (copy-on-first-write)
	ops      int
	children int
}

// current returns the value edits in this frame clone from.
func (f *frame) current() value.Value {
	if f.working != nil {
		return f.working
	}
	return f.base
}

// closeValue produces the frame's commit value. A frame that saw no
// writes still yields a top-level copy: closing a batch always returns
// a fresh root.
func (f *frame) closeValue() value.Value {
	if f.working != nil {
		return f.working
	}
	return value.ShallowCopy(f.base)
}

// commit applies one operation against the working copy. Failures
// leave the working copy untouched; the caller abandons the whole
// frame on error, so partial batch state is never observable.
func (f *frame) commit(op operation, steps []Step) (value.Value, error) {
	f.ops++
	defer func() { f.ops-- }()

	out, err := apply(f.current(), steps, op)
	if err != nil {
		return nil, err
	}
	f.working = out
	return out, nil
}

func (f *frame) reset() {
	*f = frame{}
}

// Draft is the recording-capable handle a batch callback edits
// through. All edits started from one Draft clone against the same
// working copy and commit together when the batch closes.
type Draft struct {
	frame *frame
}

// Select starts recording a path bound to this draft's frame.
func (d *Draft) Select() *Selector {
	return &Selector{sess: d.frame.sess, frame: d.frame}
}

// Root returns the draft's current working value. Before the first
// edit this is the original root; afterwards the evolving copy.
func (d *Draft) Root() value.Value {
	return d.frame.current()
}

// Batch opens a nested frame over this draft's current working copy.
// The nested frame's result folds back into this draft on success; on
// error the nested frame is discarded and this draft is unchanged.
func (d *Draft) Batch(fn func(*Draft) error) error {
	sess := d.frame.sess
	parent := d.frame

	child := sess.acquireFrame()
	child.parent = parent
	child.base = parent.current()
	parent.children++
	sess.logger.Debug("nested batch open", "frame", child.token, "parent", parent.token)

	err := fn(&Draft{frame: child})
	parent.children--
	if err != nil {
		sess.releaseFrame(child)
		return err
	}

	parent.working = child.closeValue()
	sess.logger.Debug("nested batch folded", "frame", child.token, "parent", parent.token)
	sess.releaseFrame(child)
	return nil
}

// RunBatch opens a frame over root, invokes fn with a draft bound to
// it, and closes the frame when fn returns. All edits issued through
// the draft commit as one clone pass; a batch that edits nothing still
// returns a fresh top-level copy. If fn returns an error the batch is
// abandoned: no result, no commit, root unchanged.
func (s *Session) RunBatch(ctx context.Context, root value.Value, fn func(*Draft) error) (value.Value, error) {
	f := s.acquireFrame()
	f.base = root
	s.logger.Debug("batch open", "frame", f.token)

	if err := fn(&Draft{frame: f}); err != nil {
		s.logger.Debug("batch abandoned", "frame", f.token, "error", err)
		s.releaseFrame(f)
		return nil, err
	}

	out := f.closeValue()
	token := f.token
	s.releaseFrame(f)

	if s.DevMode() {
		value.Freeze(out)
	}
	s.logger.Debug("batch committed", "frame", token)
	return out, nil
}

// RunBatchAccessor runs a batch against accessor-held state: the root
// is read once when the batch opens, and the final working copy is
// written back exactly once when it closes. An absent current value
// skips the batch with ErrNotReachable; fn is never invoked. If fn
// fails, Set is never called and the accessor state is untouched.
func (s *Session) RunBatchAccessor(ctx context.Context, acc Accessor, fn func(*Draft) error) (value.Value, error) {
	cur, err := acc.Get(ctx)
	if err != nil {
		return nil, err
	}
	if value.IsNull(cur) {
		return nil, ErrNotReachable
	}

	out, err := s.RunBatch(ctx, cur, fn)
	if err != nil {
		return nil, err
	}
	if err := acc.Set(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RunBatch runs a batch on the default session.
func RunBatch(ctx context.Context, root value.Value, fn func(*Draft) error) (value.Value, error) {
	return defaultSession.RunBatch(ctx, root, fn)
}

// RunBatchAccessor runs an accessor batch on the default session.
func RunBatchAccessor(ctx context.Context, acc Accessor, fn func(*Draft) error) (value.Value, error) {
	return defaultSession.RunBatchAccessor(ctx, acc, fn)
}
