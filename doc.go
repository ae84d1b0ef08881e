// Package sculpt produces structurally-shared copies of immutable
// value trees from recorded path edits.
//
// A caller describes a deep mutation as a fluent path over a root,
// then ends the path with one of four terminal operations:
//
//	next, err := sculpt.Edit(root).Field("user").Field("name").Set(ctx, value.String("grace"))
//
// The original root is never mutated. The result shares every subtree
// the path did not touch with the original: only the ancestor chain
// along the path is shallow-copied, so the cost of an edit is
// proportional to path depth, not tree size.
//
// Multiple edits coalesce into one clone pass with RunBatch; the batch
// commits exactly once when it closes, and an error inside it abandons
// the whole batch with nothing committed. State held outside a bare
// value is edited through the Accessor protocol. Dev mode (per
// Session, off by default) recursively freezes every commit result so
// accidental in-place writes panic instead of corrupting shared state.
package sculpt
