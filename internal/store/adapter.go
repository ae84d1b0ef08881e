package store

import (
	"context"

	"github.com/roach88/sculpt/value"
)

// DocumentAccessor exposes one named document as a sculpt.Accessor, so
// path edits and batches can target persisted state. A missing
// document reads as absent, which the engine turns into a skip.
type DocumentAccessor struct {
	store *Store
	name  string
}

// Document returns an accessor for the document called name.
func (s *Store) Document(name string) *DocumentAccessor {
	return &DocumentAccessor{store: s, name: name}
}

// Get loads the current document value. Missing documents yield nil.
func (a *DocumentAccessor) Get(ctx context.Context) (value.Value, error) {
	v, _, err := a.store.Load(ctx, a.name)
	return v, err
}

// Set persists v as the document's new value.
func (a *DocumentAccessor) Set(ctx context.Context, v value.Value) error {
	return a.store.Save(ctx, a.name, v)
}
