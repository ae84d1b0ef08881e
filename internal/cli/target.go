package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/roach88/sculpt"
	"github.com/roach88/sculpt/internal/store"
	"github.com/roach88/sculpt/value"
)

// fileAccessor exposes a JSON document file as a sculpt.Accessor.
// A missing file reads as absent; the engine skips the edit.
type fileAccessor struct {
	path string
}

func (f *fileAccessor) Get(ctx context.Context) (value.Value, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v, err := value.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return v, nil
}

func (f *fileAccessor) Set(ctx context.Context, v value.Value) error {
	data, err := value.MarshalCanonical(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}
	return os.WriteFile(f.path, append(data, '\n'), 0o644)
}

// openTarget resolves the positional target argument: a file path by
// default, or a document name in the --db store. The returned cleanup
// is always safe to call.
func openTarget(opts *RootOptions, target string) (sculpt.Accessor, func() error, error) {
	if opts.DBPath == "" {
		return &fileAccessor{path: target}, func() error { return nil }, nil
	}
	st, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return st.Document(target), st.Close, nil
}
