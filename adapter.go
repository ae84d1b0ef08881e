package sculpt

import (
	"context"
	"sync"

	"github.com/roach88/sculpt/value"
)

// Accessor is the state container protocol: anything holding a Value
// can be targeted by the entry points by exposing Get and Set. Both
// take a context because either side may block (a store, a remote
// holder); in-memory accessors just ignore it.
//
// Implementing this interface is the marker: there is no separate tag.
//
// Error contract: errors from Get and Set propagate to the caller
// unwrapped. When Get yields no current value the edit is skipped with
// ErrNotReachable and Set is never called. A failed Set leaves the
// underlying state wherever Set left it; rollback is the batch
// mechanism's job.
type Accessor interface {
	Get(ctx context.Context) (value.Value, error)
	Set(ctx context.Context, v value.Value) error
}

// Var is an in-memory Accessor around a single value. The zero Var
// holds nothing and reads as absent.
type Var struct {
	mu sync.Mutex
	v  value.Value
}

// NewVar creates a Var holding v.
func NewVar(v value.Value) *Var {
	return &Var{v: v}
}

// Get returns the held value.
func (x *Var) Get(ctx context.Context) (value.Value, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.v, nil
}

// Set stores v.
func (x *Var) Set(ctx context.Context, v value.Value) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.v = v
	return nil
}

// Value returns the current held value without the Accessor ceremony.
func (x *Var) Value() value.Value {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.v
}
