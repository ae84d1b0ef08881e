package value

import "fmt"

// FrozenMutationError is the panic payload raised when a mutating
// method is called on a frozen container. Dev mode freezes every
// commit result so accidental in-place writes surface immediately.
type FrozenMutationError struct {
	Kind Kind
	Op   string
}

func (e *FrozenMutationError) Error() string {
	return fmt.Sprintf("FROZEN_MUTATION: %s on frozen %s", e.Op, e.Kind)
}

// Freeze recursively locks v against further writes: the container
// itself, every child, and for Map and Set every entry key and value.
// Scalars are left as-is. Returns v for chaining. Frozen values can
// still be edited through the engine: clone-frontier copies are always
// fresh mutable containers.
func Freeze(v Value) Value {
	switch val := v.(type) {
	case *Record:
		val.frozen = true
		for _, fv := range val.fields {
			Freeze(fv)
		}
	case *List:
		val.frozen = true
		for _, ev := range val.elems {
			Freeze(ev)
		}
	case *Map:
		val.frozen = true
		for _, e := range val.entries {
			Freeze(e.key)
			Freeze(e.val)
		}
	case *Set:
		val.frozen = true
		for _, m := range val.members {
			Freeze(m)
		}
	}
	return v
}

// Frozen reports whether v is a frozen container. Scalars are never
// frozen; they are immutable by construction.
func Frozen(v Value) bool {
	switch val := v.(type) {
	case *Record:
		return val.frozen
	case *List:
		return val.frozen
	case *Map:
		return val.frozen
	case *Set:
		return val.frozen
	}
	return false
}
