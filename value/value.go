package value

import (
	"reflect"
	"time"
)

// Value is a sealed interface over every shape sculpt can hold and edit.
// Scalars: Null, Bool, Int, Float, String, Bytes, Time, Opaque.
// Containers: *Record, *List, *Map, *Set.
type Value interface {
	value() // Sealed - only these types implement it
}

// Null represents an explicit null value. It is distinct from an absent
// field: a Record may hold Null under a key that exists.
type Null struct{}

func (Null) value() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) value() {}

// Int represents an integer value. Always int64.
type Int int64

func (Int) value() {}

// Float represents a floating-point value. NaN and ±Inf are rejected at
// the JSON and canonical-encoding boundaries.
type Float float64

func (Float) value() {}

// String represents a string value.
type String string

func (String) value() {}

// Bytes represents a binary value. Deep cloning duplicates the backing
// array so the copy never aliases the original.
type Bytes []byte

func (Bytes) value() {}

// Time represents an instant. time.Time is a value type, so copies are
// already independent.
type Time time.Time

func (Time) value() {}

// Std returns the wrapped time.Time.
func (t Time) Std() time.Time { return time.Time(t) }

// Opaque wraps a foreign-owned reference: a function, a caller-defined
// struct, anything the tree does not own. Cloning reuses the reference
// unchanged; Opaque values cannot be serialized or used as Map keys.
type Opaque struct {
	Ref any
}

func (Opaque) value() {}

// sameRef reports whether two Opaque references are the same reference.
// Reference kinds compare by pointer identity; comparable non-reference
// values compare with ==.
func sameRef(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != rb.Kind() {
		return false
	}
	switch ra.Kind() {
	case reflect.Func, reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Slice, reflect.Chan:
		return ra.Pointer() == rb.Pointer()
	case reflect.Invalid:
		return true // both nil
	}
	if !ra.Comparable() || !rb.Comparable() {
		return false
	}
	return a == b
}
