package sculpt

import (
	"errors"
	"fmt"

	"github.com/roach88/sculpt/value"
)

// Error codes categorize traversal and operation failures.
const (
	// ErrCodePathType indicates traversal hit a required-but-absent or
	// wrong-shape intermediate value.
	ErrCodePathType = "PATH_TYPE"

	// ErrCodeCollectionAccess indicates a step form that does not match
	// the container shape it was applied to.
	ErrCodeCollectionAccess = "COLLECTION_ACCESS"

	// ErrCodeUnsupportedOp indicates an operation the leaf shape cannot
	// support (append on a record, positional replace on a set).
	ErrCodeUnsupportedOp = "UNSUPPORTED_OPERATION"
)

// ErrNotReachable is returned when an optional path segment reads as
// absent, and when a state accessor holds no current value. Like
// io.EOF, it marks defined behavior, not a failure: the edit simply
// did not apply and nothing was committed.
var ErrNotReachable = errors.New("sculpt: path not reachable")

// PathTypeError reports that traversal tried to read a path segment
// from a value whose run-time shape cannot be read that way: null,
// an absent required field, or a scalar where a container was needed.
type PathTypeError struct {
	// Segment is the display form of the offending step.
	Segment string

	// Found names the run-time shape actually encountered.
	Found string
}

func (e *PathTypeError) Error() string {
	return fmt.Sprintf("%s: cannot read property %q of %s", ErrCodePathType, e.Segment, e.Found)
}

// CollectionAccessError reports a named-field step used against a
// key-value or unique-value container (or the reverse). The message
// names the property and the accessor form to use instead.
type CollectionAccessError struct {
	// Property is the display form of the misused step.
	Property string

	// Kind is the container shape that rejected the step.
	Kind value.Kind
}

func (e *CollectionAccessError) Error() string {
	switch e.Kind {
	case value.KindMap, value.KindSet:
		return fmt.Sprintf("%s: property %q is not addressable on a %s; use a key-access step (Key)",
			ErrCodeCollectionAccess, e.Property, e.Kind)
	default:
		return fmt.Sprintf("%s: key-access step %q is not addressable on a %s; use a named-field step (Field)",
			ErrCodeCollectionAccess, e.Property, e.Kind)
	}
}

// UnsupportedOperationError reports an operation the leaf shape cannot
// support.
type UnsupportedOperationError struct {
	Op     string
	Kind   value.Kind
	Reason string
}

func (e *UnsupportedOperationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s is not supported on %s: %s", ErrCodeUnsupportedOp, e.Op, e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s is not supported on %s", ErrCodeUnsupportedOp, e.Op, e.Kind)
}

// IsPathTypeError reports whether err is a *PathTypeError.
// Uses errors.As to handle wrapped errors.
func IsPathTypeError(err error) bool {
	var pe *PathTypeError
	return errors.As(err, &pe)
}

// IsCollectionAccessError reports whether err is a *CollectionAccessError.
func IsCollectionAccessError(err error) bool {
	var ce *CollectionAccessError
	return errors.As(err, &ce)
}

// IsUnsupportedOperationError reports whether err is an *UnsupportedOperationError.
func IsUnsupportedOperationError(err error) bool {
	var ue *UnsupportedOperationError
	return errors.As(err, &ue)
}
