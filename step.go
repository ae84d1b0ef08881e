package sculpt

import (
	"fmt"

	"github.com/roach88/sculpt/value"
)

// StepKind discriminates the three path segment forms.
type StepKind int

const (
	// StepField addresses a named field of a Record.
	StepField StepKind = iota

	// StepIndex addresses a position in a List.
	StepIndex

	// StepMapKey addresses a Map entry by key, or a Set member for
	// delete. This is the distinguished key-access form: Map and Set
	// entries are not exposed as record-like named properties.
	StepMapKey
)

func (k StepKind) String() string {
	switch k {
	case StepField:
		return "field"
	case StepIndex:
		return "index"
	case StepMapKey:
		return "mapKey"
	default:
		return fmt.Sprintf("stepKind(%d)", int(k))
	}
}

// Step is one segment of a recorded access path.
//
// Optional marks a segment whose absence short-circuits the edit with
// ErrNotReachable instead of a PathTypeError - the optional-chaining
// behavior for fields the caller's model allows to be missing.
type Step struct {
	Kind     StepKind
	Name     string      // StepField
	Index    int         // StepIndex
	Key      value.Value // StepMapKey
	Optional bool
}

// Field constructs a required named-field step.
func Field(name string) Step {
	return Step{Kind: StepField, Name: name}
}

// OptField constructs an optional named-field step.
func OptField(name string) Step {
	return Step{Kind: StepField, Name: name, Optional: true}
}

// Index constructs a required sequence-position step.
func Index(i int) Step {
	return Step{Kind: StepIndex, Index: i}
}

// OptIndex constructs an optional sequence-position step.
func OptIndex(i int) Step {
	return Step{Kind: StepIndex, Index: i, Optional: true}
}

// MapKey constructs a required key-access step. This is the public
// constructor for addressing Map entries and Set members from outside
// a selector chain.
func MapKey(key value.Value) Step {
	return Step{Kind: StepMapKey, Key: key}
}

// OptMapKey constructs an optional key-access step.
func OptMapKey(key value.Value) Step {
	return Step{Kind: StepMapKey, Key: key, Optional: true}
}

// describe renders the step for error messages: the bare field name,
// "[3]" for indexes, "{<canonical key>}" for key access.
func (s Step) describe() string {
	switch s.Kind {
	case StepField:
		return s.Name
	case StepIndex:
		return fmt.Sprintf("[%d]", s.Index)
	case StepMapKey:
		ks, err := value.KeyString(s.Key)
		if err != nil {
			return fmt.Sprintf("{%s}", value.KindOf(s.Key))
		}
		return fmt.Sprintf("{%s}", ks)
	default:
		return s.Kind.String()
	}
}
