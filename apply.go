package sculpt

import (
	"github.com/roach88/sculpt/value"
)

type opKind int

const (
	opReplace opKind = iota
	opTransform
	opDelete
	opAppend
)

func (k opKind) String() string {
	switch k {
	case opReplace:
		return "replace"
	case opTransform:
		return "transform"
	case opDelete:
		return "delete"
	case opAppend:
		return "append"
	default:
		return "op(?)"
	}
}

// operation is pure input to the apply walk. Exactly one of the payload
// fields is meaningful for a given kind.
type operation struct {
	kind   opKind
	val    value.Value                            // opReplace
	fn     func(value.Value) (value.Value, error) // opTransform
	extras []value.Value                          // opAppend
}

// hop is one level of the clone frontier: the container traversal read
// through, and the step used to read it.
type hop struct {
	container value.Value
	step      Step
}

// apply walks steps from root, shallow-copies the ancestor chain, and
// applies op at the leaf. Off-frontier subtrees are never visited or
// copied; the result shares them by reference with root. The source is
// never mutated.
func apply(root value.Value, steps []Step, op operation) (value.Value, error) {
	if len(steps) == 0 {
		return applyAtRoot(root, op)
	}

	hops := make([]hop, 0, len(steps))
	cur := root
	for i, st := range steps {
		if value.IsNull(cur) {
			return nil, &PathTypeError{Segment: st.describe(), Found: "null"}
		}
		if err := validateStep(cur, st, i == len(steps)-1, op.kind); err != nil {
			return nil, err
		}
		hops = append(hops, hop{container: cur, step: st})
		if i == len(steps)-1 {
			break
		}

		child, present := readStep(cur, st)
		if !present || value.IsNull(child) {
			if st.Optional {
				return nil, ErrNotReachable
			}
			// A required segment read as absent or null: the next
			// iteration reports the failure at the segment that could
			// not be read from it.
			if !present {
				cur = nil
				continue
			}
		}
		cur = child
	}

	leafParent := hops[len(hops)-1].container
	leafStep := hops[len(hops)-1].step
	leaf, present := readStep(leafParent, leafStep)

	newLeaf, remove, err := computeLeaf(leaf, present, leafStep, op)
	if err != nil {
		return nil, err
	}

	// Clone the frontier root-to-leaf and relink each copy's child
	// pointer to the next copy down.
	copies := make([]value.Value, len(hops))
	for i, h := range hops {
		copies[i] = value.ShallowCopy(h.container)
	}
	for i := 0; i < len(hops)-1; i++ {
		writeStep(copies[i], hops[i].step, copies[i+1], false)
	}
	writeStep(copies[len(copies)-1], leafStep, newLeaf, remove)

	return copies[0], nil
}

// applyAtRoot handles the empty-path case: the operation targets the
// root value itself.
func applyAtRoot(root value.Value, op operation) (value.Value, error) {
	switch op.kind {
	case opReplace:
		return value.Clone(op.val), nil
	case opTransform:
		return op.fn(root)
	case opDelete:
		return nil, &UnsupportedOperationError{Op: "delete", Kind: value.KindOf(root), Reason: "cannot delete the root value"}
	case opAppend:
		return appendInto(root, op.extras)
	}
	return nil, &UnsupportedOperationError{Op: op.kind.String(), Kind: value.KindOf(root)}
}

// validateStep checks that the step form matches the container shape it
// is about to read.
func validateStep(cur value.Value, st Step, last bool, op opKind) error {
	k := value.KindOf(cur)
	switch st.Kind {
	case StepField:
		switch k {
		case value.KindRecord:
			return nil
		case value.KindMap, value.KindSet:
			return &CollectionAccessError{Property: st.Name, Kind: k}
		default:
			return &PathTypeError{Segment: st.describe(), Found: k.String()}
		}
	case StepIndex:
		switch k {
		case value.KindList:
			return nil
		case value.KindMap, value.KindSet:
			return &CollectionAccessError{Property: st.describe(), Kind: k}
		default:
			return &PathTypeError{Segment: st.describe(), Found: k.String()}
		}
	case StepMapKey:
		if _, err := value.KeyString(st.Key); err != nil {
			return &UnsupportedOperationError{Op: "key access", Kind: k, Reason: err.Error()}
		}
		switch k {
		case value.KindMap:
			return nil
		case value.KindSet:
			// Set members can only be addressed for removal; there is
			// no stable position to traverse through or replace at.
			if last && op == opDelete {
				return nil
			}
			return &UnsupportedOperationError{Op: op.String(), Kind: value.KindSet, Reason: "set members have no addressable position"}
		case value.KindRecord, value.KindList:
			return &CollectionAccessError{Property: st.describe(), Kind: k}
		default:
			return &PathTypeError{Segment: st.describe(), Found: k.String()}
		}
	}
	return &PathTypeError{Segment: st.describe(), Found: k.String()}
}

// readStep reads the child st addresses from cur, reporting presence.
// Shape validity is checked by validateStep before this is called.
func readStep(cur value.Value, st Step) (value.Value, bool) {
	switch c := cur.(type) {
	case *value.Record:
		return c.Get(st.Name)
	case *value.List:
		return c.At(st.Index)
	case *value.Map:
		return c.Get(st.Key)
	case *value.Set:
		if c.Has(st.Key) {
			return st.Key, true
		}
		return nil, false
	}
	return nil, false
}

// computeLeaf resolves the operation against the current leaf value.
// It returns the replacement value (ignored when remove is true) and
// whether the entry is removed instead of written.
func computeLeaf(leaf value.Value, present bool, st Step, op operation) (value.Value, bool, error) {
	switch op.kind {
	case opReplace:
		// replace creates absent record fields and map entries; a list
		// position must exist.
		if st.Kind == StepIndex && !present {
			if st.Optional {
				return nil, false, ErrNotReachable
			}
			return nil, false, &PathTypeError{Segment: st.describe(), Found: "null"}
		}
		return value.Clone(op.val), false, nil

	case opTransform:
		if !present {
			if st.Optional {
				return nil, false, ErrNotReachable
			}
			return nil, false, &PathTypeError{Segment: st.describe(), Found: "null"}
		}
		out, err := op.fn(leaf)
		if err != nil {
			return nil, false, err
		}
		return out, false, nil

	case opDelete:
		// Deleting an absent entry is a no-op; the frontier still
		// clones, matching the always-fresh-root commit contract.
		return nil, true, nil

	case opAppend:
		if !present || value.IsNull(leaf) {
			if st.Optional {
				return nil, false, ErrNotReachable
			}
			return nil, false, &PathTypeError{Segment: st.describe(), Found: "null"}
		}
		out, err := appendInto(leaf, op.extras)
		if err != nil {
			return nil, false, err
		}
		return out, false, nil
	}
	return nil, false, &UnsupportedOperationError{Op: op.kind.String(), Kind: value.KindOf(leaf)}
}

// appendInto returns a copy of container with vals appended (List) or
// added (Set). Appended values are deep-cloned so the result never
// aliases caller-held structure.
func appendInto(container value.Value, vals []value.Value) (value.Value, error) {
	switch c := container.(type) {
	case *value.List:
		out := value.ShallowCopy(c).(*value.List)
		for _, v := range vals {
			out.Append(value.Clone(v))
		}
		return out, nil
	case *value.Set:
		out := value.ShallowCopy(c).(*value.Set)
		for _, v := range vals {
			if _, err := value.KeyString(v); err != nil {
				return nil, &UnsupportedOperationError{Op: "append", Kind: value.KindSet, Reason: err.Error()}
			}
			out.Add(value.Clone(v))
		}
		return out, nil
	default:
		return nil, &UnsupportedOperationError{Op: "append", Kind: value.KindOf(container)}
	}
}

// writeStep writes v (or removes the entry) at st on container, which
// is always a fresh frontier copy.
func writeStep(container value.Value, st Step, v value.Value, remove bool) {
	switch c := container.(type) {
	case *value.Record:
		if remove {
			c.Delete(st.Name)
			return
		}
		c.Set(st.Name, v)
	case *value.List:
		if remove {
			c.Remove(st.Index)
			return
		}
		c.SetAt(st.Index, v)
	case *value.Map:
		if remove {
			c.Delete(st.Key)
			return
		}
		c.Set(st.Key, v)
	case *value.Set:
		if remove {
			c.Remove(st.Key)
			return
		}
		// validateStep only admits StepMapKey on Set for delete.
		panic("sculpt: set write without remove")
	}
}
