package value

// Clone produces a value-identical, reference-distinct deep copy of v.
// Bytes get a fresh backing array; Time is a value type and copies as
// one. Opaque references are reused unchanged: the tree does not own
// them. Clones are always mutable, even when v was frozen.
func Clone(v Value) Value {
	switch val := v.(type) {
	case nil:
		return nil
	case Null, Bool, Int, Float, String, Time, Opaque:
		return val
	case Bytes:
		out := make(Bytes, len(val))
		copy(out, val)
		return out
	case *Record:
		out := &Record{fields: make(map[string]Value, len(val.fields))}
		for k, fv := range val.fields {
			out.fields[k] = Clone(fv)
		}
		return out
	case *List:
		out := &List{elems: make([]Value, len(val.elems))}
		for i, ev := range val.elems {
			out.elems[i] = Clone(ev)
		}
		return out
	case *Map:
		out := &Map{entries: make(map[string]mapEntry, len(val.entries))}
		for ks, e := range val.entries {
			out.entries[ks] = mapEntry{key: Clone(e.key), val: Clone(e.val)}
		}
		return out
	case *Set:
		out := &Set{members: make(map[string]Value, len(val.members))}
		for ks, m := range val.members {
			out.members[ks] = Clone(m)
		}
		return out
	default:
		panic("value: unknown Value type in Clone")
	}
}

// ShallowCopy copies one container level: the result is a fresh,
// mutable container whose children are shared by reference with v.
// This is the clone-frontier primitive: everything below the copied
// level stays reference-identical to the original. Scalars (and Bytes,
// whose backing array is the value) come back as deep copies.
func ShallowCopy(v Value) Value {
	switch val := v.(type) {
	case *Record:
		out := &Record{fields: make(map[string]Value, len(val.fields))}
		for k, fv := range val.fields {
			out.fields[k] = fv
		}
		return out
	case *List:
		out := &List{elems: make([]Value, len(val.elems))}
		copy(out.elems, val.elems)
		return out
	case *Map:
		out := &Map{entries: make(map[string]mapEntry, len(val.entries))}
		for ks, e := range val.entries {
			out.entries[ks] = e
		}
		return out
	case *Set:
		out := &Set{members: make(map[string]Value, len(val.members))}
		for ks, m := range val.members {
			out.members[ks] = m
		}
		return out
	default:
		return Clone(v)
	}
}
