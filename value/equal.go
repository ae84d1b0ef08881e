package value

// Equal reports deep structural equality. Containers compare by
// contents, scalars by value, Opaque by reference identity. A nil
// Value and Null compare equal: both read as "nothing there".
func Equal(a, b Value) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}

	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bytes:
		bv, ok := b.(Bytes)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case Time:
		bv, ok := b.(Time)
		return ok && av.Std().Equal(bv.Std())
	case Opaque:
		bv, ok := b.(Opaque)
		return ok && sameRef(av.Ref, bv.Ref)
	case *Record:
		bv, ok := b.(*Record)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for k, fv := range av.fields {
			other, exists := bv.fields[k]
			if !exists || !Equal(fv, other) {
				return false
			}
		}
		return true
	case *List:
		bv, ok := b.(*List)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for i, ev := range av.elems {
			if !Equal(ev, bv.elems[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for ks, e := range av.entries {
			other, exists := bv.entries[ks]
			if !exists || !Equal(e.val, other.val) {
				return false
			}
		}
		return true
	case *Set:
		bv, ok := b.(*Set)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for ks := range av.members {
			if _, exists := bv.members[ks]; !exists {
				return false
			}
		}
		return true
	default:
		return false
	}
}
