package value

import (
	"slices"
	"unicode/utf16"
)

// Record is a string-keyed container of named fields. It is the shape
// behind named-field path steps.
type Record struct {
	fields map[string]Value
	frozen bool
}

func (*Record) value() {}

// NewRecord creates an empty, mutable Record.
func NewRecord() *Record {
	return &Record{fields: make(map[string]Value)}
}

// Pair is a key-value pair for typed Record construction.
type Pair struct {
	Key string
	Val Value
}

// P is a shorthand Pair constructor.
// Example: RecordOf(P("name", String("cart")), P("count", Int(5)))
func P(key string, val Value) Pair {
	return Pair{Key: key, Val: val}
}

// RecordOf creates a Record from typed key-value pairs.
func RecordOf(pairs ...Pair) *Record {
	r := &Record{fields: make(map[string]Value, len(pairs))}
	for _, p := range pairs {
		r.fields[p.Key] = p.Val
	}
	return r
}

// Get returns the value for name and whether the field exists.
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Set stores v under name. Panics with *FrozenMutationError if the
// record has been frozen.
func (r *Record) Set(name string, v Value) {
	r.mustWrite("set")
	r.fields[name] = v
}

// Delete removes name. Deleting an absent field is a no-op.
func (r *Record) Delete(name string) {
	r.mustWrite("delete")
	delete(r.fields, name)
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.fields) }

// Keys returns field names in RFC 8785 canonical order (UTF-16 code
// units). Go's sort.Strings uses UTF-8 which produces a DIFFERENT order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

func (r *Record) mustWrite(op string) {
	if r.frozen {
		panic(&FrozenMutationError{Kind: KindRecord, Op: op})
	}
}

// List is an ordered sequence of values, the shape behind index steps
// and ordered appends.
type List struct {
	elems  []Value
	frozen bool
}

func (*List) value() {}

// NewList creates a List holding vals in order.
func NewList(vals ...Value) *List {
	l := &List{elems: make([]Value, len(vals))}
	copy(l.elems, vals)
	return l
}

// At returns the element at position i and whether i is in range.
func (l *List) At(i int) (Value, bool) {
	if i < 0 || i >= len(l.elems) {
		return nil, false
	}
	return l.elems[i], true
}

// SetAt replaces the element at position i. The position must be in
// range; path traversal validates bounds before writing.
func (l *List) SetAt(i int, v Value) {
	l.mustWrite("set")
	l.elems[i] = v
}

// Append adds vals at the end.
func (l *List) Append(vals ...Value) {
	l.mustWrite("append")
	l.elems = append(l.elems, vals...)
}

// Remove deletes the element at position i, shifting later elements
// down. Out-of-range positions are a no-op.
func (l *List) Remove(i int) {
	l.mustWrite("remove")
	if i < 0 || i >= len(l.elems) {
		return
	}
	l.elems = append(l.elems[:i], l.elems[i+1:]...)
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.elems) }

// Values returns a copy of the element slice. Elements are shared.
func (l *List) Values() []Value {
	out := make([]Value, len(l.elems))
	copy(out, l.elems)
	return out
}

func (l *List) mustWrite(op string) {
	if l.frozen {
		panic(&FrozenMutationError{Kind: KindList, Op: op})
	}
}

type mapEntry struct {
	key Value
	val Value
}

// Map is a key-value container whose keys are Values, not record field
// names. Entries are addressed with key-access steps only; internally
// keys are indexed by their canonical encoding.
type Map struct {
	entries map[string]mapEntry
	frozen  bool
}

func (*Map) value() {}

// NewMap creates an empty, mutable Map.
func NewMap() *Map {
	return &Map{entries: make(map[string]mapEntry)}
}

// Entry is a key-value pair for typed Map construction.
type Entry struct {
	Key Value
	Val Value
}

// E is a shorthand Entry constructor.
func E(key, val Value) Entry {
	return Entry{Key: key, Val: val}
}

// MapOf creates a Map from entries. Panics if a key is not canonically
// encodable (contains an Opaque).
func MapOf(entries ...Entry) *Map {
	m := &Map{entries: make(map[string]mapEntry, len(entries))}
	for _, e := range entries {
		m.Set(e.Key, e.Val)
	}
	return m
}

// Get returns the value stored under key and whether the entry exists.
// Unencodable keys match nothing.
func (m *Map) Get(key Value) (Value, bool) {
	ks, err := KeyString(key)
	if err != nil {
		return nil, false
	}
	e, ok := m.entries[ks]
	if !ok {
		return nil, false
	}
	return e.val, true
}

// Set stores val under key. Panics if key is not canonically encodable;
// callers going through the engine get a typed error before this point.
func (m *Map) Set(key, val Value) {
	m.mustWrite("set")
	ks, err := KeyString(key)
	if err != nil {
		panic(err)
	}
	m.entries[ks] = mapEntry{key: key, val: val}
}

// Delete removes the entry under key. Absent or unencodable keys are a
// no-op.
func (m *Map) Delete(key Value) {
	m.mustWrite("delete")
	ks, err := KeyString(key)
	if err != nil {
		return
	}
	delete(m.entries, ks)
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Keys returns entry keys ordered by their canonical encoding.
func (m *Map) Keys() []Value {
	index := make([]string, 0, len(m.entries))
	for ks := range m.entries {
		index = append(index, ks)
	}
	slices.Sort(index)
	keys := make([]Value, len(index))
	for i, ks := range index {
		keys[i] = m.entries[ks].key
	}
	return keys
}

func (m *Map) mustWrite(op string) {
	if m.frozen {
		panic(&FrozenMutationError{Kind: KindMap, Op: op})
	}
}

// Set is a unique-value container. Members have no stable position:
// the only legal operations are whole-container replace, member add,
// and member delete.
type Set struct {
	members map[string]Value
	frozen  bool
}

func (*Set) value() {}

// NewSet creates a Set holding vals, deduplicated by canonical encoding.
func NewSet(vals ...Value) *Set {
	s := &Set{members: make(map[string]Value, len(vals))}
	for _, v := range vals {
		s.Add(v)
	}
	return s
}

// Has reports whether member is present.
func (s *Set) Has(member Value) bool {
	ks, err := KeyString(member)
	if err != nil {
		return false
	}
	_, ok := s.members[ks]
	return ok
}

// Add inserts member. Adding an existing member is a no-op. Panics if
// member is not canonically encodable.
func (s *Set) Add(member Value) {
	s.mustWrite("add")
	ks, err := KeyString(member)
	if err != nil {
		panic(err)
	}
	s.members[ks] = member
}

// Remove deletes member. Absent or unencodable members are a no-op.
func (s *Set) Remove(member Value) {
	s.mustWrite("remove")
	ks, err := KeyString(member)
	if err != nil {
		return
	}
	delete(s.members, ks)
}

// Len returns the number of members.
func (s *Set) Len() int { return len(s.members) }

// Members returns members ordered by their canonical encoding.
func (s *Set) Members() []Value {
	index := make([]string, 0, len(s.members))
	for ks := range s.members {
		index = append(index, ks)
	}
	slices.Sort(index)
	out := make([]Value, len(index))
	for i, ks := range index {
		out[i] = s.members[ks]
	}
	return out
}

func (s *Set) mustWrite(op string) {
	if s.frozen {
		panic(&FrozenMutationError{Kind: KindSet, Op: op})
	}
}

// compareKeysRFC8785 compares strings using UTF-16 code unit ordering
// as required by RFC 8785 (Canonical JSON).
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := len(a16)
	if len(b16) < minLen {
		minLen = len(b16)
	}

	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	if len(a16) < len(b16) {
		return -1
	}
	if len(a16) > len(b16) {
		return 1
	}
	return 0
}
