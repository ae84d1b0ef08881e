package value

import "fmt"

// Kind classifies a Value into one of the shapes the engine dispatches on.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindTime
	KindOpaque
	KindRecord
	KindList
	KindMap
	KindSet
)

// String returns the lowercase shape name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindTime:
		return "time"
	case KindOpaque:
		return "opaque"
	case KindRecord:
		return "record"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindSet:
		return "set"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Container reports whether values of this kind hold child values.
func (k Kind) Container() bool {
	switch k {
	case KindRecord, KindList, KindMap, KindSet:
		return true
	}
	return false
}

// KindOf classifies v. A nil Value classifies as KindNull; path
// traversal treats absent and explicit null the same way when reading
// through them.
func KindOf(v Value) Kind {
	switch v.(type) {
	case nil, Null:
		return KindNull
	case Bool:
		return KindBool
	case Int:
		return KindInt
	case Float:
		return KindFloat
	case String:
		return KindString
	case Bytes:
		return KindBytes
	case Time:
		return KindTime
	case Opaque:
		return KindOpaque
	case *Record:
		return KindRecord
	case *List:
		return KindList
	case *Map:
		return KindMap
	case *Set:
		return KindSet
	default:
		panic(fmt.Sprintf("value: unknown Value type %T", v))
	}
}

// IsNull reports whether v is absent or an explicit Null.
func IsNull(v Value) bool {
	return KindOf(v) == KindNull
}
