package value

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// FromJSON decodes JSON into a Value tree. Objects become Records,
// arrays become Lists, integral numbers become Int and the rest Float.
// Tagged wrappers produced by MarshalCanonical ($map, $set, $time,
// $bytes, $record) decode back to their shapes, so FromJSON and
// MarshalCanonical round-trip everything except Opaque.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return FromAny(raw)
}

// ToJSON encodes v as canonical JSON. It is a convenience alias for
// MarshalCanonical.
func ToJSON(v Value) ([]byte, error) {
	return MarshalCanonical(v)
}

// FromAny converts a plain Go value (as produced by encoding/json or
// yaml decoding into any) to a Value. Supported inputs: nil, bool,
// string, integer and float types, json.Number, time.Time, []byte,
// []any, map[string]any, and Value itself (returned unchanged).
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) && math.Abs(val) < 1<<53 {
			return Int(int64(val)), nil
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("non-finite float is not a valid value: %v", val)
		}
		return Float(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("number out of range: %s", val)
		}
		return Float(f), nil
	case time.Time:
		return Time(val), nil
	case []byte:
		out := make(Bytes, len(val))
		copy(out, val)
		return out, nil
	case []any:
		l := &List{elems: make([]Value, len(val))}
		for i, ev := range val {
			cv, err := FromAny(ev)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			l.elems[i] = cv
		}
		return l, nil
	case map[string]any:
		if tagged, ok, err := fromTagged(val); ok || err != nil {
			return tagged, err
		}
		r := &Record{fields: make(map[string]Value, len(val))}
		for k, fv := range val {
			cv, err := FromAny(fv)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", k, err)
			}
			r.fields[k] = cv
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// fromTagged decodes the single-key tagged wrappers emitted by
// MarshalCanonical. Returns ok=false when m is an ordinary object.
func fromTagged(m map[string]any) (Value, bool, error) {
	if len(m) != 1 {
		return nil, false, nil
	}
	var tag string
	for k := range m {
		tag = k
	}
	if !strings.HasPrefix(tag, "$") {
		return nil, false, nil
	}

	switch tag {
	case tagRecord:
		inner, ok := m[tagRecord].(map[string]any)
		if !ok {
			return nil, false, fmt.Errorf("$record payload must be an object")
		}
		r := &Record{fields: make(map[string]Value, len(inner))}
		for k, fv := range inner {
			cv, err := FromAny(fv)
			if err != nil {
				return nil, false, fmt.Errorf("%q: %w", k, err)
			}
			r.fields[k] = cv
		}
		return r, true, nil

	case tagTime:
		s, ok := m[tagTime].(string)
		if !ok {
			return nil, false, fmt.Errorf("$time payload must be a string")
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, false, fmt.Errorf("$time: %w", err)
		}
		return Time(t), true, nil

	case tagBytes:
		s, ok := m[tagBytes].(string)
		if !ok {
			return nil, false, fmt.Errorf("$bytes payload must be a string")
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, false, fmt.Errorf("$bytes: %w", err)
		}
		return Bytes(b), true, nil

	case tagSet:
		items, ok := m[tagSet].([]any)
		if !ok {
			return nil, false, fmt.Errorf("$set payload must be an array")
		}
		s := NewSet()
		for i, it := range items {
			mv, err := FromAny(it)
			if err != nil {
				return nil, false, fmt.Errorf("$set[%d]: %w", i, err)
			}
			if _, err := KeyString(mv); err != nil {
				return nil, false, fmt.Errorf("$set[%d]: %w", i, err)
			}
			s.Add(mv)
		}
		return s, true, nil

	case tagMap:
		pairs, ok := m[tagMap].([]any)
		if !ok {
			return nil, false, fmt.Errorf("$map payload must be an array of [key, value] pairs")
		}
		out := NewMap()
		for i, p := range pairs {
			pair, ok := p.([]any)
			if !ok || len(pair) != 2 {
				return nil, false, fmt.Errorf("$map[%d]: expected a [key, value] pair", i)
			}
			kv, err := FromAny(pair[0])
			if err != nil {
				return nil, false, fmt.Errorf("$map[%d] key: %w", i, err)
			}
			vv, err := FromAny(pair[1])
			if err != nil {
				return nil, false, fmt.Errorf("$map[%d] value: %w", i, err)
			}
			if _, err := KeyString(kv); err != nil {
				return nil, false, fmt.Errorf("$map[%d] key: %w", i, err)
			}
			out.Set(kv, vv)
		}
		return out, true, nil
	}

	// Unknown $-prefixed single key: treat as a plain record.
	return nil, false, nil
}
