package value

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Tag keys for shapes plain JSON cannot express. A record field named
// like one of these is escaped as {"$record": {...}} on encode.
const (
	tagMap    = "$map"
	tagSet    = "$set"
	tagTime   = "$time"
	tagBytes  = "$bytes"
	tagRecord = "$record"
)

// MarshalCanonical produces deterministic canonical JSON for v, in RFC
// 8785 discipline:
//  1. Record keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings NFC normalized
//  4. NaN and ±Inf are rejected
//
// Map, Set, Time and Bytes use tagged wrappers ({"$map": [[k,v],...]},
// {"$set": [...]}, {"$time": "..."}, {"$bytes": "..."}) so the encoding
// round-trips through FromJSON. Opaque values are not encodable.
func MarshalCanonical(v Value) ([]byte, error) {
	switch val := v.(type) {
	case nil, Null:
		return []byte("null"), nil
	case Bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case Int:
		return []byte(strconv.FormatInt(int64(val), 10)), nil
	case Float:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("non-finite float is not canonically encodable: %v", f)
		}
		return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
	case String:
		return marshalCanonicalString(string(val))
	case Bytes:
		return marshalTagged(tagBytes, func(buf *bytes.Buffer) error {
			s, err := marshalCanonicalString(base64.StdEncoding.EncodeToString(val))
			if err != nil {
				return err
			}
			buf.Write(s)
			return nil
		})
	case Time:
		return marshalTagged(tagTime, func(buf *bytes.Buffer) error {
			s, err := marshalCanonicalString(val.Std().UTC().Format(time.RFC3339Nano))
			if err != nil {
				return err
			}
			buf.Write(s)
			return nil
		})
	case Opaque:
		return nil, fmt.Errorf("opaque value is not canonically encodable")
	case *Record:
		return marshalCanonicalRecord(val)
	case *List:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, ev := range val.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			eb, err := MarshalCanonical(ev)
			if err != nil {
				return nil, fmt.Errorf("list[%d]: %w", i, err)
			}
			buf.Write(eb)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case *Map:
		return marshalTagged(tagMap, func(buf *bytes.Buffer) error {
			index := make([]string, 0, len(val.entries))
			for ks := range val.entries {
				index = append(index, ks)
			}
			slices.Sort(index)
			buf.WriteByte('[')
			for i, ks := range index {
				if i > 0 {
					buf.WriteByte(',')
				}
				e := val.entries[ks]
				vb, err := MarshalCanonical(e.val)
				if err != nil {
					return fmt.Errorf("map value for key %s: %w", ks, err)
				}
				buf.WriteByte('[')
				buf.WriteString(ks)
				buf.WriteByte(',')
				buf.Write(vb)
				buf.WriteByte(']')
			}
			buf.WriteByte(']')
			return nil
		})
	case *Set:
		return marshalTagged(tagSet, func(buf *bytes.Buffer) error {
			index := make([]string, 0, len(val.members))
			for ks := range val.members {
				index = append(index, ks)
			}
			slices.Sort(index)
			buf.WriteByte('[')
			for i, ks := range index {
				if i > 0 {
					buf.WriteByte(',')
				}
				buf.WriteString(ks)
			}
			buf.WriteByte(']')
			return nil
		})
	default:
		return nil, fmt.Errorf("unsupported Value type for canonical JSON: %T", v)
	}
}

// KeyString returns the canonical encoding of v for use as a Map key or
// Set member index. Values containing Opaque references have no stable
// encoding and return an error.
func KeyString(v Value) (string, error) {
	b, err := MarshalCanonical(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func marshalCanonicalRecord(r *Record) ([]byte, error) {
	var buf bytes.Buffer
	keys := r.Keys() // RFC 8785 ordering

	// A record whose own keys collide with the tag namespace is wrapped
	// so decode can tell it apart from a tagged shape.
	if recordNeedsEscape(keys) {
		inner, err := marshalCanonicalRecordBody(r, keys)
		if err != nil {
			return nil, err
		}
		var out bytes.Buffer
		out.WriteString(`{"` + tagRecord + `":`)
		out.Write(inner)
		out.WriteByte('}')
		return out.Bytes(), nil
	}

	body, err := marshalCanonicalRecordBody(r, keys)
	if err != nil {
		return nil, err
	}
	buf.Write(body)
	return buf.Bytes(), nil
}

func marshalCanonicalRecordBody(r *Record, keys []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := MarshalCanonical(r.fields[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func recordNeedsEscape(keys []string) bool {
	if len(keys) != 1 {
		return false
	}
	switch keys[0] {
	case tagMap, tagSet, tagTime, tagBytes, tagRecord:
		return true
	}
	return false
}

func marshalTagged(tag string, body func(*bytes.Buffer) error) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"` + tag + `":`)
	if err := body(&buf); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalCanonicalString produces a canonical JSON string with NFC
// normalization, no HTML escaping, and U+2028/U+2029 left literal per
// RFC 8785.
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // <, > and & must NOT be escaped
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}

	// Go's encoder escapes U+2028/U+2029 for JavaScript compatibility;
	// canonical JSON wants the literal characters. A preceding escaped
	// backslash (\\u2028) must stay untouched.
	result = unescapeU2028U2029(result)

	return result, nil
}

// unescapeU2028U2029 converts \u2028 and \u2029 escape sequences to
// literal characters, preserving sequences preceded by an odd run of
// backslashes (those encode literal backslash + "u2028" text).
func unescapeU2028U2029(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		if i+6 <= len(data) && data[i] == '\\' && data[i+1] == 'u' &&
			data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' &&
			(data[i+5] == '8' || data[i+5] == '9') {
			backslashes := 0
			for j := len(out) - 1; j >= 0 && out[j] == '\\'; j-- {
				backslashes++
			}
			if backslashes%2 == 0 {
				if data[i+5] == '8' {
					out = append(out, " "...)
				} else {
					out = append(out, " "...)
				}
				i += 6
				continue
			}
		}
		out = append(out, data[i])
		i++
	}
	return out
}
