package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/sculpt"
	"github.com/roach88/sculpt/value"
)

// ParsePath converts a path expression into steps. Grammar:
//
//	user.name        named fields, dot separated
//	tags[0]          sequence position
//	prefs{"theme"}   map key, any JSON literal between braces
//	user?.name       '?' suffix marks the segment optional
//
// Examples: `user.tags[0]`, `sessions{"us-east"}.count`, `user?.email`.
func ParsePath(expr string) ([]sculpt.Step, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("empty path")
	}

	var steps []sculpt.Step
	i := 0
	first := true
	for i < len(expr) {
		switch expr[i] {
		case '.':
			if first {
				return nil, fmt.Errorf("path %q: unexpected '.' at position %d", expr, i)
			}
			i++
			if i >= len(expr) {
				return nil, fmt.Errorf("path %q: trailing '.'", expr)
			}
			st, n, err := parseField(expr, i)
			if err != nil {
				return nil, err
			}
			steps = append(steps, st)
			i = n

		case '[':
			st, n, err := parseIndex(expr, i)
			if err != nil {
				return nil, err
			}
			steps = append(steps, st)
			i = n

		case '{':
			st, n, err := parseKey(expr, i)
			if err != nil {
				return nil, err
			}
			steps = append(steps, st)
			i = n

		default:
			if !first {
				return nil, fmt.Errorf("path %q: expected '.', '[' or '{' at position %d", expr, i)
			}
			st, n, err := parseField(expr, i)
			if err != nil {
				return nil, err
			}
			steps = append(steps, st)
			i = n
		}
		first = false
	}
	return steps, nil
}

func parseField(expr string, i int) (sculpt.Step, int, error) {
	start := i
	for i < len(expr) && expr[i] != '.' && expr[i] != '[' && expr[i] != '{' && expr[i] != '?' {
		i++
	}
	name := expr[start:i]
	if name == "" {
		return sculpt.Step{}, 0, fmt.Errorf("path %q: empty field name at position %d", expr, start)
	}
	if i < len(expr) && expr[i] == '?' {
		return sculpt.OptField(name), i + 1, nil
	}
	return sculpt.Field(name), i, nil
}

func parseIndex(expr string, i int) (sculpt.Step, int, error) {
	end := strings.IndexByte(expr[i:], ']')
	if end < 0 {
		return sculpt.Step{}, 0, fmt.Errorf("path %q: unterminated '[' at position %d", expr, i)
	}
	end += i
	idx, err := strconv.Atoi(expr[i+1 : end])
	if err != nil {
		return sculpt.Step{}, 0, fmt.Errorf("path %q: bad index %q: %w", expr, expr[i+1:end], err)
	}
	i = end + 1
	if i < len(expr) && expr[i] == '?' {
		return sculpt.OptIndex(idx), i + 1, nil
	}
	return sculpt.Index(idx), i, nil
}

// parseKey scans a brace-delimited JSON literal, honoring nested
// braces and string escapes, and decodes it as the map key.
func parseKey(expr string, i int) (sculpt.Step, int, error) {
	depth := 0
	inStr := false
	j := i
	for ; j < len(expr); j++ {
		c := expr[j]
		if inStr {
			if c == '\\' {
				j++
				continue
			}
			if c == '"' {
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				goto done
			}
		}
	}
	return sculpt.Step{}, 0, fmt.Errorf("path %q: unterminated '{' at position %d", expr, i)

done:
	literal := expr[i+1 : j]
	key, err := value.FromJSON([]byte(literal))
	if err != nil {
		return sculpt.Step{}, 0, fmt.Errorf("path %q: bad key literal %q: %w", expr, literal, err)
	}
	j++
	if j < len(expr) && expr[j] == '?' {
		return sculpt.OptMapKey(key), j + 1, nil
	}
	return sculpt.MapKey(key), j, nil
}
