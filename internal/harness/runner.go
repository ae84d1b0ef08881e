package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/sculpt"
	"github.com/roach88/sculpt/internal/cli"
	"github.com/roach88/sculpt/value"
)

// Run executes a scenario and returns the final document value.
func Run(sc *Scenario) (value.Value, error) {
	root, err := value.FromAny(sc.Doc)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: bad doc: %w", sc.Name, err)
	}
	ctx := context.Background()

	if sc.Batch {
		return sculpt.RunBatch(ctx, root, func(d *sculpt.Draft) error {
			for i, e := range sc.Edits {
				if _, err := applyEdit(ctx, d.Select(), e); err != nil {
					return fmt.Errorf("edit %d: %w", i, err)
				}
			}
			return nil
		})
	}

	cur := root
	for i, e := range sc.Edits {
		out, err := applyEdit(ctx, sculpt.Edit(cur), e)
		if err != nil {
			return nil, fmt.Errorf("edit %d: %w", i, err)
		}
		cur = out
	}
	return cur, nil
}

// applyEdit parses the step's path and runs its terminal operation.
func applyEdit(ctx context.Context, sel *sculpt.Selector, e EditStep) (value.Value, error) {
	steps, err := cli.ParsePath(e.Path)
	if err != nil {
		return nil, err
	}
	sel = sel.Steps(steps...)

	switch e.Op {
	case "set":
		v, err := value.FromAny(e.Value)
		if err != nil {
			return nil, err
		}
		return sel.Set(ctx, v)
	case "delete":
		return sel.Delete(ctx)
	case "append":
		vals := make([]value.Value, 0, len(e.Values))
		for _, raw := range e.Values {
			v, err := value.FromAny(raw)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return sel.Append(ctx, vals...)
	default:
		return nil, fmt.Errorf("unknown op %q", e.Op)
	}
}

// ErrorCode classifies err for scenario want_error matching.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, sculpt.ErrNotReachable):
		return "NOT_REACHABLE"
	case sculpt.IsPathTypeError(err):
		return sculpt.ErrCodePathType
	case sculpt.IsCollectionAccessError(err):
		return sculpt.ErrCodeCollectionAccess
	case sculpt.IsUnsupportedOperationError(err):
		return sculpt.ErrCodeUnsupportedOp
	default:
		return "UNKNOWN"
	}
}
