package cli

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/cobra"

	"github.com/roach88/sculpt"
	"github.com/roach88/sculpt/value"
)

//go:embed script.cue
var scriptSchema string

// editSpec is one edit in a script, decoded from CUE.
type editSpec struct {
	Path   string `json:"path"`
	Op     string `json:"op"`
	Value  any    `json:"value,omitempty"`
	Values []any  `json:"values,omitempty"`
}

// editScript is a validated edit script.
type editScript struct {
	Edits []editSpec `json:"edits"`
}

// NewRunCommand creates `sculpt run <script.cue> <target>`. The script
// is validated against the embedded schema and applied as one batch:
// either every edit commits, or none do.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script.cue> <target>",
		Short: "Apply a CUE edit script as one batch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := loadScript(args[0])
			if err != nil {
				return err
			}

			acc, cleanup, err := openTarget(opts, args[1])
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			out, err := sculpt.RunBatchAccessor(ctx, acc, func(d *sculpt.Draft) error {
				for i, e := range script.Edits {
					if err := applyScriptEdit(ctx, d, e); err != nil {
						return fmt.Errorf("edit %d (%s %s): %w", i, e.Op, e.Path, err)
					}
				}
				return nil
			})
			if errors.Is(err, sculpt.ErrNotReachable) {
				fmt.Fprintln(cmd.OutOrStdout(), "not reachable: no edit applied")
				return nil
			}
			if err != nil {
				return err
			}

			if opts.Verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "applied %d edits\n", len(script.Edits))
			}
			return printResult(cmd.OutOrStdout(), opts.Format, out)
		},
	}
}

// loadScript reads, validates, and decodes a CUE edit script.
func loadScript(path string) (*editScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cctx := cuecontext.New()
	schema := cctx.CompileString(scriptSchema, cue.Filename("script.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("internal schema error: %w", schema.Err())
	}

	doc := cctx.CompileBytes(data, cue.Filename(path))
	if doc.Err() != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, doc.Err())
	}

	unified := doc.Unify(schema)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}

	var script editScript
	if err := unified.Decode(&script); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(script.Edits) == 0 {
		return nil, fmt.Errorf("%s: script has no edits", path)
	}
	return &script, nil
}

// applyScriptEdit runs one script edit against the batch draft.
func applyScriptEdit(ctx context.Context, d *sculpt.Draft, e editSpec) error {
	steps, err := ParsePath(e.Path)
	if err != nil {
		return err
	}
	sel := d.Select().Steps(steps...)

	switch e.Op {
	case "set":
		v, err := value.FromAny(e.Value)
		if err != nil {
			return fmt.Errorf("bad value: %w", err)
		}
		_, err = sel.Set(ctx, v)
		return err
	case "delete":
		_, err := sel.Delete(ctx)
		return err
	case "append":
		vals := make([]value.Value, 0, len(e.Values))
		for _, raw := range e.Values {
			v, err := value.FromAny(raw)
			if err != nil {
				return fmt.Errorf("bad value: %w", err)
			}
			vals = append(vals, v)
		}
		_, err := sel.Append(ctx, vals...)
		return err
	default:
		return fmt.Errorf("unknown op %q", e.Op)
	}
}
