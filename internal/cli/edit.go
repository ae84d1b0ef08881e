package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sculpt"
	"github.com/roach88/sculpt/value"
)

// NewSetCommand creates `sculpt set <target> <path> <value>`.
func NewSetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <target> <path> <value>",
		Short: "Replace the value at a path",
		Long: "Replaces the value at the given path with a JSON literal, producing\n" +
			"a new document. Absent record fields and map entries are created.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := value.FromJSON([]byte(args[2]))
			if err != nil {
				return fmt.Errorf("bad value literal: %w", err)
			}
			return runEdit(cmd, opts, args[0], args[1], func(sel *sculpt.Selector) (value.Value, error) {
				return sel.Set(cmd.Context(), v)
			})
		},
	}
}

// NewDeleteCommand creates `sculpt delete <target> <path>`.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <target> <path>",
		Short: "Remove the entry at a path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, opts, args[0], args[1], func(sel *sculpt.Selector) (value.Value, error) {
				return sel.Delete(cmd.Context())
			})
		},
	}
}

// NewAppendCommand creates `sculpt append <target> <path> <value>...`.
func NewAppendCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "append <target> <path> <value>...",
		Short: "Append values to the list or set at a path",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals := make([]value.Value, 0, len(args)-2)
			for _, raw := range args[2:] {
				v, err := value.FromJSON([]byte(raw))
				if err != nil {
					return fmt.Errorf("bad value literal %q: %w", raw, err)
				}
				vals = append(vals, v)
			}
			return runEdit(cmd, opts, args[0], args[1], func(sel *sculpt.Selector) (value.Value, error) {
				return sel.Append(cmd.Context(), vals...)
			})
		},
	}
}

// runEdit wires one terminal operation: open the target, parse the
// path, apply, print. A not-reachable skip reports cleanly instead of
// failing the command.
func runEdit(cmd *cobra.Command, opts *RootOptions, target, path string,
	terminal func(*sculpt.Selector) (value.Value, error)) error {

	steps, err := ParsePath(path)
	if err != nil {
		return err
	}

	acc, cleanup, err := openTarget(opts, target)
	if err != nil {
		return err
	}
	defer cleanup()

	sel := sculpt.EditAccessor(acc).Steps(steps...)
	out, err := terminal(sel)
	if errors.Is(err, sculpt.ErrNotReachable) {
		fmt.Fprintln(cmd.OutOrStdout(), "not reachable: no edit applied")
		return nil
	}
	if err != nil {
		return err
	}

	return printResult(cmd.OutOrStdout(), opts.Format, out)
}
