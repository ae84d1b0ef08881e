package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/roach88/sculpt/value"
)

// printResult writes the new document value. json emits one canonical
// line; text indents for reading.
func printResult(w io.Writer, format string, v value.Value) error {
	data, err := value.MarshalCanonical(v)
	if err != nil {
		return err
	}

	if format == "json" {
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, buf.String())
	return err
}
