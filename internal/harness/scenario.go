package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one edit scenario: a root document, the edits to
// apply, and what should come out.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Doc is the root document, written as plain YAML.
	Doc any `yaml:"doc"`

	// Batch, when true, applies every edit inside one RunBatch; an
	// error in any edit must leave the document unchanged.
	Batch bool `yaml:"batch,omitempty"`

	// Edits are applied in order.
	Edits []EditStep `yaml:"edits"`

	// WantError, when non-empty, names the error code the run must
	// fail with (PATH_TYPE, COLLECTION_ACCESS, UNSUPPORTED_OPERATION,
	// or NOT_REACHABLE for the skip sentinel).
	WantError string `yaml:"want_error,omitempty"`
}

// EditStep is one edit in a scenario.
type EditStep struct {
	// Path is a path expression as understood by the CLI parser
	// (e.g. `user.tags[0]`, `sessions{"us-east"}.count`).
	Path string `yaml:"path"`

	// Op is set, delete, or append.
	Op string `yaml:"op"`

	// Value is the set payload.
	Value any `yaml:"value,omitempty"`

	// Values is the append payload.
	Values []any `yaml:"values,omitempty"`
}

// LoadScenario reads and validates one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("%s: scenario has no name", path)
	}
	if len(sc.Edits) == 0 {
		return nil, fmt.Errorf("%s: scenario has no edits", path)
	}
	for i, e := range sc.Edits {
		switch e.Op {
		case "set", "delete", "append":
		default:
			return nil, fmt.Errorf("%s: edit %d: unknown op %q", path, i, e.Op)
		}
	}
	return &sc, nil
}
