// Package harness executes YAML edit scenarios against the public
// sculpt API and compares the results against golden files.
//
// A scenario declares a root document, an ordered list of edits
// (optionally batched), and either an expected outcome or an expected
// error. Golden comparison uses canonical JSON so output is
// deterministic.
package harness
