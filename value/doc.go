// Package value provides the sealed value model sculpt edits: scalar
// leaves (Null, Bool, Int, Float, String, Bytes, Time, Opaque) and four
// container shapes (Record, List, Map, Set).
//
// This package contains value types and their primitives only. Every
// other package imports value; value imports nothing from this module.
// This keeps the value model the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Containers carry a freeze flag; frozen containers panic with
//     *FrozenMutationError on mutation (the dev-mode lock)
//   - Map keys and Set members are indexed by canonical encoding, so
//     any encodable Value can key a Map
//   - Canonical JSON uses RFC 8785 discipline: UTF-16 key ordering,
//     NFC-normalized strings, no HTML escaping
package value
