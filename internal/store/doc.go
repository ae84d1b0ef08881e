// Package store provides durable storage for named value-tree
// documents, and exposes each document as a sculpt.Accessor so edits
// can target persisted state directly.
//
// Documents are persisted as canonical JSON in SQLite with WAL mode
// for concurrent read access. Every save bumps the document version.
package store
