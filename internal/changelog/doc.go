// Package changelog handles the flat changelog document: discovering the
// current version in its leading lines, deciding whether a commit subject is
// already recorded, formatting new entries, and rendering existing entries
// for terminal display.
//
// The document is prepend-only. Entries are never reordered or deleted, and
// the latest entry is always at the top.
package changelog
