// Package diag defines the diagnostic message model consumed by the
// diagnostics panel and the pure classification that buckets every message
// into one of the panel's filter groups.
//
// # Data model
//
// Message is the record produced by an external analysis subsystem. Only two
// of its fields drive classification:
//
//   - Kind – closed enum (unset, lint, review). Unset stands for both "null"
//     and "missing" in the wire formats and behaves like lint.
//   - Type – severity of lint-like messages (Error, Warning, Info).
//
// The remaining fields (provider, file, range, text, stale) are carried for
// sorting, deduplication and rendering.
//
// # Groups
//
// Group is the UI-facing bucket: errors, warnings, review. Info collapses
// into the warnings bucket on purpose; the panel has one button per lint
// severity class and one for review comments, not one per severity.
//
// Classify, DisplayName and IconFor are total over their closed domains and
// fail with an InvalidEnumValueError on anything else. They have no side
// effects and may be called from any goroutine.
//
// # Collections
//
// Bag stores messages with a bound, sorts them deterministically, removes
// duplicates and partitions them by group. GroupSet is the toggle state of
// the group filter buttons; Tally holds the per-group badge counts.
//
// Package diag does no IO and no formatting. Decoding lives in
// internal/diagio, rendering in internal/diagfmt.
package diag
