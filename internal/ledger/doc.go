// Package ledger persists a history of organize runs in SQLite.
//
// The ledger is optional and purely observational: a failure to record never
// fails the run it records. Each run row carries a UUID, the source and
// destination roots, timestamps, and a final status; file rows list every
// copy the run performed. The `tagtree history` command reads it back.
package ledger
