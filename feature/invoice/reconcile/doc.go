// Package reconcile merges two independently extracted views of one invoice
// into a single trustworthy record with per-field provenance and confidence.
//
// # Policy
//
// The two producers are not equals: the secondary (heavyweight) producer is
// modeled as strictly more reliable per the field reliability table, so it
// wins every tie and every conflict. The primary producer's value is only
// selected when the secondary had none. Conflicting fields are flagged as
// mismatches with both original values and the computed closeness, and each
// mismatch costs the merge a fixed quality deduction.
//
// # Purity
//
// Merge is a synchronous, side-effect-free function over two already
// resolved snapshots. It never blocks and holds no state across calls, so
// independent records can be reconciled concurrently without coordination.
// Producer failures are not this package's concern: an unavailable producer
// is passed in as an empty record and the merge degrades to the other side.
package reconcile
