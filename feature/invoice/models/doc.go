// Package models defines the canonical invoice schema shared by extraction
// producers, the reconciliation engine, and the validation engine, plus the
// persistence model for processed invoices.
//
// The Record type is deliberately permissive: every field is optional and a
// record with no fields populated is legal (maximally incomplete) input.
// Field/Kind give the engines a typed way to walk the schema field by field
// without reflection, keeping merge order fixed and outputs reproducible.
package models
