// Package compare provides the type-aware field comparators used by the
// reconciliation engine.
//
// All comparisons are pure functions over two present values: the engine
// never invokes a comparator when either side is absent. Text fields are
// compared by a normalized Ratcliff/Obershelp similarity ratio, numeric
// fields by relative difference over fixed-point decimals, dates by exact
// calendar-day equality, and line-item lists by count only.
package compare
