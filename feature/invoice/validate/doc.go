// Package validate scores a canonical invoice record against a weighted
// battery of business rules, independent of how the record was produced.
//
// Rules are grouped into four ordered categories (completeness, format,
// business logic, anomaly detection) with fixed per-rule deductions from a
// starting score of 100. Blocking violations render as errors, advisory
// ones as warnings, and the final score maps to a three-band verdict.
//
// The engine never raises for odd data: a field that fails to parse is
// treated as absent for the rule that needed it and penalized by the
// corresponding completeness or format rule instead.
package validate
