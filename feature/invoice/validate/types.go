package validate

import (
	"time"

	"invoicely/feature/invoice/models"
)

// Severity classifies a rule violation as blocking or advisory.
type Severity int

const (
	// SeverityError is a blocking violation.
	SeverityError Severity = iota
	// SeverityWarning is an advisory violation.
	SeverityWarning
)

// Category is the rule group a rule belongs to. Categories run in declared
// order and never short-circuit each other.
type Category int

const (
	CategoryCompleteness Category = iota
	CategoryFormat
	CategoryBusiness
	CategoryAnomaly
)

// String returns the category's report label.
func (c Category) String() string {
	switch c {
	case CategoryCompleteness:
		return "completeness"
	case CategoryFormat:
		return "format"
	case CategoryBusiness:
		return "business_logic"
	case CategoryAnomaly:
		return "anomaly"
	default:
		return "unknown"
	}
}

// CheckFunc evaluates one rule against a record. It returns whether the
// rule triggered and the rendered violation message. A value that fails to
// parse is treated as absent for the rule; checks never panic on odd input.
type CheckFunc func(rec *models.Record, now time.Time) (bool, string)

// Rule is one named, categorized validation predicate with a fixed point
// deduction. Rules are process-wide constants: built once, never mutated.
type Rule struct {
	// Name uniquely identifies the rule in diagnostics.
	Name string
	// Category determines evaluation order.
	Category Category
	// Severity routes the message to errors or warnings.
	Severity Severity
	// Deduction is subtracted from the score when the rule triggers.
	Deduction int
	// Check evaluates the rule.
	Check CheckFunc
}

// Verdict is the three-band reading of a validation score.
type Verdict string

const (
	// VerdictValid means the record scored at least the valid threshold (80).
	VerdictValid Verdict = "valid"
	// VerdictWarning means the record landed in the 60-79 review band.
	VerdictWarning Verdict = "warning"
	// VerdictInvalid means the record scored below 60.
	VerdictInvalid Verdict = "invalid"
)

// Result is the outcome of one validation call. It is produced fresh per
// call and never mutated after return.
type Result struct {
	// InvoiceNumber echoes the record's identifier when present.
	InvoiceNumber string `json:"invoice_number,omitempty"`

	// Score starts at 100 and decreases monotonically as rules trigger,
	// clamped to [0,100] after every category pass.
	Score int `json:"score"`

	// Errors lists blocking violations in rule order.
	Errors []string `json:"errors"`

	// Warnings lists advisory violations in rule order.
	Warnings []string `json:"warnings"`

	// Valid reports whether the score reached the valid band.
	Valid bool `json:"valid"`

	// Verdict is the three-band classification of the score.
	Verdict Verdict `json:"verdict"`
}
