package validate

import (
	"errors"
	"time"

	"invoicely/feature/invoice/models"
)

// Score bands for the validity verdict.
const (
	validThreshold   = 80
	warningThreshold = 60
)

// ErrNilRecord is returned when a caller passes a nil record. As with the
// reconcile engine, this is the single contract violation: a record with
// every field absent is legal (maximally invalid) input and still yields
// a complete Result.
var ErrNilRecord = errors.New("validate: nil record")

// Engine applies an ordered battery of categorized rules to a canonical
// record. It is pure and stateless across calls except for its immutable
// rule table, so one engine can serve concurrent validations.
type Engine struct {
	rules []Rule
	now   func() time.Time
}

// New creates an engine over the given rule table. A nil table selects
// DefaultRules. The engine keeps its own copy so later mutation of the
// caller's slice cannot change behavior.
func New(rules []Rule) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return &Engine{rules: owned, now: time.Now}
}

// Rules returns the engine's rule table. The slice is a copy.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Validate scores the record against the rule battery.
//
// Categories run in declared order and never short-circuit: every rule is
// evaluated even when the score already sits at the floor. The running
// score is clamped to [0,100] after each category pass so message ordering
// stays decoupled from the final arithmetic. Data-quality problems never
// produce an error; the only error is ErrNilRecord.
func (e *Engine) Validate(rec *models.Record) (*Result, error) {
	if rec == nil {
		return nil, ErrNilRecord
	}

	result := &Result{
		Score:    100,
		Errors:   []string{},
		Warnings: []string{},
	}
	if rec.InvoiceNumber != nil {
		result.InvoiceNumber = *rec.InvoiceNumber
	}

	now := e.now()
	score := 100
	categories := []Category{CategoryCompleteness, CategoryFormat, CategoryBusiness, CategoryAnomaly}

	for _, cat := range categories {
		for _, rule := range e.rules {
			if rule.Category != cat {
				continue
			}

			triggered, message := rule.Check(rec, now)
			if !triggered {
				continue
			}

			score -= rule.Deduction
			if rule.Severity == SeverityError {
				result.Errors = append(result.Errors, message)
			} else {
				result.Warnings = append(result.Warnings, message)
			}
		}

		// Clamp per category, not only at the end.
		score = clampScore(score)
	}

	result.Score = score
	result.Valid = score >= validThreshold
	switch {
	case score >= validThreshold:
		result.Verdict = VerdictValid
	case score >= warningThreshold:
		result.Verdict = VerdictWarning
	default:
		result.Verdict = VerdictInvalid
	}

	return result, nil
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
