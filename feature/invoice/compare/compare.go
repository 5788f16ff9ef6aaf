package compare

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Default equivalence thresholds. They are the comparator's built-in
// calibration; the reconcile engine exposes both as tunable configuration.
const (
	// DefaultSimilarityThreshold is the minimum text similarity ratio at
	// which two values are considered equivalent.
	DefaultSimilarityThreshold = 0.85
	// DefaultNumericTolerance is the maximum relative difference at which
	// two amounts are considered equivalent.
	DefaultNumericTolerance = 0.05
)

// Result is the outcome of comparing two present values of one field.
type Result struct {
	// Equivalent reports whether the two values are close enough to be
	// treated as the same observation.
	Equivalent bool
	// Measure is the computed closeness: a similarity ratio in [0,1] for
	// text, a relative difference for numerics, 1 or 0 for exact kinds.
	Measure float64
}

// Comparator performs type-aware comparison of two values of the same field.
// The zero value is not usable; construct with New.
type Comparator struct {
	similarityThreshold float64
	numericTolerance    float64
}

// New creates a comparator. Non-positive thresholds fall back to the defaults.
func New(similarityThreshold, numericTolerance float64) *Comparator {
	if similarityThreshold <= 0 {
		similarityThreshold = DefaultSimilarityThreshold
	}
	if numericTolerance <= 0 {
		numericTolerance = DefaultNumericTolerance
	}
	return &Comparator{
		similarityThreshold: similarityThreshold,
		numericTolerance:    numericTolerance,
	}
}

// SimilarityThreshold returns the configured text equivalence threshold.
func (c *Comparator) SimilarityThreshold() float64 { return c.similarityThreshold }

// NumericTolerance returns the configured relative-difference tolerance.
func (c *Comparator) NumericTolerance() float64 { return c.numericTolerance }

// Text compares two text values by normalized similarity ratio.
func (c *Comparator) Text(a, b string) Result {
	ratio := Similarity(a, b)
	return Result{
		Equivalent: ratio >= c.similarityThreshold,
		Measure:    ratio,
	}
}

// Numeric compares two amounts by relative difference.
func (c *Comparator) Numeric(a, b decimal.Decimal) Result {
	diff := RelativeDiff(a, b)
	return Result{
		Equivalent: diff <= c.numericTolerance,
		Measure:    diff,
	}
}

// Date compares two date strings by calendar-date equality. There is no
// fuzzy date matching: a date either names the same day or it does not.
// A value that fails to parse never matches anything.
func (c *Comparator) Date(a, b string) Result {
	da, errA := ParseDate(a)
	db, errB := ParseDate(b)
	if errA != nil || errB != nil {
		return Result{Equivalent: false, Measure: 0}
	}

	if da.Year() == db.Year() && da.YearDay() == db.YearDay() {
		return Result{Equivalent: true, Measure: 1}
	}
	return Result{Equivalent: false, Measure: 0}
}

// LineItemCounts compares two line-item lists by count only. Contents are
// not deep-diffed: positional or description-based alignment is explicitly
// out of scope for this engine.
func (c *Comparator) LineItemCounts(a, b int) Result {
	if a == b {
		return Result{Equivalent: true, Measure: 1}
	}
	return Result{Equivalent: false, Measure: 0}
}

// Normalize case-folds a string and collapses runs of whitespace so that
// formatting differences between extraction providers do not count as
// disagreement.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// RelativeDiff computes |a-b| / max(|a|, |b|) as a float. Two zeros yield 0.
// Decimal arithmetic keeps the quotient free of binary-float drift; only the
// final reading of the ratio goes through float64.
func RelativeDiff(a, b decimal.Decimal) float64 {
	diff := a.Sub(b).Abs()
	if diff.IsZero() {
		return 0
	}

	denom := a.Abs()
	if b.Abs().GreaterThan(denom) {
		denom = b.Abs()
	}
	if denom.IsZero() {
		// One side is exactly zero and the other is not: maximal difference.
		return 1
	}

	f, _ := diff.Div(denom).Float64()
	return f
}
