package reconcile

import (
	"errors"
	"fmt"
	"math"
	"time"

	"invoicely/feature/invoice/compare"
	"invoicely/feature/invoice/models"
)

// ErrNilRecord is returned when a caller passes a nil record snapshot.
// This is a programming-contract violation, not a data-quality problem:
// an unavailable producer must be represented as an empty record, and the
// engine never errors for records that are merely incomplete or malformed.
var ErrNilRecord = errors.New("reconcile: nil record snapshot")

// Confidence levels of the fixed selection policy. The secondary producer
// wins ties and conflicts outright; see Weights for the reliability table
// behind these numbers.
const (
	confidencePrimaryOnly   = 85
	confidenceSecondaryOnly = 95
	confidenceAgreement     = 90
	confidenceConflictFloor = 80
)

// Engine merges two independently produced views of one invoice into a
// single record with a per-field decision trail.
//
// The engine is pure and stateless across calls: it never mutates its
// inputs, never blocks, and is safe for concurrent use.
type Engine struct {
	cfg     Config
	cmp     *compare.Comparator
	weights Weights
	now     func() time.Time
}

// New creates an engine with the given thresholds. Zero config fields fall
// back to the calibrated defaults.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:     cfg,
		cmp:     compare.New(cfg.SimilarityThreshold, cfg.NumericTolerance),
		weights: DefaultWeights(),
		now:     time.Now,
	}
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Merge reconciles the primary (lightweight, lower-trust) and secondary
// (heavyweight, higher-trust) snapshots field by field.
//
// Selection policy, evaluated per field in order:
//  1. both absent: merged value stays absent, no trail entry
//  2. only primary present: primary selected, confidence 85
//  3. only secondary present: secondary selected, confidence 95
//  4. both present and equivalent: secondary selected, confidence 90
//  5. both present and conflicting: secondary selected, confidence scaled
//     into [80,90] by closeness to the equivalence threshold, mismatch
//     recorded with both original values
//
// An entirely empty snapshot (producer failed upstream) degrades gracefully
// to the other producer's record. The only error is ErrNilRecord.
func (e *Engine) Merge(primary, secondary *models.Record) (*MergeResult, error) {
	if primary == nil || secondary == nil {
		return nil, ErrNilRecord
	}

	result := &MergeResult{
		Primary:     *primary,
		Secondary:   *secondary,
		Comparisons: make([]FieldComparison, 0, len(models.Fields)),
		Mismatches:  []string{},
		MergedAt:    e.now().UTC(),
	}

	for _, f := range models.Fields {
		pPresent := primary.HasField(f)
		sPresent := secondary.HasField(f)
		if !pPresent && !sPresent {
			continue
		}

		fc := FieldComparison{
			Field:     f,
			Primary:   renderValue(primary, f),
			Secondary: renderValue(secondary, f),
		}

		switch {
		case pPresent && !sPresent:
			copyField(&result.Merged, primary, f)
			fc.Selected = fc.Primary
			fc.Confidence = confidencePrimaryOnly
			fc.Reason = fmt.Sprintf("secondary absent, using primary (reliability %.2f)", e.weights.Lookup(f).Primary)

		case !pPresent && sPresent:
			copyField(&result.Merged, secondary, f)
			fc.Selected = fc.Secondary
			fc.Confidence = confidenceSecondaryOnly
			fc.Reason = fmt.Sprintf("primary absent, using secondary (reliability %.2f)", e.weights.Lookup(f).Secondary)

		default:
			res, desc := e.compareField(f, primary, secondary)
			measure := res.Measure
			fc.Measure = &measure

			// Ties and conflicts both resolve toward the secondary producer.
			copyField(&result.Merged, secondary, f)
			fc.Selected = fc.Secondary

			if res.Equivalent {
				fc.Confidence = confidenceAgreement
				fc.Reason = fmt.Sprintf("values agree (%s), using secondary", desc)
			} else {
				fc.Mismatch = true
				fc.Confidence = e.conflictConfidence(models.KindOf(f), res.Measure)
				fc.Reason = fmt.Sprintf("values differ (%s), using secondary", desc)
				result.Mismatches = append(result.Mismatches, fmt.Sprintf(
					"%s: primary=%q secondary=%q (%s)",
					f, deref(fc.Primary), deref(fc.Secondary), desc,
				))
			}
		}

		result.Comparisons = append(result.Comparisons, fc)
	}

	result.QualityScore, result.Recommendation = e.scoreQuality(&result.Merged, len(result.Mismatches))

	return result, nil
}

// compareField runs the kind-appropriate comparator and describes the measure.
func (e *Engine) compareField(f models.Field, primary, secondary *models.Record) (compare.Result, string) {
	switch models.KindOf(f) {
	case models.KindNumeric:
		res := e.cmp.Numeric(*primary.NumericValue(f), *secondary.NumericValue(f))
		return res, fmt.Sprintf("diff=%.1f%%", res.Measure*100)
	case models.KindDate:
		res := e.cmp.Date(*primary.TextValue(f), *secondary.TextValue(f))
		if res.Equivalent {
			return res, "same calendar date"
		}
		return res, "different calendar dates"
	case models.KindLineItems:
		res := e.cmp.LineItemCounts(len(primary.LineItems), len(secondary.LineItems))
		return res, fmt.Sprintf("counts %d vs %d", len(primary.LineItems), len(secondary.LineItems))
	default:
		res := e.cmp.Text(*primary.TextValue(f), *secondary.TextValue(f))
		return res, fmt.Sprintf("similarity=%.2f", res.Measure)
	}
}

// conflictConfidence maps a conflicting comparison into [80,90]: the closer
// the values sat to the equivalence threshold, the higher the confidence in
// the selected secondary value.
func (e *Engine) conflictConfidence(kind models.Kind, measure float64) int {
	var closeness float64
	switch kind {
	case models.KindText:
		closeness = measure / e.cfg.SimilarityThreshold
	case models.KindNumeric:
		if measure > 0 {
			closeness = e.cfg.NumericTolerance / measure
		}
	default:
		// Dates and item counts are exact comparisons; a conflict has no
		// notion of "almost equal".
	}

	if closeness > 1 {
		closeness = 1
	}
	if closeness < 0 {
		closeness = 0
	}

	return confidenceConflictFloor + int(math.Round(10*closeness))
}

// renderValue produces the display form of a field for the comparison trail.
func renderValue(r *models.Record, f models.Field) *string {
	if !r.HasField(f) {
		return nil
	}

	var s string
	switch models.KindOf(f) {
	case models.KindNumeric:
		s = r.NumericValue(f).String()
	case models.KindLineItems:
		s = fmt.Sprintf("%d line item(s)", len(r.LineItems))
	default:
		s = *r.TextValue(f)
	}
	return &s
}

// copyField copies one field value from src into dst without sharing memory,
// so the merged record stays independent of the input snapshots.
func copyField(dst, src *models.Record, f models.Field) {
	switch models.KindOf(f) {
	case models.KindNumeric:
		if v := src.NumericValue(f); v != nil {
			d := *v
			dst.SetNumeric(f, &d)
		}
	case models.KindLineItems:
		dst.LineItems = append([]models.LineItem(nil), src.LineItems...)
	default:
		if v := src.TextValue(f); v != nil {
			s := *v
			dst.SetText(f, &s)
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
