package reconcile

import (
	"time"

	"invoicely/feature/invoice/models"
)

// Recommendation is the three-way routing decision derived from the quality score.
type Recommendation string

const (
	// RecommendApprove means the merge is trustworthy enough for automatic processing.
	RecommendApprove Recommendation = "approve"
	// RecommendReview means a human should look before the record moves on.
	RecommendReview Recommendation = "review"
	// RecommendReject means the merge is too incomplete or conflicted to use.
	RecommendReject Recommendation = "reject"
)

// FieldComparison records how one field of the merge was decided.
// It is constructed once by a single Merge call and never mutated after;
// it has no lifecycle outside its parent MergeResult.
type FieldComparison struct {
	// Field is the canonical field this entry describes.
	Field models.Field `json:"field"`

	// Primary is the rendered value from the primary producer, nil if absent.
	Primary *string `json:"primary,omitempty"`

	// Secondary is the rendered value from the secondary producer, nil if absent.
	Secondary *string `json:"secondary,omitempty"`

	// Selected is the rendered value chosen for the merged record, nil if absent.
	Selected *string `json:"selected,omitempty"`

	// Reason is a human-readable explanation of the selection.
	Reason string `json:"reason"`

	// Confidence expresses trust in the selected value, 0-100.
	Confidence int `json:"confidence"`

	// Mismatch reports that both producers had values that were not equivalent.
	Mismatch bool `json:"mismatch"`

	// Measure carries the computed closeness when both values were present:
	// a similarity ratio for text, a relative difference for amounts.
	Measure *float64 `json:"measure,omitempty"`
}

// MergeResult is the complete outcome of one reconciliation call: both
// source snapshots verbatim, the merged record, the per-field comparison
// trail, the rendered mismatches, and the quality verdict. It is a value
// object owned by the caller; the engine retains nothing.
type MergeResult struct {
	// Primary is the snapshot from the primary (lightweight) producer.
	Primary models.Record `json:"primary"`

	// Secondary is the snapshot from the secondary (heavyweight) producer.
	Secondary models.Record `json:"secondary"`

	// Merged is the reconciled canonical record.
	Merged models.Record `json:"merged"`

	// Comparisons holds one entry per field that had at least one value.
	Comparisons []FieldComparison `json:"comparisons"`

	// Mismatches lists rendered descriptions of conflicting fields,
	// e.g. `vendor_name: primary="Acme Corp" secondary="Acme Corporation" (similarity=0.72)`.
	Mismatches []string `json:"mismatches"`

	// QualityScore rates the merge 0-100 from completeness and mismatches.
	QualityScore int `json:"quality_score"`

	// Recommendation is the routing decision derived from QualityScore.
	Recommendation Recommendation `json:"recommendation"`

	// MergedAt is when the reconciliation ran.
	MergedAt time.Time `json:"merged_at"`
}
