package reconcile

import (
	"math"

	"invoicely/feature/invoice/models"
)

// RequiredFields is the fixed set completeness is measured over. A merge
// missing any of these cannot score 100 regardless of how well the
// producers agreed.
var RequiredFields = []models.Field{
	models.FieldInvoiceNumber,
	models.FieldVendorName,
	models.FieldTotalAmount,
	models.FieldInvoiceDate,
}

// scoreQuality turns the merged record and mismatch count into the quality
// score and recommendation: completeness over the required fields minus a
// fixed penalty per mismatch, clamped to [0,100].
func (e *Engine) scoreQuality(merged *models.Record, mismatchCount int) (int, Recommendation) {
	present := 0
	for _, f := range RequiredFields {
		if merged.HasField(f) {
			present++
		}
	}

	completeness := float64(present) / float64(len(RequiredFields)) * 100
	score := clampScore(int(math.Round(completeness)) - mismatchCount*e.cfg.MismatchPenalty)

	switch {
	case score >= e.cfg.ApproveThreshold:
		return score, RecommendApprove
	case score >= e.cfg.ReviewThreshold:
		return score, RecommendReview
	default:
		return score, RecommendReject
	}
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
