package reconcile

// Config holds the tunable thresholds of the reconciliation engine.
// The defaults match the calibrated production values; they are exposed as
// configuration because the recommendation bands are policy, not invariants.
type Config struct {
	// SimilarityThreshold is the text similarity ratio at or above which
	// two values count as equivalent.
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" default:"0.85"`
	// NumericTolerance is the relative difference at or below which two
	// amounts count as equivalent.
	NumericTolerance float64 `mapstructure:"numeric_tolerance" default:"0.05"`
	// ApproveThreshold is the minimum quality score for an "approve"
	// recommendation.
	ApproveThreshold int `mapstructure:"approve_threshold" default:"85"`
	// ReviewThreshold is the minimum quality score for a "review"
	// recommendation; below it the merge is rejected.
	ReviewThreshold int `mapstructure:"review_threshold" default:"60"`
	// MismatchPenalty is the quality deduction per conflicting field.
	MismatchPenalty int `mapstructure:"mismatch_penalty" default:"5"`
}

// withDefaults fills zero values with the calibrated defaults so a zero
// Config behaves like the documented policy.
func (c Config) withDefaults() Config {
	if c.SimilarityThreshold <= 0 {
		c.SimilarityThreshold = 0.85
	}
	if c.NumericTolerance <= 0 {
		c.NumericTolerance = 0.05
	}
	if c.ApproveThreshold <= 0 {
		c.ApproveThreshold = 85
	}
	if c.ReviewThreshold <= 0 {
		c.ReviewThreshold = 60
	}
	if c.MismatchPenalty <= 0 {
		c.MismatchPenalty = 5
	}
	return c
}
