// Package producer invokes extraction providers and fans document batches
// over a bounded worker pool. Provider failures degrade to empty records so
// reconciliation can proceed on the surviving side.
package producer
