package models

import (
	"time"
)

// ProcessedInvoice is the persisted outcome of one process run:
// the merged record plus both scores and the verdicts derived from them.
// The merged record and the full merge trail are stored as JSON blobs so
// audits can replay exactly what was decided and why.
type ProcessedInvoice struct {
	ID              string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	DocumentName    string    `gorm:"column:document_name;size:255;index" json:"document_name"`
	InvoiceNumber   string    `gorm:"column:invoice_number;size:64;index" json:"invoice_number"`
	VendorName      string    `gorm:"column:vendor_name;size:255;index" json:"vendor_name"`
	QualityScore    int       `gorm:"column:quality_score" json:"quality_score"`
	Recommendation  string    `gorm:"column:recommendation;size:16" json:"recommendation"`
	ValidationScore int       `gorm:"column:validation_score" json:"validation_score"`
	IsValid         bool      `gorm:"column:is_valid;index" json:"is_valid"`
	MergedJSON      string    `gorm:"column:merged_json;type:longtext" json:"-"`
	TrailJSON       string    `gorm:"column:trail_json;type:longtext" json:"-"`
	CreatedAt       time.Time `gorm:"column:created_at;index" json:"created_at"`
}

// TableName overrides the GORM default pluralization.
func (ProcessedInvoice) TableName() string {
	return "processed_invoices"
}
