package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"invoicely/feature/invoice/models"
	"invoicely/feature/invoice/reconcile"
	"invoicely/feature/invoice/validate"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a processed invoice does not exist.
var ErrNotFound = errors.New("processed invoice not found")

// Store persists processed invoices.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on an existing database connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the processed_invoices table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&models.ProcessedInvoice{})
}

// SaveResult converts a merge outcome plus its validation into a row and
// inserts it. The merged record and the full comparison trail are kept as
// JSON so the decision can be replayed later.
func (s *Store) SaveResult(ctx context.Context, document string, merge *reconcile.MergeResult, validation *validate.Result) (*models.ProcessedInvoice, error) {
	mergedJSON, err := json.Marshal(merge.Merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode merged record: %w", err)
	}
	trailJSON, err := json.Marshal(merge.Comparisons)
	if err != nil {
		return nil, fmt.Errorf("failed to encode comparison trail: %w", err)
	}

	row := &models.ProcessedInvoice{
		ID:              uuid.NewString(),
		DocumentName:    document,
		QualityScore:    merge.QualityScore,
		Recommendation:  string(merge.Recommendation),
		ValidationScore: validation.Score,
		IsValid:         validation.Valid,
		MergedJSON:      string(mergedJSON),
		TrailJSON:       string(trailJSON),
		CreatedAt:       time.Now(),
	}
	if merge.Merged.InvoiceNumber != nil {
		row.InvoiceNumber = *merge.Merged.InvoiceNumber
	}
	if merge.Merged.VendorName != nil {
		row.VendorName = *merge.Merged.VendorName
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to save processed invoice: %w", err)
	}
	return row, nil
}

// ListFilter narrows List results.
type ListFilter struct {
	// Recommendation filters by routing decision when non-empty.
	Recommendation string
	// OnlyValid keeps rows that passed validation.
	OnlyValid bool
	// Limit caps the result size; 0 means the default of 100.
	Limit int
	// Offset skips rows for pagination.
	Offset int
}

// List returns processed invoices, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]models.ProcessedInvoice, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	q := s.db.WithContext(ctx).Model(&models.ProcessedInvoice{})
	if filter.Recommendation != "" {
		q = q.Where("recommendation = ?", filter.Recommendation)
	}
	if filter.OnlyValid {
		q = q.Where("is_valid = ?", true)
	}

	var rows []models.ProcessedInvoice
	err := q.Order("created_at DESC").Limit(limit).Offset(filter.Offset).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list processed invoices: %w", err)
	}
	return rows, nil
}

// Get returns one processed invoice by ID.
func (s *Store) Get(ctx context.Context, id string) (*models.ProcessedInvoice, error) {
	var row models.ProcessedInvoice
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load processed invoice: %w", err)
	}
	return &row, nil
}

// MergedRecord decodes the stored merged record of a row.
func MergedRecord(row *models.ProcessedInvoice) (*models.Record, error) {
	var rec models.Record
	if err := json.Unmarshal([]byte(row.MergedJSON), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode merged record: %w", err)
	}
	return &rec, nil
}
