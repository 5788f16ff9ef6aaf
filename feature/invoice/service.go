package invoice

import (
	"context"
	"errors"

	"invoicely/feature/invoice/models"
	"invoicely/feature/invoice/producer"
	"invoicely/feature/invoice/reconcile"
	"invoicely/feature/invoice/validate"

	"go.uber.org/zap"
)

// ErrNoExtraction is returned when neither provider produced a record.
var ErrNoExtraction = errors.New("no provider produced a record for the document")

// Service runs the full pipeline: extract, merge, validate, persist.
type Service struct {
	engine    *reconcile.Engine
	validator *validate.Engine
	primary   producer.Producer
	secondary producer.Producer
	prodCfg   producer.Config
	store     *Store
	logger    *zap.Logger
}

// NewService wires the pipeline. The store may be nil; processing then
// skips persistence, which is how the CLI commands run.
func NewService(engineCfg reconcile.Config, prodCfg producer.Config, primary, secondary producer.Producer, store *Store, logger *zap.Logger) *Service {
	return &Service{
		engine:    reconcile.New(engineCfg),
		validator: validate.New(nil),
		primary:   primary,
		secondary: secondary,
		prodCfg:   prodCfg,
		store:     store,
		logger:    logger,
	}
}

// Reconcile merges two already-extracted records.
func (s *Service) Reconcile(primary, secondary *models.Record) (*reconcile.MergeResult, error) {
	return s.engine.Merge(primary, secondary)
}

// Validate scores a single record against the rule battery.
func (s *Service) Validate(rec *models.Record) (*validate.Result, error) {
	return s.validator.Validate(rec)
}

// ProcessReport is the outcome of one end-to-end document run.
type ProcessReport struct {
	Document   string                   `json:"document"`
	Providers  map[string]bool          `json:"providers"`
	Merge      *reconcile.MergeResult   `json:"merge"`
	Validation *validate.Result         `json:"validation"`
	Stored     *models.ProcessedInvoice `json:"stored,omitempty"`
}

// ProcessDocument runs both providers on a document, merges their readings,
// validates the merged record and persists the outcome when a store is
// configured. A single failed provider degrades to an empty record; only
// when both fail is the document unprocessable.
func (s *Service) ProcessDocument(ctx context.Context, document string) (*ProcessReport, error) {
	pair := producer.RunPair(ctx, s.primary, s.secondary, document, s.prodCfg.Timeout())

	if !pair.Primary.Available() {
		s.logger.Warn("Primary provider unavailable",
			zap.String("document", document),
			zap.Error(pair.Primary.Err))
	}
	if !pair.Secondary.Available() {
		s.logger.Warn("Secondary provider unavailable",
			zap.String("document", document),
			zap.Error(pair.Secondary.Err))
	}
	if !pair.Primary.Available() && !pair.Secondary.Available() {
		return nil, ErrNoExtraction
	}

	merge, err := s.engine.Merge(pair.Primary.Record, pair.Secondary.Record)
	if err != nil {
		return nil, err
	}

	validation, err := s.validator.Validate(&merge.Merged)
	if err != nil {
		return nil, err
	}

	report := &ProcessReport{
		Document: document,
		Providers: map[string]bool{
			pair.Primary.Provider:   pair.Primary.Available(),
			pair.Secondary.Provider: pair.Secondary.Available(),
		},
		Merge:      merge,
		Validation: validation,
	}

	if s.store != nil {
		row, err := s.store.SaveResult(ctx, document, merge, validation)
		if err != nil {
			return nil, err
		}
		report.Stored = row
	}

	s.logger.Info("Document processed",
		zap.String("document", document),
		zap.Int("quality_score", merge.QualityScore),
		zap.String("recommendation", string(merge.Recommendation)),
		zap.Int("validation_score", validation.Score),
		zap.Bool("valid", validation.Valid))

	return report, nil
}

// ProcessBatch runs ProcessDocument over a document list sequentially.
// Provider calls inside each document still run concurrently; documents
// whose providers both fail are reported, not fatal.
func (s *Service) ProcessBatch(ctx context.Context, documents []string) ([]*ProcessReport, []error) {
	reports := make([]*ProcessReport, 0, len(documents))
	var failures []error

	for _, doc := range documents {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}
		report, err := s.ProcessDocument(ctx, doc)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, failures
}

// ListProcessed returns persisted outcomes.
func (s *Service) ListProcessed(ctx context.Context, filter ListFilter) ([]models.ProcessedInvoice, error) {
	if s.store == nil {
		return nil, errors.New("persistence is not configured")
	}
	return s.store.List(ctx, filter)
}

// GetProcessed returns one persisted outcome by ID.
func (s *Service) GetProcessed(ctx context.Context, id string) (*models.ProcessedInvoice, error) {
	if s.store == nil {
		return nil, errors.New("persistence is not configured")
	}
	return s.store.Get(ctx, id)
}
