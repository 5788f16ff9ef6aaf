package cmd

import (
	"fmt"

	"invoicely/core/config"
	"invoicely/core/database"
	"invoicely/core/logger"
	"invoicely/core/storage"
	"invoicely/feature/invoice"
	"invoicely/feature/invoice/producer"
	"invoicely/feature/invoice/reconcile"
	"invoicely/feature/invoice/validate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	processAll     bool
	processPersist bool
)

// processCmd runs the full pipeline over documents in storage.
var processCmd = &cobra.Command{
	Use:   "process [document...]",
	Short: "Extract, merge and validate documents from storage",
	Long: `Run the full pipeline for documents whose extractions live in storage.

Both providers are invoked for each document over a bounded worker pool,
their readings merged and the merged record validated. With --persist the
outcomes are stored in the database.

Examples:
  # Process specific documents
  invoicely process inv-001 inv-002

  # Process everything the primary provider has extracted
  invoicely process --all

  # Process and persist outcomes
  invoicely process --all --persist`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolVar(&processAll, "all", false, "Process every document the primary provider has an extraction for")
	processCmd.Flags().BoolVar(&processPersist, "persist", false, "Store outcomes in the database")
	RootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if !processAll && len(args) == 0 {
		return fmt.Errorf("no documents given; pass document names or --all")
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	primary := producer.NewStorageProducer("textract", client, cfg.Storage.Bucket, cfg.Producer.Prefix)
	secondary := producer.NewStorageProducer("docai", client, cfg.Storage.Bucket, cfg.Producer.Prefix)

	documents := args
	if processAll {
		documents, err = primary.ListDocuments(ctx)
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}
		l.Info("Discovered documents", zap.Int("count", len(documents)))
	}
	if len(documents) == 0 {
		l.Info("Nothing to process")
		return nil
	}

	var store *invoice.Store
	if processPersist {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		store = invoice.NewStore(db)
		if err := store.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	pairs, err := producer.RunBatch(ctx, primary, secondary, documents, cfg.Producer)
	if err != nil {
		return fmt.Errorf("failed to run providers: %w", err)
	}

	engine := reconcile.New(cfg.Engine)
	validator := validate.New(nil)

	var processed, skipped int
	reports := make([]map[string]any, 0, len(pairs))

	for _, pair := range pairs {
		if !pair.Primary.Available() && !pair.Secondary.Available() {
			l.Warn("No provider produced a record",
				zap.String("document", pair.Document),
				zap.Error(pair.Primary.Err),
				zap.Error(pair.Secondary.Err))
			skipped++
			continue
		}

		merge, err := engine.Merge(pair.Primary.Record, pair.Secondary.Record)
		if err != nil {
			return fmt.Errorf("failed to merge %s: %w", pair.Document, err)
		}
		validation, err := validator.Validate(&merge.Merged)
		if err != nil {
			return fmt.Errorf("failed to validate %s: %w", pair.Document, err)
		}

		report := map[string]any{
			"document":   pair.Document,
			"merge":      merge,
			"validation": validation,
		}

		if store != nil {
			row, err := store.SaveResult(ctx, pair.Document, merge, validation)
			if err != nil {
				return fmt.Errorf("failed to persist %s: %w", pair.Document, err)
			}
			report["stored_id"] = row.ID
		}

		l.Info("Document processed",
			zap.String("document", pair.Document),
			zap.Int("quality_score", merge.QualityScore),
			zap.String("recommendation", string(merge.Recommendation)),
			zap.Int("validation_score", validation.Score))

		reports = append(reports, report)
		processed++
	}

	l.Info("Batch finished",
		zap.Int("processed", processed),
		zap.Int("skipped", skipped))

	return printJSON(reports)
}
