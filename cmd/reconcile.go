package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"invoicely/core/config"
	"invoicely/core/logger"
	"invoicely/feature/invoice/models"
	"invoicely/feature/invoice/reconcile"
	"invoicely/feature/invoice/validate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reconcileValidate bool

// reconcileCmd merges two extraction files into one record.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile <primary.json> <secondary.json>",
	Short: "Merge two invoice extractions into one record",
	Long: `Reconcile two provider extractions of the same invoice.

The primary file is the lightweight provider's reading, the secondary the
heavyweight provider's. Where they conflict the secondary wins; the full
per-field decision trail, the quality score and the routing recommendation
are printed as JSON.

Examples:
  # Merge two extraction files
  invoicely reconcile textract/inv-001.json docai/inv-001.json

  # Merge and validate the result in one go
  invoicely reconcile textract/inv-001.json docai/inv-001.json --validate`,
	Args: cobra.ExactArgs(2),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&reconcileValidate, "validate", false, "Also validate the merged record")
	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	primary, err := readRecord(args[0])
	if err != nil {
		return err
	}
	secondary, err := readRecord(args[1])
	if err != nil {
		return err
	}

	engine := reconcile.New(cfg.Engine)
	result, err := engine.Merge(primary, secondary)
	if err != nil {
		return fmt.Errorf("failed to merge records: %w", err)
	}

	l.Info("Records reconciled",
		zap.Int("quality_score", result.QualityScore),
		zap.String("recommendation", string(result.Recommendation)),
		zap.Int("mismatches", len(result.Mismatches)))

	output := map[string]any{"merge": result}

	if reconcileValidate {
		validation, err := validate.New(nil).Validate(&result.Merged)
		if err != nil {
			return fmt.Errorf("failed to validate merged record: %w", err)
		}
		output["validation"] = validation
	}

	return printJSON(output)
}

// readRecord loads one extraction file.
func readRecord(path string) (*models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var rec models.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &rec, nil
}

// printJSON writes indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
