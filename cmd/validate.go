package cmd

import (
	"fmt"
	"sort"
	"sync"

	"invoicely/core/config"
	"invoicely/core/logger"
	"invoicely/feature/invoice/validate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// validateCmd scores extraction files against the validation rules.
var validateCmd = &cobra.Command{
	Use:   "validate <file.json> [file.json...]",
	Short: "Validate invoice records against the rule battery",
	Long: `Validate one or more invoice record files.

Each record is scored 0-100 across completeness, format, business logic and
anomaly rules. Records at 80 or above are valid, 60-79 carry warnings and
below 60 are invalid. Files are processed concurrently; the per-file results
and a summary are printed as JSON.

Examples:
  # Validate a single record
  invoicely validate merged/inv-001.json

  # Validate a batch
  invoicely validate merged/*.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

// fileValidation pairs a validation outcome with its source file.
type fileValidation struct {
	File   string           `json:"file"`
	Error  string           `json:"error,omitempty"`
	Result *validate.Result `json:"result,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	engine := validate.New(nil)

	var (
		mu      sync.Mutex
		results []fileValidation
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Producer.PoolSize())

	for _, path := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			entry := fileValidation{File: path}
			rec, err := readRecord(path)
			if err != nil {
				entry.Error = err.Error()
			} else if res, err := engine.Validate(rec); err != nil {
				entry.Error = err.Error()
			} else {
				entry.Result = res
			}

			mu.Lock()
			results = append(results, entry)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })

	var valid, warning, invalid, failed int
	for _, r := range results {
		switch {
		case r.Result == nil:
			failed++
		case r.Result.Verdict == validate.VerdictValid:
			valid++
		case r.Result.Verdict == validate.VerdictWarning:
			warning++
		default:
			invalid++
		}
	}

	l.Info("Validation finished",
		zap.Int("files", len(results)),
		zap.Int("valid", valid),
		zap.Int("warning", warning),
		zap.Int("invalid", invalid),
		zap.Int("failed", failed))

	return printJSON(map[string]any{
		"results": results,
		"summary": map[string]int{
			"files":   len(results),
			"valid":   valid,
			"warning": warning,
			"invalid": invalid,
			"failed":  failed,
		},
	})
}
