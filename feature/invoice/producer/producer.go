package producer

import (
	"context"
	"fmt"
	"time"

	"invoicely/feature/invoice/models"
)

// Producer extracts an invoice record for a document from one provider.
type Producer interface {
	// Name identifies the provider, e.g. "textract" or "docai".
	Name() string
	// Extract returns the provider's reading of the document.
	Extract(ctx context.Context, document string) (*models.Record, error)
}

// Failure wraps a provider error with enough context to report it.
type Failure struct {
	Provider string
	Document string
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("provider %s failed on %s: %v", f.Provider, f.Document, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Extraction is the outcome of one provider call. A failed call carries an
// empty record so downstream merging treats every field as absent.
type Extraction struct {
	Provider string         `json:"provider"`
	Document string         `json:"document"`
	Record   *models.Record `json:"record"`
	Err      error          `json:"-"`
	Elapsed  time.Duration  `json:"-"`
}

// Available reports whether the provider produced a usable record.
func (e Extraction) Available() bool { return e.Err == nil }

// Invoke runs a single producer under the configured timeout. It never
// returns an error: an unavailable provider degrades to an empty record and
// the failure is carried on the Extraction for logging.
func Invoke(ctx context.Context, p Producer, document string, timeout time.Duration) Extraction {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	rec, err := p.Extract(ctx, document)
	elapsed := time.Since(start)

	if err != nil {
		return Extraction{
			Provider: p.Name(),
			Document: document,
			Record:   &models.Record{},
			Err:      &Failure{Provider: p.Name(), Document: document, Err: err},
			Elapsed:  elapsed,
		}
	}
	if rec == nil {
		rec = &models.Record{}
	}

	return Extraction{
		Provider: p.Name(),
		Document: document,
		Record:   rec,
		Elapsed:  elapsed,
	}
}

// Pair holds both provider readings of one document.
type Pair struct {
	Document  string
	Primary   Extraction
	Secondary Extraction
}

// RunPair invokes the primary and secondary producers concurrently and waits
// for both. Either side may come back unavailable; the caller decides whether
// a document with no usable reading at all is worth merging.
func RunPair(ctx context.Context, primary, secondary Producer, document string, timeout time.Duration) Pair {
	pair := Pair{Document: document}

	done := make(chan struct{})
	go func() {
		defer close(done)
		pair.Secondary = Invoke(ctx, secondary, document, timeout)
	}()
	pair.Primary = Invoke(ctx, primary, document, timeout)
	<-done

	return pair
}
