package producer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"invoicely/feature/invoice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProducer returns a canned record or error per document.
type stubProducer struct {
	name    string
	records map[string]*models.Record
	err     error
	delay   time.Duration
	calls   atomic.Int64
}

func (s *stubProducer) Name() string { return s.name }

func (s *stubProducer) Extract(ctx context.Context, document string) (*models.Record, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.records[document], nil
}

func str(s string) *string { return &s }

func TestInvoke(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		p := &stubProducer{
			name: "textract",
			records: map[string]*models.Record{
				"inv-001": {InvoiceNumber: str("INV-001")},
			},
		}

		ext := Invoke(context.Background(), p, "inv-001", time.Second)

		assert.True(t, ext.Available())
		assert.Equal(t, "textract", ext.Provider)
		assert.Equal(t, "inv-001", ext.Document)
		require.NotNil(t, ext.Record)
		assert.Equal(t, "INV-001", *ext.Record.InvoiceNumber)
	})

	t.Run("FailureDegradesToEmptyRecord", func(t *testing.T) {
		p := &stubProducer{name: "docai", err: errors.New("quota exceeded")}

		ext := Invoke(context.Background(), p, "inv-001", time.Second)

		assert.False(t, ext.Available())
		require.NotNil(t, ext.Record, "a failed provider still yields a record")
		assert.False(t, ext.Record.HasField(models.FieldInvoiceNumber))

		var failure *Failure
		require.ErrorAs(t, ext.Err, &failure)
		assert.Equal(t, "docai", failure.Provider)
		assert.Equal(t, "inv-001", failure.Document)
	})

	t.Run("NilRecordNormalized", func(t *testing.T) {
		p := &stubProducer{name: "textract"}
		ext := Invoke(context.Background(), p, "unknown", time.Second)
		assert.True(t, ext.Available())
		require.NotNil(t, ext.Record)
	})

	t.Run("Timeout", func(t *testing.T) {
		p := &stubProducer{name: "slow", delay: 200 * time.Millisecond}

		ext := Invoke(context.Background(), p, "inv-001", 10*time.Millisecond)

		assert.False(t, ext.Available())
		assert.ErrorIs(t, ext.Err, context.DeadlineExceeded)
	})
}

func TestRunPair(t *testing.T) {
	primary := &stubProducer{
		name: "textract",
		records: map[string]*models.Record{
			"inv-001": {InvoiceNumber: str("INV-001")},
		},
	}
	secondary := &stubProducer{name: "docai", err: errors.New("down")}

	pair := RunPair(context.Background(), primary, secondary, "inv-001", time.Second)

	assert.Equal(t, "inv-001", pair.Document)
	assert.True(t, pair.Primary.Available())
	assert.False(t, pair.Secondary.Available())
	assert.Equal(t, "textract", pair.Primary.Provider)
	assert.Equal(t, "docai", pair.Secondary.Provider)
}

func TestRunBatch(t *testing.T) {
	t.Run("PreservesOrder", func(t *testing.T) {
		docs := []string{"a", "b", "c", "d", "e"}
		records := make(map[string]*models.Record, len(docs))
		for _, d := range docs {
			records[d] = &models.Record{InvoiceNumber: str("INV-" + d)}
		}
		primary := &stubProducer{name: "textract", records: records}
		secondary := &stubProducer{name: "docai", records: records}

		pairs, err := RunBatch(context.Background(), primary, secondary, docs, Config{Workers: 2})
		require.NoError(t, err)
		require.Len(t, pairs, len(docs))

		for i, d := range docs {
			assert.Equal(t, d, pairs[i].Document)
			assert.Equal(t, "INV-"+d, *pairs[i].Primary.Record.InvoiceNumber)
		}
		assert.EqualValues(t, len(docs), primary.calls.Load())
		assert.EqualValues(t, len(docs), secondary.calls.Load())
	})

	t.Run("EmptyInput", func(t *testing.T) {
		pairs, err := RunBatch(context.Background(), &stubProducer{name: "a"}, &stubProducer{name: "b"}, nil, Config{})
		require.NoError(t, err)
		assert.Empty(t, pairs)
	})

	t.Run("Cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := RunBatch(ctx, &stubProducer{name: "a"}, &stubProducer{name: "b"}, []string{"x"}, Config{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, 4, cfg.PoolSize())

	cfg = Config{TimeoutSeconds: 5, Workers: 8}
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 8, cfg.PoolSize())
}
