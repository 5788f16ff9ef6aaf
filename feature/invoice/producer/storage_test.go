package producer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"invoicely/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStorageProducer_Extract(t *testing.T) {
	mockJSON := `{"invoice_number":"INV-001","vendor_name":"Acme Corp","total_amount":"1080.00"}`

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.Client)
		p := NewStorageProducer("textract", mockClient, "invoices", "extractions")

		mockClient.On("GetObject", mock.Anything, "invoices", "extractions/textract/inv-001.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte(mockJSON))), nil)

		rec, err := p.Extract(context.Background(), "inv-001")
		require.NoError(t, err)
		require.NotNil(t, rec.InvoiceNumber)
		assert.Equal(t, "INV-001", *rec.InvoiceNumber)
		require.NotNil(t, rec.TotalAmount)
		assert.Equal(t, "1080", rec.TotalAmount.String())
		mockClient.AssertExpectations(t)
	})

	t.Run("FetchError", func(t *testing.T) {
		mockClient := new(mocks.Client)
		p := NewStorageProducer("docai", mockClient, "invoices", "extractions")

		mockClient.On("GetObject", mock.Anything, "invoices", "extractions/docai/inv-404.json", mock.Anything).
			Return(nil, errors.New("object not found"))

		rec, err := p.Extract(context.Background(), "inv-404")
		assert.Error(t, err)
		assert.Nil(t, rec)
	})

	t.Run("MalformedPayload", func(t *testing.T) {
		mockClient := new(mocks.Client)
		p := NewStorageProducer("textract", mockClient, "invoices", "extractions")

		mockClient.On("GetObject", mock.Anything, "invoices", mock.Anything, mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("not json"))), nil)

		_, err := p.Extract(context.Background(), "inv-001")
		assert.Error(t, err)
	})

	t.Run("DefaultPrefix", func(t *testing.T) {
		p := NewStorageProducer("textract", nil, "invoices", "")
		assert.Equal(t, "extractions/textract/doc.json", p.ObjectName("doc"))
	})
}

func TestStorageProducer_ListDocuments(t *testing.T) {
	t.Run("StripsPrefixAndExtension", func(t *testing.T) {
		mockClient := new(mocks.Client)
		p := NewStorageProducer("textract", mockClient, "invoices", "extractions")

		ch := make(chan minio.ObjectInfo, 3)
		ch <- minio.ObjectInfo{Key: "extractions/textract/inv-001.json"}
		ch <- minio.ObjectInfo{Key: "extractions/textract/inv-002.json"}
		ch <- minio.ObjectInfo{Key: "extractions/textract/README.md"}
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "invoices", mock.Anything).
			Return((<-chan minio.ObjectInfo)(ch))

		docs, err := p.ListDocuments(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"inv-001", "inv-002"}, docs)
	})

	t.Run("ListError", func(t *testing.T) {
		mockClient := new(mocks.Client)
		p := NewStorageProducer("textract", mockClient, "invoices", "extractions")

		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("access denied")}
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "invoices", mock.Anything).
			Return((<-chan minio.ObjectInfo)(ch))

		_, err := p.ListDocuments(context.Background())
		assert.Error(t, err)
	})
}
