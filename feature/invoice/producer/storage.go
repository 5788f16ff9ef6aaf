package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"invoicely/core/storage"
	"invoicely/feature/invoice/models"

	"github.com/minio/minio-go/v7"
)

// StorageProducer reads a provider's extraction payload from object storage.
// Payloads are JSON records stored under <prefix>/<provider>/<document>.json.
type StorageProducer struct {
	name   string
	client storage.Client
	bucket string
	prefix string
}

// NewStorageProducer builds a producer for one provider directory.
func NewStorageProducer(name string, client storage.Client, bucket, prefix string) *StorageProducer {
	if prefix == "" {
		prefix = "extractions"
	}
	return &StorageProducer{name: name, client: client, bucket: bucket, prefix: prefix}
}

func (p *StorageProducer) Name() string { return p.name }

// ObjectName returns the storage key for a document's extraction.
func (p *StorageProducer) ObjectName(document string) string {
	return path.Join(p.prefix, p.name, document+".json")
}

// Extract downloads and decodes the provider's record for the document.
func (p *StorageProducer) Extract(ctx context.Context, document string) (*models.Record, error) {
	objectName := p.ObjectName(document)

	obj, err := p.client.GetObject(ctx, p.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", objectName, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", objectName, err)
	}

	var rec models.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", objectName, err)
	}
	return &rec, nil
}

// ListDocuments enumerates the documents this provider has extractions for,
// with the prefix and extension stripped.
func (p *StorageProducer) ListDocuments(ctx context.Context) ([]string, error) {
	dir := path.Join(p.prefix, p.name) + "/"

	var docs []string
	for info := range p.client.ListObjects(ctx, p.bucket, minio.ListObjectsOptions{
		Prefix:    dir,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, info.Err)
		}
		name := path.Base(info.Key)
		ext := path.Ext(name)
		if ext != ".json" {
			continue
		}
		docs = append(docs, name[:len(name)-len(ext)])
	}
	return docs, nil
}
