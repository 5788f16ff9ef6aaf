package invoice

import (
	"invoicely/core/storage"
	"invoicely/feature/invoice/producer"
	"invoicely/feature/invoice/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the invoice feature with storage-backed producers.
// The primary provider is the lightweight extractor, the secondary the
// heavyweight one whose readings win conflicts.
func NewFeature(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, engineCfg reconcile.Config, prodCfg producer.Config) *Feature {
	primary := producer.NewStorageProducer("textract", client, bucket, prodCfg.Prefix)
	secondary := producer.NewStorageProducer("docai", client, bucket, prodCfg.Prefix)

	var store *Store
	if db != nil {
		store = NewStore(db)
	}

	svc := NewService(engineCfg, prodCfg, primary, secondary, store, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "invoice"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if f.service.store != nil {
		if err := f.service.store.Migrate(); err != nil {
			return err
		}
	}
	f.handler.RegisterRoutes(app)
	return nil
}
