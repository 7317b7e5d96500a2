package usecase

import (
	"context"

	"github.com/optionmap/backend/internal/domain"
	"github.com/optionmap/backend/internal/infrastructure/logging"
	"go.uber.org/zap"
)

// OptionMappingService rewrites vendor option values on product batches to the
// catalog's canonical values.
type OptionMappingService struct {
	client domain.MappingClient
	logger *zap.Logger
}

// NewOptionMappingService creates a new option mapping service with dependencies
func NewOptionMappingService(client domain.MappingClient, logger *zap.Logger) *OptionMappingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OptionMappingService{
		client: client,
		logger: logger,
	}
}

// Transform parses a raw request body and maps every product in it.
// Flow: parse -> per product (collect -> lookup -> rewrite) -> return batch
func (s *OptionMappingService) Transform(
	ctx context.Context,
	body []byte,
) (*domain.Batch, *domain.TransformReport, error) {
	batch, err := domain.ParseBatch(body)
	if err != nil {
		return nil, nil, err
	}

	report := s.TransformBatch(ctx, batch)
	return batch, report, nil
}

// TransformBatch maps the products of an already parsed batch in order. Lookup
// failures never fail the batch; they are counted in the report.
func (s *OptionMappingService) TransformBatch(ctx context.Context, batch *domain.Batch) *domain.TransformReport {
	report := &domain.TransformReport{}
	for i := range batch.Products {
		report.Add(s.MapProduct(ctx, &batch.Products[i]))
	}

	logging.FromContext(ctx, s.logger).Info("batch transformed",
		zap.Int("products", report.Products),
		zap.Int("lookups", report.Lookups),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
		zap.Int("substituted", report.Substituted),
	)
	return report
}

// MapProduct looks up the mappings for one product and applies them in place.
// No lookup is made when the product has no option values.
func (s *OptionMappingService) MapProduct(ctx context.Context, product *domain.Product) domain.ProductResult {
	result := domain.ProductResult{
		ProductID: product.ID,
		CompanyID: product.CompanyID,
	}

	values := CollectOptionValues(product)
	if len(values) == 0 {
		return result
	}

	result.LookedUp = true
	mappings, err := s.client.FindMappings(ctx, domain.MappingQuery{
		CompanyID:     product.CompanyID,
		VendorOptions: values,
	})
	if err != nil {
		result.Err = err
		logging.FromContext(ctx, s.logger).Warn("could not fetch mapping data",
			zap.String("company_id", product.CompanyID),
			zap.String("product_id", product.ID),
			zap.Error(err),
		)
		return result
	}

	result.Substituted = NewMappingIndex(mappings).Apply(product)
	return result
}
