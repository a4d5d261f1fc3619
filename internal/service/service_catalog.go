package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pos-terminal/internal/adapter"
	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/store"
	"github.com/MKhiriev/go-pos-terminal/models"
)

//go:embed seed/catalog.json
var seedCatalog []byte

type catalogService struct {
	products store.ProductRepository
	remote   adapter.RemoteAdapter

	seed []byte

	logger *logger.Logger
}

func NewCatalogService(storages *store.Storages, remote adapter.RemoteAdapter, logger *logger.Logger) CatalogService {
	return &catalogService{
		products: storages.ProductRepository,
		remote:   remote,
		seed:     seedCatalog,
		logger:   logger,
	}
}

func (s *catalogService) RefreshFromRemote(ctx context.Context) bool {
	products, err := s.fetchActive(ctx)
	if err == nil && len(products) == 0 {
		err = fmt.Errorf("%w: remote returned no active products", ErrCatalogRefreshFailed)
	}
	if err == nil {
		err = s.products.ReplaceAll(ctx, products)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "catalogService.RefreshFromRemote").Msg("catalog was not refreshed")
		return false
	}

	s.logger.Info().Int("products", len(products)).Msg("catalog refreshed from remote")
	return true
}

// fetchActive pages through the remote catalog, keeping active products only.
func (s *catalogService) fetchActive(ctx context.Context) ([]models.LocalProduct, error) {
	var products []models.LocalProduct

	for page, fetched := 1, 0; fetched < catalogMaxRecords; page++ {
		resp, err := s.remote.FetchCatalogPage(ctx, models.CatalogPageRequest{Page: page, Limit: catalogPageSize})
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %w", ErrCatalogRefreshFailed, page, mapAdapterError(err))
		}

		for _, p := range resp.Data {
			fetched++
			if !p.Active {
				continue
			}
			products = append(products, models.LocalProduct{
				ID:      p.ID,
				Barcode: strings.TrimSpace(p.Barcode),
				Name:    p.Name,
				Price:   p.SalePrice,
				Stock:   p.Stock,
			})
			if fetched >= catalogMaxRecords {
				break
			}
		}

		if len(resp.Data) == 0 || page >= resp.TotalPages {
			break
		}
	}

	return products, nil
}

func (s *catalogService) SeedIfEmpty(ctx context.Context) error {
	if s.RefreshFromRemote(ctx) {
		return nil
	}

	count, err := s.products.Count(ctx)
	if err != nil {
		return fmt.Errorf("count local products: %w", err)
	}
	if count > 0 {
		return nil
	}

	var seed []models.LocalProduct
	if err = json.Unmarshal(s.seed, &seed); err != nil {
		return fmt.Errorf("decode bundled catalog: %w", err)
	}
	if len(seed) > catalogMaxRecords {
		seed = seed[:catalogMaxRecords]
	}

	if err = s.products.BulkPut(ctx, seed); err != nil {
		return fmt.Errorf("store bundled catalog: %w", err)
	}

	s.logger.Info().Int("products", len(seed)).Msg("catalog seeded from bundled dataset")
	return nil
}

func (s *catalogService) FindByBarcode(ctx context.Context, barcode string) (models.LocalProduct, error) {
	return s.products.FindByBarcode(ctx, barcode)
}

func (s *catalogService) Search(ctx context.Context, text string, limit int) ([]models.LocalProduct, error) {
	return s.products.Search(ctx, strings.TrimSpace(text), limit)
}

func (s *catalogService) DeductStock(ctx context.Context, lines []models.StockDeduction) error {
	if len(lines) == 0 {
		return nil
	}
	return s.products.DeductStock(ctx, lines)
}
