package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/models"
)

// defaultSearchLimit caps a search when the caller gives no limit.
const defaultSearchLimit = 200

type productRepository struct {
	*DB
	logger *logger.Logger
}

// NewProductRepository constructs a [ProductRepository] backed by db.
func NewProductRepository(db *DB, logger *logger.Logger) ProductRepository {
	logger.Debug().Msg("creating product repository")
	return &productRepository{
		DB:     db,
		logger: logger,
	}
}

// ReplaceAll overwrites the whole catalog in one transaction.
func (r *productRepository) ReplaceAll(ctx context.Context, products []models.LocalProduct) error {
	return r.InTx(ctx, func(ctx context.Context) error {
		if _, err := r.conn(ctx).ExecContext(ctx, deleteAllProducts); err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "productRepository.ReplaceAll").
				Msg("failed to clear products")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
		}

		return r.BulkPut(ctx, products)
	})
}

// BulkPut upserts products in one transaction.
func (r *productRepository) BulkPut(ctx context.Context, products []models.LocalProduct) error {
	return r.InTx(ctx, func(ctx context.Context) error {
		for _, p := range products {
			_, err := r.conn(ctx).ExecContext(ctx, upsertProduct,
				p.ID,
				strings.TrimSpace(p.Barcode),
				p.Name,
				p.Price,
				p.Stock,
			)
			if err != nil {
				logger.FromContext(ctx).Err(err).
					Str("func", "productRepository.BulkPut").
					Str("product_id", p.ID).
					Msg("failed to upsert product")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
			}
		}
		return nil
	})
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.conn(ctx).QueryRowContext(ctx, countProducts).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "productRepository.Count").
			Msg("failed to count products")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, r.classify(err))
	}
	return count, nil
}

// FindByBarcode looks a product up through the barcode index.
func (r *productRepository) FindByBarcode(ctx context.Context, barcode string) (models.LocalProduct, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return models.LocalProduct{}, ErrProductNotFound
	}

	product, err := scanProduct(r.conn(ctx).QueryRowContext(ctx, findProductByBarcode, barcode))
	if errors.Is(err, sql.ErrNoRows) {
		return models.LocalProduct{}, ErrProductNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "productRepository.FindByBarcode").
			Str("barcode", barcode).
			Msg("failed to read product")
		return models.LocalProduct{}, fmt.Errorf("%w: %w", ErrScanningRow, r.classify(err))
	}

	return product, nil
}

// Search matches text against name or barcode, ignoring case. Results are
// ordered by name then id so a given table state always yields the same
// page.
func (r *productRepository) Search(ctx context.Context, text string, limit int) ([]models.LocalProduct, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	query, args, err := buildSearchProductsQuery(text, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "productRepository.Search").
			Msg("failed to search products")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.classify(err))
	}
	defer rows.Close()

	products := make([]models.LocalProduct, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", r.classify(err))
	}

	return products, nil
}

// DeductStock lowers stock by the sold quantities. Stock never goes below
// zero; unknown products are ignored.
func (r *productRepository) DeductStock(ctx context.Context, lines []models.StockDeduction) error {
	return r.InTx(ctx, func(ctx context.Context) error {
		for _, line := range lines {
			if line.Quantity <= 0 {
				continue
			}
			if _, err := r.conn(ctx).ExecContext(ctx, deductProductStock, line.Quantity, line.ProductID); err != nil {
				logger.FromContext(ctx).Err(err).
					Str("func", "productRepository.DeductStock").
					Str("product_id", line.ProductID).
					Msg("failed to deduct stock")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
			}
		}
		return nil
	})
}

func scanProduct(row rowScanner) (models.LocalProduct, error) {
	var p models.LocalProduct
	if err := row.Scan(&p.ID, &p.Barcode, &p.Name, &p.Price, &p.Stock); err != nil {
		return models.LocalProduct{}, err
	}
	return p, nil
}
