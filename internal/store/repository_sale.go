package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/models"
)

// saleRepository is the SQLite-backed implementation of [SaleRepository].
// Line items and the payment breakdown are stored as JSON text columns.
type saleRepository struct {
	*DB
	logger *logger.Logger
}

// NewSaleRepository constructs a [SaleRepository] backed by db.
func NewSaleRepository(db *DB, logger *logger.Logger) SaleRepository {
	logger.Debug().Msg("creating sale repository")
	return &saleRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveSale inserts a new sale. A second sale with the same id yields
// [ErrSaleAlreadyExists].
func (r *saleRepository) SaveSale(ctx context.Context, sale models.SaleRecord) error {
	log := logger.FromContext(ctx)

	items, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("%w: items: %w", ErrEncodingColumn, err)
	}

	var payments sql.NullString
	if len(sale.Payments) > 0 {
		raw, err := json.Marshal(sale.Payments)
		if err != nil {
			return fmt.Errorf("%w: payments: %w", ErrEncodingColumn, err)
		}
		payments = sql.NullString{String: string(raw), Valid: true}
	}

	_, err = r.conn(ctx).ExecContext(ctx, insertSale,
		sale.ID,
		sale.TicketNumber,
		sale.SoldAt.UnixMilli(),
		string(items),
		sale.Total,
		sale.TotalWithDiscount,
		string(sale.PaymentMethod),
		payments,
		nullDecimal(sale.CashTendered),
		nullDecimal(sale.Change),
		sale.Cashier,
		nullString(sale.CashSessionID),
		sale.Synced,
	)
	if err != nil {
		log.Err(err).
			Str("func", "saleRepository.SaveSale").
			Str("sale_id", sale.ID).
			Msg("failed to insert sale")

		if isUniqueViolation(err) {
			return ErrSaleAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
	}

	return nil
}

// GetSale returns the sale with the given id or [ErrSaleNotFound].
func (r *saleRepository) GetSale(ctx context.Context, id string) (models.SaleRecord, error) {
	log := logger.FromContext(ctx)

	sale, err := scanSale(r.conn(ctx).QueryRowContext(ctx, getSale, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SaleRecord{}, ErrSaleNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "saleRepository.GetSale").
			Str("sale_id", id).
			Msg("failed to read sale")
		return models.SaleRecord{}, r.classify(err)
	}

	return sale, nil
}

// GetSalesByIDs resolves a batch of ids. Ids without a sale are absent from
// the returned map.
func (r *saleRepository) GetSalesByIDs(ctx context.Context, ids []string) (map[string]models.SaleRecord, error) {
	log := logger.FromContext(ctx)

	result := make(map[string]models.SaleRecord, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query, args, err := buildSelectSalesByIDsQuery(ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "saleRepository.GetSalesByIDs").
			Int("count", len(ids)).
			Msg("failed to query sales")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.classify(err))
	}
	defer rows.Close()

	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			log.Err(err).
				Str("func", "saleRepository.GetSalesByIDs").
				Msg("failed to scan sale row")
			return nil, err
		}
		result[sale.ID] = sale
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", r.classify(err))
	}

	return result, nil
}

// MarkSynced flips the synced flag of the given sales to true and records
// when the remote side confirmed them.
func (r *saleRepository) MarkSynced(ctx context.Context, confirmedAt time.Time, ids ...string) error {
	at := confirmedAt.UnixMilli()
	return r.setSynced(ctx, true, &at, ids)
}

// MarkUnsynced flips the synced flag of the given sales back to false and
// drops their confirmation trail.
func (r *saleRepository) MarkUnsynced(ctx context.Context, ids ...string) error {
	return r.setSynced(ctx, false, nil, ids)
}

func (r *saleRepository) setSynced(ctx context.Context, synced bool, confirmedAt *int64, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildSetSyncedQuery(synced, confirmedAt, ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "saleRepository.setSynced").
			Bool("synced", synced).
			Int("count", len(ids)).
			Msg("failed to update synced flag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
	}

	return nil
}

// ListSyncedWithoutQueueEntry returns ids of sales flagged as synced that
// have neither a remote confirmation nor a queue row.
func (r *saleRepository) ListSyncedWithoutQueueEntry(ctx context.Context) ([]string, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, listSyncedWithoutQueueEntry)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "saleRepository.ListSyncedWithoutQueueEntry").
			Msg("failed to query synced sales")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.classify(err))
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", r.classify(err))
	}

	return ids, nil
}

// ListRecent returns the newest sales first, for reprint and audit.
func (r *saleRepository) ListRecent(ctx context.Context, limit int) ([]models.SaleRecord, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, listRecentSales, limit)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "saleRepository.ListRecent").
			Msg("failed to query recent sales")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.classify(err))
	}
	defer rows.Close()

	sales := make([]models.SaleRecord, 0, limit)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", r.classify(err))
	}

	return sales, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSale(row rowScanner) (models.SaleRecord, error) {
	var (
		sale          models.SaleRecord
		soldAt        int64
		items         string
		paymentMethod string
		payments      sql.NullString
		cashTendered  decimal.NullDecimal
		change        decimal.NullDecimal
		cashSessionID sql.NullString
	)

	err := row.Scan(
		&sale.ID,
		&sale.TicketNumber,
		&soldAt,
		&items,
		&sale.Total,
		&sale.TotalWithDiscount,
		&paymentMethod,
		&payments,
		&cashTendered,
		&change,
		&sale.Cashier,
		&cashSessionID,
		&sale.Synced,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SaleRecord{}, err
	}
	if err != nil {
		return models.SaleRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := json.Unmarshal([]byte(items), &sale.Items); err != nil {
		return models.SaleRecord{}, fmt.Errorf("%w: items: %w", ErrEncodingColumn, err)
	}
	if payments.Valid && payments.String != "" {
		if err := json.Unmarshal([]byte(payments.String), &sale.Payments); err != nil {
			return models.SaleRecord{}, fmt.Errorf("%w: payments: %w", ErrEncodingColumn, err)
		}
	}

	sale.SoldAt = time.UnixMilli(soldAt).UTC()
	sale.PaymentMethod = models.PaymentMethod(paymentMethod)
	if cashTendered.Valid {
		sale.CashTendered = &cashTendered.Decimal
	}
	if change.Valid {
		sale.Change = &change.Decimal
	}
	if cashSessionID.Valid {
		sale.CashSessionID = &cashSessionID.String
	}

	return sale, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
