package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/models"
)

// syncQueueRepository is the SQLite-backed implementation of
// [SyncQueueRepository]. The payload is stored as JSON; the referenced sale
// id is also kept in its own indexed column for joins.
type syncQueueRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncQueueRepository constructs a [SyncQueueRepository] backed by db.
func NewSyncQueueRepository(db *DB, logger *logger.Logger) SyncQueueRepository {
	logger.Debug().Msg("creating sync queue repository")
	return &syncQueueRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *syncQueueRepository) Enqueue(ctx context.Context, items ...models.SyncQueueItem) error {
	log := logger.FromContext(ctx)

	for _, item := range items {
		payload, err := json.Marshal(item.Payload)
		if err != nil {
			return fmt.Errorf("%w: payload: %w", ErrEncodingColumn, err)
		}

		updatedAt := item.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = item.CreatedAt
		}

		_, err = r.conn(ctx).ExecContext(ctx, insertQueueItem,
			string(item.Type),
			string(payload),
			item.Payload.SaleID,
			string(item.Status),
			item.Tries,
			item.CreatedAt.UnixMilli(),
			updatedAt.UnixMilli(),
			nullMillis(item.NextAttemptAt),
			sql.NullString{String: item.LastError, Valid: item.LastError != ""},
		)
		if err != nil {
			log.Err(err).
				Str("func", "syncQueueRepository.Enqueue").
				Str("sale_id", item.Payload.SaleID).
				Msg("failed to insert queue item")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
		}
	}

	return nil
}

// ListEligible returns pending entries whose retry time has elapsed, oldest
// first, at most limit rows.
func (r *syncQueueRepository) ListEligible(ctx context.Context, now time.Time, limit int) ([]models.SyncQueueItem, error) {
	log := logger.FromContext(ctx)

	rows, err := r.conn(ctx).QueryContext(ctx, listEligibleQueueItems, now.UnixMilli(), limit)
	if err != nil {
		log.Err(err).
			Str("func", "syncQueueRepository.ListEligible").
			Msg("failed to query eligible queue items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.classify(err))
	}
	defer rows.Close()

	var items []models.SyncQueueItem
	for rows.Next() {
		item, err := scanQueueItem(rows)
		if err != nil {
			log.Err(err).
				Str("func", "syncQueueRepository.ListEligible").
				Msg("failed to scan queue row")
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating queue rows: %w", r.classify(err))
	}

	return items, nil
}

// UpdateAttempt stores the outcome of one attempt: status, tries, next
// attempt time and last error.
func (r *syncQueueRepository) UpdateAttempt(ctx context.Context, item models.SyncQueueItem) error {
	_, err := r.conn(ctx).ExecContext(ctx, updateQueueAttempt,
		string(item.Status),
		item.Tries,
		item.UpdatedAt.UnixMilli(),
		nullMillis(item.NextAttemptAt),
		sql.NullString{String: item.LastError, Valid: item.LastError != ""},
		item.ID,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncQueueRepository.UpdateAttempt").
			Int64("queue_id", item.ID).
			Msg("failed to update queue item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
	}

	return nil
}

func (r *syncQueueRepository) Delete(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildDeleteQueueItemsQuery(ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncQueueRepository.Delete").
			Int("count", len(ids)).
			Msg("failed to delete queue items")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
	}

	return nil
}

// ResetErrored moves every error entry back to pending with a fresh attempt
// budget and returns how many rows changed.
func (r *syncQueueRepository) ResetErrored(ctx context.Context, now time.Time) (int, error) {
	res, err := r.conn(ctx).ExecContext(ctx, resetErroredQueueItems, now.UnixMilli(), now.UnixMilli())
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncQueueRepository.ResetErrored").
			Msg("failed to reset errored queue items")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return int(affected), nil
}

func (r *syncQueueRepository) CountByStatus(ctx context.Context, status models.SyncQueueStatus) (int, error) {
	var count int
	if err := r.conn(ctx).QueryRowContext(ctx, countQueueByStatus, string(status)).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncQueueRepository.CountByStatus").
			Str("status", string(status)).
			Msg("failed to count queue items")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, r.classify(err))
	}

	return count, nil
}

func scanQueueItem(row rowScanner) (models.SyncQueueItem, error) {
	var (
		item          models.SyncQueueItem
		itemType      string
		payload       string
		status        string
		createdAt     int64
		updatedAt     sql.NullInt64
		nextAttemptAt sql.NullInt64
		lastError     sql.NullString
	)

	err := row.Scan(
		&item.ID,
		&itemType,
		&payload,
		&status,
		&item.Tries,
		&createdAt,
		&updatedAt,
		&nextAttemptAt,
		&lastError,
	)
	if err != nil {
		return models.SyncQueueItem{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := json.Unmarshal([]byte(payload), &item.Payload); err != nil {
		return models.SyncQueueItem{}, fmt.Errorf("%w: payload: %w", ErrEncodingColumn, err)
	}

	item.Type = models.SyncQueueType(itemType)
	item.Status = models.SyncQueueStatus(status)
	item.CreatedAt = time.UnixMilli(createdAt).UTC()
	item.UpdatedAt = item.CreatedAt
	if updatedAt.Valid {
		item.UpdatedAt = time.UnixMilli(updatedAt.Int64).UTC()
	}
	if nextAttemptAt.Valid {
		next := time.UnixMilli(nextAttemptAt.Int64).UTC()
		item.NextAttemptAt = &next
	}
	item.LastError = lastError.String

	return item, nil
}

func nullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}
