// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Timestamps are stored as unix milliseconds.
const (
	saleColumns = `
			id,
			ticket_number,
			sold_at,
			items,
			total,
			total_with_discount,
			payment_method,
			payments,
			cash_tendered,
			change_given,
			cashier,
			cash_session_id,
			synced`

	insertSale = `
		INSERT INTO sales (` + saleColumns + `
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	getSale = `
		SELECT` + saleColumns + `
		FROM sales
		WHERE id = ?;`

	listRecentSales = `
		SELECT` + saleColumns + `
		FROM sales
		ORDER BY sold_at DESC, id DESC
		LIMIT ?;`

	listSyncedWithoutQueueEntry = `
		SELECT s.id
		FROM sales s
		WHERE s.synced = 1
		  AND s.confirmed_at IS NULL
		  AND NOT EXISTS (SELECT 1 FROM sync_queue q WHERE q.sale_id = s.id)
		ORDER BY s.sold_at, s.id;`

	queueColumns = `
			id,
			type,
			payload,
			status,
			tries,
			created_at,
			updated_at,
			next_attempt_at,
			last_error`

	insertQueueItem = `
		INSERT INTO sync_queue (
			type,
			payload,
			sale_id,
			status,
			tries,
			created_at,
			updated_at,
			next_attempt_at,
			last_error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`

	listEligibleQueueItems = `
		SELECT` + queueColumns + `
		FROM sync_queue
		WHERE status = 'pending'
		  AND (next_attempt_at IS NULL OR next_attempt_at <= ?)
		ORDER BY created_at, id
		LIMIT ?;`

	updateQueueAttempt = `
		UPDATE sync_queue
		SET status = ?,
			tries = ?,
			updated_at = ?,
			next_attempt_at = ?,
			last_error = ?
		WHERE id = ?;`

	resetErroredQueueItems = `
		UPDATE sync_queue
		SET status = 'pending',
			tries = 0,
			updated_at = ?,
			next_attempt_at = ?,
			last_error = NULL
		WHERE status = 'error';`

	countQueueByStatus = `
		SELECT COUNT(*) FROM sync_queue WHERE status = ?;`

	upsertProduct = `
		INSERT INTO products (id, barcode, name, price, stock)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			barcode = excluded.barcode,
			name = excluded.name,
			price = excluded.price,
			stock = excluded.stock;`

	deleteAllProducts = `
		DELETE FROM products;`

	countProducts = `
		SELECT COUNT(*) FROM products;`

	findProductByBarcode = `
		SELECT id, barcode, name, price, stock
		FROM products
		WHERE barcode = ?
		ORDER BY id
		LIMIT 1;`

	deductProductStock = `
		UPDATE products
		SET stock = MAX(stock - ?, 0)
		WHERE id = ?;`
)

// buildSelectSalesByIDsQuery builds the point lookup for a batch of sales.
func buildSelectSalesByIDsQuery(ids []string) (string, []any, error) {
	return sq.Select(strings.Fields(strings.ReplaceAll(saleColumns, ",", ""))...).
		From("sales").
		Where(sq.Eq{"id": ids}).
		ToSql()
}

// buildSetSyncedQuery builds the flag update for a batch of sales. A nil
// confirmedAt clears the remote confirmation trail.
func buildSetSyncedQuery(synced bool, confirmedAt *int64, ids []string) (string, []any, error) {
	return sq.Update("sales").
		Set("synced", synced).
		Set("confirmed_at", confirmedAt).
		Where(sq.Eq{"id": ids}).
		ToSql()
}

// buildDeleteQueueItemsQuery builds the delete for a batch of queue rows.
func buildDeleteQueueItemsQuery(ids []int64) (string, []any, error) {
	return sq.Delete("sync_queue").
		Where(sq.Eq{"id": ids}).
		ToSql()
}

// buildSearchProductsQuery builds the case-insensitive substring search on
// name or barcode. An empty text matches every product.
func buildSearchProductsQuery(text string, limit int) (string, []any, error) {
	query := sq.Select("id", "barcode", "name", "price", "stock").
		From("products")

	if text = foldText(strings.TrimSpace(text)); text != "" {
		pattern := "%" + escapeLike(text) + "%"
		query = query.Where(sq.Or{
			sq.Expr(`fold(name) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`fold(barcode) LIKE ? ESCAPE '\'`, pattern),
		})
	}

	return query.
		OrderBy("fold(name)", "id").
		Limit(uint64(limit)).
		ToSql()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
