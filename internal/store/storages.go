package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
)

// Storages groups the local repositories and the transaction runner that
// spans them.
type Storages struct {
	DB                  *DB
	Transactor          Transactor
	SaleRepository      SaleRepository
	SyncQueueRepository SyncQueueRepository
	ProductRepository   ProductRepository
}

// NewStorages initialises the local storage layer:
//  1. Opens the SQLite database at dsn, creating the file if needed.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wires the repositories to the connection.
func NewStorages(ctx context.Context, dsn string, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("dsn", dsn).Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, dsn, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newStorages(db, logger), nil
}

func newStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		DB:                  db,
		Transactor:          db,
		SaleRepository:      NewSaleRepository(db, logger),
		SyncQueueRepository: NewSyncQueueRepository(db, logger),
		ProductRepository:   NewProductRepository(db, logger),
	}
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	return s.DB.Close()
}
