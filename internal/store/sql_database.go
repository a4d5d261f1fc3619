package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/migrations"
)

// DB wraps the connection pool of the local database together with the
// driver error classifier.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// executor is the subset of *sql.DB and *sql.Tx used by repositories.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// Migrate applies pending schema migrations.
func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB); err != nil {
		return db.classify(err)
	}
	return nil
}

// InTx runs fn inside one transaction. Repositories called with the context
// passed to fn join that transaction. A nested InTx call reuses the outer
// transaction, so only the outermost call commits.
func (db *DB) InTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "DB.InTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, db.classify(err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Err(rbErr).Str("func", "DB.InTx").Msg("failed to rollback transaction")
			}
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "DB.InTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, db.classify(err))
	}

	return nil
}

// conn returns the transaction carried by ctx, or the pool.
func (db *DB) conn(ctx context.Context) executor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db.DB
}

// classify marks err with [ErrStorageUnavailable] when the classifier says the
// medium is gone. Other errors are returned unchanged.
func (db *DB) classify(err error) error {
	if err == nil || errors.Is(err, ErrStorageUnavailable) {
		return err
	}

	classificator := db.errorClassificator
	if classificator == nil {
		classificator = NewSQLiteErrorClassifier()
	}

	if classificator.Classify(err) == Unavailable {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return err
}
