package store

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// ErrorClassification is the result type returned by [ErrorClassificator.Classify].
// It tells the caller whether a failed operation is worth retrying, or whether
// the storage medium itself is gone.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors and
	// constraint violations.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the operation may succeed if attempted again
	// (the database was busy or locked by another connection).
	Retryable

	// Unavailable indicates that the durable medium cannot be used.
	Unavailable
)

// SQLiteErrorClassifier implements [ErrorClassificator] for mattn/go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. It unwraps err as a sqlite3.Error
// and delegates to [ClassifySQLiteError]. A closed connection pool is
// [Unavailable]; anything else is [NonRetryable].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return ClassifySQLiteError(sqliteErr)
	}

	// database/sql does not export its closed-pool error.
	if strings.Contains(err.Error(), "database is closed") {
		return Unavailable
	}

	return NonRetryable
}

// ClassifySQLiteError maps a sqlite3.Error to an [ErrorClassification] based
// on its primary result code.
// See https://www.sqlite.org/rescode.html for the full list.
//
// Unavailable codes: CANTOPEN, IOERR, NOTADB, READONLY, FULL, CORRUPT, PERM.
// Retryable codes: BUSY, LOCKED.
// Everything else, including CONSTRAINT, is [NonRetryable].
func ClassifySQLiteError(sqliteErr sqlite3.Error) ErrorClassification {
	switch sqliteErr.Code {
	case sqlite3.ErrCantOpen,
		sqlite3.ErrIoErr,
		sqlite3.ErrNotADB,
		sqlite3.ErrReadonly,
		sqlite3.ErrFull,
		sqlite3.ErrCorrupt,
		sqlite3.ErrPerm:
		return Unavailable

	case sqlite3.ErrBusy,
		sqlite3.ErrLocked:
		return Retryable
	}

	return NonRetryable
}

// isUniqueViolation reports whether err is a primary key or unique
// constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
