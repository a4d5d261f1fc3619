package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrStorageUnavailable is returned (wrapped) when the durable medium
	// cannot be used at all: the file cannot be opened, the disk is full or
	// read-only, the file is not a database, or the pool was closed. The
	// sync engine skips its cycle on this error instead of touching state.
	ErrStorageUnavailable = errors.New("local storage is unavailable")

	// ErrSaleAlreadyExists is returned when a sale with the same client id
	// was already recorded.
	ErrSaleAlreadyExists = errors.New("sale already exists")

	// ErrSaleNotFound is returned when a point lookup by sale id matches
	// nothing.
	ErrSaleNotFound = errors.New("sale was not found")

	// ErrProductNotFound is returned when a barcode lookup matches nothing.
	ErrProductNotFound = errors.New("product was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a result
	// row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrEncodingColumn is returned when a JSON column cannot be encoded or
	// decoded.
	ErrEncodingColumn = errors.New("failed to encode json column")
)
