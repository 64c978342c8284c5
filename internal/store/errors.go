package store

import "errors"

// Sentinel errors returned by repository and adapter methods to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrSettingNotFound is returned when a settings key does not exist.
	ErrSettingNotFound = errors.New("setting was not found")

	// ErrItemNotFound is returned when a get targets an item (identified by
	// id and kind) that does not exist in the local store.
	ErrItemNotFound = errors.New("item was not found")

	// ErrItemExcluded is returned when a read targets a key the exclusion
	// policy keeps out of sync. Excluded keys are invisible to the sync
	// engine by contract.
	ErrItemExcluded = errors.New("item is excluded from sync")

	// ErrCorruptItem marks a row whose payload cannot be read or decoded.
	// Enumeration skips corrupt rows with a warning instead of aborting;
	// only a direct Get surfaces the error to the caller.
	ErrCorruptItem = errors.New("item row is corrupt")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
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

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
