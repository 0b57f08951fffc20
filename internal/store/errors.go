package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAadharAlreadyExists is returned when a user with the same Aadhar
	// Card Number is already registered.
	ErrAadharAlreadyExists = errors.New("aadhar card number already exists")

	// ErrAdminAlreadyExists is returned when saving a second user with the
	// admin role.
	ErrAdminAlreadyExists = errors.New("admin user already exists")

	// ErrUserNotFound is returned when a query expected to match one user
	// produces an empty result.
	ErrUserNotFound = errors.New("no user was found")

	// ErrCandidateNotFound is returned when the targeted candidate does not
	// exist.
	ErrCandidateNotFound = errors.New("candidate was not found")

	// ErrAlreadyVoted is returned when a user who has already cast a ballot
	// tries to vote again.
	ErrAlreadyVoted = errors.New("user has already voted")

	// ErrUnsupportedDSN is returned by [NewStorages] when the DSN scheme does
	// not match any backend.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a database operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
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
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrMongoOperation wraps any unexpected MongoDB driver error.
	ErrMongoOperation = errors.New("mongo operation failed")
)
