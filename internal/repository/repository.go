// Package repository provides data access interfaces and implementations
// for the music catalog service.
//
// # Overview
//
// This package defines repository interfaces and their PostgreSQL implementations
// following the repository pattern to abstract data persistence from business logic.
//
// # Repository Interfaces
//
// The package provides the following repository interfaces:
//
//   - PublisherRepository: Manages publishers, the deduplication target
//   - PublicationRepository: Manages published editions and publisher repointing
//   - WorkRepository: Manages musical works and their contributors
//   - PersonRepository: Manages composers, lyricists and other contributors
//   - CategoryRepository: Manages the per-booklet work categories
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use by multiple goroutines.
// The underlying pgxpool handles connection pooling and synchronization.
//
// # Error Handling
//
// All methods return domain-specific errors from the domain package.
// Wrap database errors with context using fmt.Errorf with %w verb.
// Common errors include:
//
//   - domain.ErrNotFound: Resource does not exist
//   - domain.ErrAlreadyExists: Unique constraint violation
//   - domain.ErrInvalidInput: Invalid parameters provided
//
// # Transactions
//
// Use the DBTX interface to support both pool and transaction contexts.
// Pass transaction from database.DB.WithTransaction for atomic operations.
package repository

import (
	"github.com/helixir/music-catalog-service/internal/database"
)

// DBTX is the database interface supporting both pool and transaction contexts.
// Repository constructors accept DBTX so the same implementation works with a
// direct pool connection, a pgx.Tx, or a pgxmock pool in tests.
type DBTX = database.DBTX

// PostgreSQL error codes checked by the repositories.
const (
	pgUniqueViolation     = "23505" // unique_violation
	pgForeignKeyViolation = "23503" // foreign_key_violation
)

// Filter pagination defaults and limits.
const (
	defaultFilterLimit = 100
	maxFilterLimit     = 1000
)

// applyPaginationDefaults normalizes limit and offset values for filter queries.
// It clamps limit to [1, maxFilterLimit] and ensures offset >= 0.
func applyPaginationDefaults(limit, offset *int) {
	if *limit <= 0 {
		*limit = defaultFilterLimit
	}
	if *limit > maxFilterLimit {
		*limit = maxFilterLimit
	}
	if *offset < 0 {
		*offset = 0
	}
}
