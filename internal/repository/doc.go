// Package repository implements the data access layer for the ClubHub API.
//
// The repository package contains all database operations using SurrealDB.
// Each repository struct handles CRUD operations for a specific domain entity.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, GetByID, Update, Delete, etc.)
//   - SurrealQL queries are used for all database interactions
//   - Results are parsed and mapped to model structs
//
// # Query Patterns
//
// Common query patterns used:
//
//   - Parameterized queries with $variable syntax for security
//   - type::record() for safe ID handling
//   - time::now() for automatic timestamps
//   - array::union() for idempotent back-reference writes
//
// # Roster Writes
//
// Club members and event participants are stored inline on their parent
// record. UpdateRoster replaces the whole roster and its derived count
// in one single-record write, so concurrent roster mutations resolve
// last-writer-wins.
//
// # Example Usage
//
//	repo := NewClubRepository(db)
//	club, err := repo.GetByID(ctx, "club:abc123")
//	if err != nil {
//	    return err
//	}
//	if club == nil {
//	    // Not found
//	}
package repository
