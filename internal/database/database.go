// Package database provides the persistence abstraction for ClubHub.
//
// The Database interface wraps SurrealDB with three query methods:
//   - Query: returns multiple results (SELECT queries returning lists)
//   - QueryOne: returns a single result (SELECT by ID)
//   - Execute: no return value (CREATE/UPDATE/DELETE mutations)
//
// There is deliberately no multi-record transaction primitive here.
// Every write touches a single record; cross-record consistency (club
// rosters vs. user back-references) is maintained by ordered
// primary-write-then-propagate sequences at the service layer, with
// propagation failures surfaced as logged drift rather than rollbacks.
//
// # Error Handling
//
// Standard errors are defined for common failure cases and checked with
// errors.Is():
//   - ErrNotFound: record does not exist
//   - ErrDuplicate: unique constraint violation
//   - ErrConnection: connection issues
//   - ErrQuery: query execution failures
package database

import (
	"context"
	"errors"
)

// Standard errors for database operations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (e.g., duplicate club name).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")
)

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
