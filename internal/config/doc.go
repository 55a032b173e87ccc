// Package config manages application configuration for the ClubHub API.
//
// Configuration is loaded from environment variables with development
// defaults, organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//
// Load never fails; Validate reports every invalid or missing value at
// once so a misconfigured deployment surfaces all problems in a single
// startup error.
package config
