// Package handler provides HTTP request handlers for the ClubHub API.
//
// The handler package contains all HTTP endpoint implementations organized
// by domain. Each handler struct encapsulates the service dependencies
// needed to serve requests for a specific feature area.
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts the service dependency
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Service errors are mapped to RFC 9457 Problem Details via MapServiceError
//
// # Response Format
//
// Handlers use standardized response functions:
//
//   - WriteData: Single resource wrapped in a data envelope
//   - WriteCollection: List of resources with optional pagination
//   - WriteError: RFC 9457 Problem Details error response
//   - WriteNoContent: 204 for successful deletions
//
// # Authentication
//
// Mutating endpoints require authentication via JWT bearer tokens. The
// auth middleware resolves the principal and handlers read it with
// middleware.GetUserID(r.Context()).
package handler
