// Package middleware provides HTTP middleware for the ClubHub API.
//
// # Available Middleware
//
//   - Auth: JWT bearer token validation and principal extraction
//   - OptionalAuth: Like Auth but passes unauthenticated requests through
//   - RequestID: Unique request identifier on every request
//   - Logger: Structured request logging via slog
//   - Recovery: Panic recovery returning a 500 problem response
//   - CORS: Cross-origin request handling
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//	userID := middleware.GetUserID(r.Context())
//	role := middleware.GetUserRole(r.Context())
//	requestID := middleware.GetRequestID(r.Context())
//
// # Composition
//
// Chain applies middleware in order around a handler:
//
//	wrapped := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	    middleware.CORS(origins),
//	)
package middleware
