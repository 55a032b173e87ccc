// Package service implements the business logic layer for the ClubHub API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of repository operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts repository dependencies
//   - Methods implement business operations with proper authorization checks
//   - Errors are returned as sentinel errors for the handler layer to map
//   - Context is passed through for cancellation and request-scoped values
//
// # Services
//
//   - AuthService: Credential hashing, token issuance and validation
//   - MembershipService: Club lifecycle, roster mutation, and the
//     propagation of denormalized user back-references
//   - RegistrationService: Event lifecycle and capacity-bounded
//     registration
//
// # Consistency
//
// Roster mutations write the primary record first and then propagate
// into user records. Propagation failures after a successful primary
// write are logged as drift and never rolled back; club deletion is the
// exception, propagating removals before the primary delete so no user
// is left referencing a club that no longer exists.
//
// # Error Handling
//
// Services return domain-specific errors defined as package-level variables:
//
//	var (
//	    ErrClubNotFound   = errors.New("club not found")
//	    ErrNotClubOfficer = errors.New("requires president or vice-president role")
//	)
package service
