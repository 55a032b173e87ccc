// Package model defines domain entities and data structures for the ClubHub API.
//
// The model package contains all struct definitions for domain objects,
// request/response types, and error definitions. Models are used across
// all layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - User: Student account with authentication credentials and
//     denormalized clubs_joined/clubs_owned back-references
//   - Club: Student organization carrying its authoritative members roster
//   - Event: Club-run gathering with a capacity-bounded registration roster
//
// # Roles
//
// Two independent role systems exist:
//
//   - UserRole: Platform-level role (student, admin)
//   - ClubRole: Per-club roster role forming an explicit hierarchy
//     (member < vice-president < president)
//
// A platform admin holds no special standing inside a club roster.
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Club struct {
//	    ID          string `json:"id"`
//	    Name        string `json:"name"`
//	    MemberCount int    `json:"member_count"`
//	}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type   string `json:"type"`
//	    Title  string `json:"title"`
//	    Status int    `json:"status"`
//	    Detail string `json:"detail,omitempty"`
//	}
package model
