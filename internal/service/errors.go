package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here so error
// handling in handlers stays predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// ===== Membership Errors =====
var (
	ErrClubNotFound      = errors.New("club not found")
	ErrClubNameExists    = errors.New("a club with this name already exists")
	ErrNotClubOfficer    = errors.New("requires president or vice-president role")
	ErrNotClubOwner      = errors.New("only the club owner can perform this action")
	ErrAlreadyClubMember = errors.New("user is already a member of this club")
	ErrCannotRemoveOwner = errors.New("the club owner cannot be removed from the roster")
	ErrUserIDRequired    = errors.New("user ID is required")
)

// ===== Registration Errors =====
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrNotEventCreator      = errors.New("only the event creator can perform this action")
	ErrEventFull            = errors.New("event capacity reached")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrRegistrationNotFound = errors.New("no active registration for this event")
)
