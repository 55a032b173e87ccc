package model

import (
	"regexp"
	"time"
)

// UserRole represents the platform-level role of a user.
// It is distinct from ClubRole: a platform admin holds no special
// standing inside any club roster.
type UserRole string

const (
	UserRoleStudent UserRole = "student" // Default role
	UserRoleAdmin   UserRole = "admin"   // Platform administration
)

// IsValid returns true if the role is a valid user role
func (r UserRole) IsValid() bool {
	return r == UserRoleStudent || r == UserRoleAdmin
}

// User represents a student account.
//
// ClubsJoined and ClubsOwned are denormalized back-references maintained
// by propagation writes; the authoritative membership record is the
// members roster on each Club.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Hash         string    `json:"-"` // Never expose password hash
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	StudentID    *string   `json:"student_id,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"is_active"`
	ClubsJoined  []string  `json:"clubs_joined"`
	ClubsOwned   []string  `json:"clubs_owned"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

// IsAdmin returns true if the user has the platform admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// Validation bounds for user fields
const (
	MinFullNameLength = 3
	MaxFullNameLength = 50
	MinPasswordLength = 6
	MaxBioLength      = 500
)

var (
	emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// SignupRequest represents a request to create a user account
type SignupRequest struct {
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	StudentID   *string `json:"student_id,omitempty"`
}

// Validate checks the signup request fields
func (r *SignupRequest) Validate() []FieldError {
	var errs []FieldError

	if len(r.FullName) < MinFullNameLength {
		errs = append(errs, FieldError{Field: "full_name", Message: "full name must be at least 3 characters long"})
	} else if len(r.FullName) > MaxFullNameLength {
		errs = append(errs, FieldError{Field: "full_name", Message: "full name must not exceed 50 characters"})
	}
	if !emailPattern.MatchString(r.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "please provide a valid email address"})
	}
	if len(r.Password) < MinPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 6 characters long"})
	}
	if r.PhoneNumber != nil && !phonePattern.MatchString(*r.PhoneNumber) {
		errs = append(errs, FieldError{Field: "phone_number", Message: "please provide a valid phone number"})
	}

	return errs
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login request fields
func (r *LoginRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}

	return errs
}

// AuthResponse is returned on successful signup or login
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
