package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/clubhub/api/internal/database"
	"github.com/clubhub/api/internal/model"
	"github.com/clubhub/api/pkg/jwt"
)

// AuthUserRepository defines the user storage operations the auth
// service depends on
type AuthUserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// AuthService resolves principals. It is the thin edge of the system:
// it hashes credentials, mints tokens, and validates them into a
// stable identity and platform role for the services behind it.
type AuthService struct {
	users AuthUserRepository
	jwt   *jwt.Service
}

// NewAuthService creates a new auth service
func NewAuthService(users AuthUserRepository, jwtService *jwt.Service) *AuthService {
	return &AuthService{users: users, jwt: jwtService}
}

// Signup creates a user account and returns it with a fresh token
func (s *AuthService) Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FullName:    req.FullName,
		Email:       req.Email,
		Hash:        string(hash),
		PhoneNumber: req.PhoneNumber,
		StudentID:   req.StudentID,
		Role:        model.UserRoleStudent,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return s.issueToken(user)
}

// Login verifies credentials and returns the user with a fresh token
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// ValidateAccessToken validates a bearer token and returns its claims.
// Used by the auth middleware to resolve the request principal.
func (s *AuthService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	return s.jwt.Validate(token)
}

func (s *AuthService) issueToken(user *model.User) (*model.AuthResponse, error) {
	token, err := s.jwt.Sign(jwt.Claims{
		Subject: user.ID,
		UserID:  user.ID,
		Email:   user.Email,
		Role:    string(user.Role),
	})
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{Token: token, User: user}, nil
}
