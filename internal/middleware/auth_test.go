package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clubhub/api/internal/model"
	"github.com/clubhub/api/pkg/jwt"
)

// ============================================================================
// Mock AuthService
// ============================================================================

type mockAuthService struct {
	validateFunc func(token string) (*jwt.Claims, error)
}

func (m *mockAuthService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	return m.validateFunc(token)
}

// successAuthService returns valid claims for any token
func successAuthService(userID, role string) *mockAuthService {
	return &mockAuthService{
		validateFunc: func(token string) (*jwt.Claims, error) {
			return &jwt.Claims{
				UserID: userID,
				Role:   role,
			}, nil
		},
	}
}

// errorAuthService returns the specified error
func errorAuthService(err error) *mockAuthService {
	return &mockAuthService{
		validateFunc: func(token string) (*jwt.Claims, error) {
			return nil, err
		},
	}
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTestRequest(authHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

// captureHandler captures the request context for inspection
type captureHandler struct {
	called bool
	ctx    context.Context
}

func (h *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

// ============================================================================
// Auth() Middleware Tests
// ============================================================================

func TestAuth_MissingAuthorizationHeader_ReturnsUnauthorized(t *testing.T) {
	t.Parallel()
	middleware := Auth(successAuthService("user:123", "student"))
	handler := &captureHandler{}

	req := newTestRequest("")
	rr := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if handler.called {
		t.Error("handler should not have been called")
	}
}

func TestAuth_InvalidHeaderFormat_ReturnsUnauthorized(t *testing.T) {
	t.Parallel()
	middleware := Auth(successAuthService("user:123", "student"))
	handler := &captureHandler{}

	req := newTestRequest("Basic sometoken")
	rr := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if handler.called {
		t.Error("handler should not have been called")
	}
}

func TestAuth_ExpiredToken_ReturnsUnauthorized(t *testing.T) {
	t.Parallel()
	middleware := Auth(errorAuthService(jwt.ErrTokenExpired))
	handler := &captureHandler{}

	req := newTestRequest("Bearer expired-token")
	rr := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if handler.called {
		t.Error("handler should not have been called")
	}
}

func TestAuth_ValidToken_SetsPrincipalContext(t *testing.T) {
	t.Parallel()
	middleware := Auth(successAuthService("user:123", "student"))
	handler := &captureHandler{}

	req := newTestRequest("Bearer valid-token")
	rr := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !handler.called {
		t.Fatal("expected handler to be called")
	}
	if got := GetUserID(handler.ctx); got != "user:123" {
		t.Errorf("expected user ID user:123 in context, got %q", got)
	}
	if got := GetUserRole(handler.ctx); got != model.UserRoleStudent {
		t.Errorf("expected student role in context, got %q", got)
	}
}

func TestAuth_CaseInsensitiveBearerScheme(t *testing.T) {
	t.Parallel()
	middleware := Auth(successAuthService("user:123", "student"))
	handler := &captureHandler{}

	req := newTestRequest("bearer valid-token")
	rr := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected lowercase scheme accepted, got status %d", rr.Code)
	}
}

// ============================================================================
// OptionalAuth() Middleware Tests
// ============================================================================

func TestOptionalAuth_NoHeader_PassesThrough(t *testing.T) {
	t.Parallel()
	middleware := OptionalAuth(successAuthService("user:123", "student"))
	handler := &captureHandler{}

	req := newTestRequest("")
	rr := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rr, req)

	if !handler.called {
		t.Fatal("expected handler to be called without auth")
	}
	if got := GetUserID(handler.ctx); got != "" {
		t.Errorf("expected no user ID in context, got %q", got)
	}
}

func TestOptionalAuth_InvalidToken_PassesThroughAnonymously(t *testing.T) {
	t.Parallel()
	middleware := OptionalAuth(errorAuthService(jwt.ErrInvalidSignature))
	handler := &captureHandler{}

	req := newTestRequest("Bearer bad-token")
	rr := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rr, req)

	if !handler.called {
		t.Fatal("expected handler to be called despite bad token")
	}
	if got := GetUserID(handler.ctx); got != "" {
		t.Errorf("expected no user ID in context, got %q", got)
	}
}

func TestOptionalAuth_ValidToken_SetsPrincipal(t *testing.T) {
	t.Parallel()
	middleware := OptionalAuth(successAuthService("user:123", "student"))
	handler := &captureHandler{}

	req := newTestRequest("Bearer valid-token")
	rr := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rr, req)

	if got := GetUserID(handler.ctx); got != "user:123" {
		t.Errorf("expected user ID user:123 in context, got %q", got)
	}
}

// ============================================================================
// Context Helper Tests
// ============================================================================

func TestGetUserID_EmptyContext(t *testing.T) {
	t.Parallel()
	if got := GetUserID(context.Background()); got != "" {
		t.Errorf("expected empty user ID, got %q", got)
	}
}

func TestGetUserRole_EmptyContext(t *testing.T) {
	t.Parallel()
	if got := GetUserRole(context.Background()); got != "" {
		t.Errorf("expected empty role, got %q", got)
	}
}
