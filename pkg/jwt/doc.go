// Package jwt provides JSON Web Token utilities for the ClubHub API.
//
// The jwt package handles RS256 token signing, validation, and claims
// extraction for authentication.
//
// # Token Generation
//
// Sign tokens for authenticated users:
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    PublicKeyPath:  "./keys/public.pem",
//	    Issuer:         "api.clubhub.dev",
//	    ExpirationMins: 60,
//	})
//
//	token, err := service.Sign(jwt.Claims{
//	    Subject: userID,
//	    UserID:  userID,
//	    Role:    "student",
//	})
//
// # Token Validation
//
// Validate and extract claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid or expired token
//	}
//	userID := claims.UserID
//
// A service constructed with only a public key supports validation-only
// deployments.
//
// # Claims
//
// Standard registered claims plus application claims:
//
//	type Claims struct {
//	    Issuer    string `json:"iss,omitempty"`
//	    Subject   string `json:"sub,omitempty"`
//	    ExpiresAt int64  `json:"exp,omitempty"`
//	    UserID    string `json:"user_id,omitempty"`
//	    Email     string `json:"email,omitempty"`
//	    Role      string `json:"role,omitempty"`
//	}
package jwt
