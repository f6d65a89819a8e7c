// Package services defines the service interfaces used by the usecases.
package services

import (
	"context"
	"errors"
	"time"
)

// Token validation errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenPair bundles the credentials returned by authentication flows.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenService issues and validates access tokens.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID, username string, ttl time.Duration) (string, error)
	GenerateRefreshToken(ctx context.Context) (string, error)
	// ValidateAccessToken returns the user id embedded in a valid token.
	ValidateAccessToken(ctx context.Context, token string) (string, error)
}
