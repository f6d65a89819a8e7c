// Package services provides implementations of the service interfaces.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"notedeck/internal/ports/services"
	"notedeck/pkg/logger"
)

// ErrInvalidAlgorithm is returned when a token was signed with an
// unexpected algorithm.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims adapts between the domain identity and the JWT library.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ServiceJWT implements services.TokenService.
type ServiceJWT struct {
	secretKey []byte
}

// NewJWT creates a new JWT token service.
func NewJWT(secretKey string) services.TokenService {
	return &ServiceJWT{secretKey: []byte(secretKey)}
}

// GenerateAccessToken issues a signed access token for the user.
func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, userID, username string, ttl time.Duration) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "GenerateAccessToken"))

	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		log.Error(ctx, "error signing access token", zap.Error(err))
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// GenerateRefreshToken produces an opaque refresh token value.
func (s *ServiceJWT) GenerateRefreshToken(ctx context.Context) (string, error) {
	_ = ctx
	return uuid.New().String() + "." + uuid.New().String(), nil
}

// ValidateAccessToken verifies the token and returns the embedded user
// id.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "ValidateAccessToken"))
	log.Debug(ctx, "validating token")

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "token is expired") {
			log.Debug(ctx, "token has expired")
			return "", fmt.Errorf("validating token: %w", services.ErrExpiredToken)
		}
		log.Debug(ctx, "error parsing token", zap.Error(err))
		return "", fmt.Errorf("validating token: %w", services.ErrInvalidToken)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, "invalid token format")
		return "", fmt.Errorf("validating token: %w", services.ErrInvalidToken)
	}
	if claims.UserID == "" {
		log.Debug(ctx, "user_id claim is empty")
		return "", fmt.Errorf("validating token: %w", services.ErrInvalidToken)
	}

	log.Debug(ctx, "token validated successfully", zap.String("userID", claims.UserID))
	return claims.UserID, nil
}
