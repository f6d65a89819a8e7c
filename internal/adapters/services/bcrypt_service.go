package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"notedeck/internal/ports/services"
	"notedeck/pkg/logger"
)

// ServiceBCrypt implements services.PasswordService using bcrypt.
type ServiceBCrypt struct {
	cost int
}

// NewBCrypt creates a new bcrypt password service. An out of range cost
// falls back to the library default.
func NewBCrypt(cost int) services.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBCrypt{cost: cost}
}

// Hash derives a bcrypt hash of the password.
func (s *ServiceBCrypt) Hash(ctx context.Context, password string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "BCrypt.Hash"))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		log.Error(ctx, "error hashing password", zap.Error(err))
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether the password matches the stored hash.
func (s *ServiceBCrypt) Verify(ctx context.Context, hash, password string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", "BCrypt.Verify"))

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		log.Error(ctx, "error comparing password", zap.Error(err))
		return false, fmt.Errorf("comparing password: %w", err)
	}
	return true, nil
}
