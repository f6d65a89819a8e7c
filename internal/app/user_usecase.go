package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"notedeck/internal/domain/entities"
	"notedeck/internal/ports/repositories"
	"notedeck/pkg/logger"
)

// UserUseCase exposes read access to user profiles.
type UserUseCase struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo repositories.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// GetProfile returns the profile of the given user.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserUseCase.GetProfile"))

	if userID == "" {
		return nil, ErrUnauthorized
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, "failed to get user profile", zap.Error(err))
		return nil, fmt.Errorf("getting user profile: %w", err)
	}
	return user, nil
}
