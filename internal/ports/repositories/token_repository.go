package repositories

import (
	"context"

	"notedeck/internal/domain/entities"
)

// TokenRepository stores refresh tokens for revocation checks.
type TokenRepository interface {
	Store(ctx context.Context, token *entities.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*entities.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
