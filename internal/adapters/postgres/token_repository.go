package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notedeck/internal/domain/entities"
	"notedeck/internal/ports/repositories"
	"notedeck/pkg/logger"
)

// TokenRepository implements repositories.TokenRepository over Postgres.
type TokenRepository struct {
	pool PgxPoolInterface
}

// NewTokenRepository creates a new refresh token repository.
func NewTokenRepository(pool PgxPoolInterface) repositories.TokenRepository {
	return &TokenRepository{pool: pool}
}

// Store saves a refresh token.
func (r *TokenRepository) Store(ctx context.Context, token *entities.RefreshToken) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "Store"))

	_, err := r.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token, expires_at)
         VALUES ($1, $2, $3)`,
		token.UserID, token.Token, token.ExpiresAt,
	)
	if err != nil {
		log.Error(ctx, "error storing refresh token", zap.Error(err))
		return fmt.Errorf("error storing refresh token: %w", err)
	}
	return nil
}

// FindByToken looks a refresh token up by its opaque value.
func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*entities.RefreshToken, error) {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "FindByToken"))

	var stored entities.RefreshToken
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at, revoked, created_at
         FROM refresh_tokens
         WHERE token = $1`,
		token,
	).Scan(&stored.ID, &stored.UserID, &stored.Token, &stored.ExpiresAt, &stored.Revoked, &stored.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "refresh token not found")
			return nil, entities.ErrTokenNotFound
		}
		log.Error(ctx, "error finding refresh token", zap.Error(err))
		return nil, fmt.Errorf("error querying refresh token: %w", err)
	}
	return &stored, nil
}

// Revoke marks the refresh token as revoked.
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "Revoke"))

	result, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = true WHERE token = $1`,
		token,
	)
	if err != nil {
		log.Error(ctx, "error revoking refresh token", zap.Error(err))
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "refresh token not found")
		return entities.ErrTokenNotFound
	}
	return nil
}

// RevokeAllForUser marks every refresh token of the user as revoked.
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "RevokeAllForUser"))

	_, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = true WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		log.Error(ctx, "error revoking user tokens", zap.Error(err))
		return fmt.Errorf("error revoking user tokens: %w", err)
	}
	return nil
}
