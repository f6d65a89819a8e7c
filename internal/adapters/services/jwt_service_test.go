package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterservices "notedeck/internal/adapters/services"
	"notedeck/internal/ports/services"
	"notedeck/pkg/logger"
)

const (
	testSecret = "test-secret-key"
	testUserID = "11111111-1111-1111-1111-111111111111"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestJWTService(t *testing.T) {
	ctx := testContext(t)

	t.Run("issued token validates and carries the user id", func(t *testing.T) {
		svc := adapterservices.NewJWT(testSecret)

		token, err := svc.GenerateAccessToken(ctx, testUserID, "user", time.Minute)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		userID, err := svc.ValidateAccessToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, testUserID, userID)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		svc := adapterservices.NewJWT(testSecret)

		token, err := svc.GenerateAccessToken(ctx, testUserID, "user", -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(ctx, token)
		assert.ErrorIs(t, err, services.ErrExpiredToken)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		issuer := adapterservices.NewJWT("another-secret")
		verifier := adapterservices.NewJWT(testSecret)

		token, err := issuer.GenerateAccessToken(ctx, testUserID, "user", time.Minute)
		require.NoError(t, err)

		_, err = verifier.ValidateAccessToken(ctx, token)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		svc := adapterservices.NewJWT(testSecret)

		_, err := svc.ValidateAccessToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("refresh tokens are opaque and unique", func(t *testing.T) {
		svc := adapterservices.NewJWT(testSecret)

		first, err := svc.GenerateRefreshToken(ctx)
		require.NoError(t, err)
		second, err := svc.GenerateRefreshToken(ctx)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestBCryptService(t *testing.T) {
	ctx := testContext(t)

	t.Run("hash verifies against the original password", func(t *testing.T) {
		svc := adapterservices.NewBCrypt(4)

		hash, err := svc.Hash(ctx, "correct horse battery")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery", hash)

		ok, err := svc.Verify(ctx, hash, "correct horse battery")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password fails without error", func(t *testing.T) {
		svc := adapterservices.NewBCrypt(4)

		hash, err := svc.Hash(ctx, "correct horse battery")
		require.NoError(t, err)

		ok, err := svc.Verify(ctx, hash, "wrong password")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("out of range cost falls back to the default", func(t *testing.T) {
		svc := adapterservices.NewBCrypt(99)

		hash, err := svc.Hash(ctx, "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})
}
