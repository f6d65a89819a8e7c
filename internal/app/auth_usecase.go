package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"notedeck/internal/domain/entities"
	"notedeck/internal/ports/repositories"
	"notedeck/internal/ports/services"
	"notedeck/pkg/logger"
)

// Credential validation errors.
var (
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	msgStartRegistration = "starting user registration"
	msgUserRegistered    = "user registered successfully"
	msgLoginAttempt      = "login attempt"
	msgUserLoggedIn      = "user logged in successfully"
	msgRefreshingTokens  = "refreshing tokens"
	msgTokensRefreshed   = "tokens refreshed successfully"
	msgProcessingLogout  = "processing logout request"
	msgUserLoggedOut     = "user logged out successfully"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrGenerateTokens    = "failed to generate tokens"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyPassword    = "error verifying password"
	msgErrRevokeToken       = "failed to revoke refresh token"
	msgErrStoreToken        = "failed to store refresh token"
	msgRevokedTokenUse      = "attempt to use revoked token"
)

// AuthUseCase implements registration, login, and token lifecycle.
type AuthUseCase struct {
	userRepo        repositories.UserRepository
	tokenRepo       repositories.TokenRepository
	passwordSvc     services.PasswordService
	tokenSvc        services.TokenService
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	passwordSvc services.PasswordService,
	tokenSvc services.TokenService,
	accessTokenTTL, refreshTokenTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// Register creates a new account and returns its first token pair.
func (a *AuthUseCase) Register(ctx context.Context, email, username, password string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", "AuthUseCase.Register"), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("validating email: %w", ErrInvalidEmail)
	}
	if username == "" {
		return nil, fmt.Errorf("validating username: %w", entities.ErrEmptyUsername)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("validating password: %w", ErrPasswordTooShort)
	}

	existing, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("checking existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", entities.ErrEmailAlreadyExists)
	}

	hash, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := a.userRepo.Create(ctx, &entities.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("creating user: %w", err)
	}

	pair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err))
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", user.ID))
	return pair, nil
}

// Login verifies credentials and returns a fresh token pair. Missing
// user and wrong password both read as invalid credentials.
func (a *AuthUseCase) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", "AuthUseCase.Login"), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", entities.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("finding user: %w", err)
	}

	ok, err := a.passwordSvc.Verify(ctx, user.PasswordHash, password)
	if err != nil {
		log.Error(ctx, msgErrVerifyPassword, zap.Error(err))
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("invalid credentials: %w", entities.ErrInvalidCredentials)
	}

	pair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err))
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return pair, nil
}

// Refresh rotates a valid refresh token into a new token pair,
// revoking the old one.
func (a *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", "AuthUseCase.Refresh"))
	log.Debug(ctx, msgRefreshingTokens)

	stored, err := a.tokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		log.Debug(ctx, "invalid refresh token", zap.Error(err))
		return nil, fmt.Errorf("finding refresh token: %w", err)
	}
	if stored.Revoked {
		log.Warn(ctx, msgRevokedTokenUse, zap.String("userID", stored.UserID))
		return nil, fmt.Errorf("token revoked: %w", entities.ErrTokenRevoked)
	}
	if stored.Expired(time.Now()) {
		return nil, fmt.Errorf("token expired: %w", services.ErrExpiredToken)
	}

	user, err := a.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		log.Error(ctx, "failed to find user for refresh token", zap.Error(err))
		return nil, fmt.Errorf("finding user: %w", err)
	}

	if err := a.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		log.Error(ctx, msgErrRevokeToken, zap.Error(err))
		return nil, fmt.Errorf("revoking old token: %w", err)
	}

	pair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err))
		return nil, fmt.Errorf("generating new tokens: %w", err)
	}

	log.Debug(ctx, msgTokensRefreshed, zap.String("userID", user.ID))
	return pair, nil
}

// Logout revokes the given refresh token.
func (a *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	log := logger.Log(ctx).With(zap.String("method", "AuthUseCase.Logout"))
	log.Debug(ctx, msgProcessingLogout)

	if err := a.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		log.Error(ctx, msgErrRevokeToken, zap.Error(err))
		return fmt.Errorf("revoking token: %w", err)
	}

	log.Debug(ctx, msgUserLoggedOut)
	return nil
}

func (a *AuthUseCase) generateTokenPair(ctx context.Context, user *entities.User) (*services.TokenPair, error) {
	accessToken, err := a.tokenSvc.GenerateAccessToken(ctx, user.ID, user.Username, a.accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generating access token: %w", err)
	}

	refreshToken, err := a.tokenSvc.GenerateRefreshToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}

	if err := a.tokenRepo.Store(ctx, &entities.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(a.refreshTokenTTL),
	}); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &services.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
