// Package auth contains the HTTP handlers for account management.
package auth

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedeck/internal/adapters/http/dto"
	"notedeck/internal/adapters/http/httperr"
	"notedeck/internal/adapters/http/middleware"
	"notedeck/internal/app"
	"notedeck/pkg/logger"
)

const (
	logHandlerRegister = "handling register request"
	logHandlerLogin    = "handling login request"
	logHandlerRefresh  = "handling refresh request"
	logHandlerLogout   = "handling logout request"
	logHandlerProfile  = "handling profile request"

	errMsgInvalidRequestBody = "invalid request body"
)

// Handler serves the auth endpoints.
type Handler struct {
	authUseCase *app.AuthUseCase
	userUseCase *app.UserUseCase
}

// NewHandler creates a new auth handler.
func NewHandler(authUseCase *app.AuthUseCase, userUseCase *app.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// Register handles account creation.
func (h *Handler) Register(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Register"))
	log.Debug(userCtx, logHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, errMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidRequestBody,
		})
	}
	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	pair, err := h.authUseCase.Register(userCtx, req.Email, req.Username, req.Password)
	if err != nil {
		log.Debug(userCtx, "failed to register user", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Login handles credential sign in.
func (h *Handler) Login(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Login"))
	log.Debug(userCtx, logHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, errMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidRequestBody,
		})
	}
	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	pair, err := h.authUseCase.Login(userCtx, req.Email, req.Password)
	if err != nil {
		log.Debug(userCtx, "failed to log user in", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.JSON(dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh rotates a refresh token into a new pair.
func (h *Handler) Refresh(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Refresh"))
	log.Debug(userCtx, logHandlerRefresh)

	var req dto.RefreshRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, errMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidRequestBody,
		})
	}
	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	pair, err := h.authUseCase.Refresh(userCtx, req.RefreshToken)
	if err != nil {
		log.Debug(userCtx, "failed to refresh tokens", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.JSON(dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout revokes a refresh token.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Logout"))
	log.Debug(userCtx, logHandlerLogout)

	var req dto.RefreshRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, errMsgInvalidRequestBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMsgInvalidRequestBody,
		})
	}
	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.authUseCase.Logout(userCtx, req.RefreshToken); err != nil {
		log.Debug(userCtx, "failed to log user out", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// GetProfile returns the authenticated user's profile.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.GetProfile"))
	log.Debug(userCtx, logHandlerProfile)

	user, err := h.userUseCase.GetProfile(userCtx, middleware.UserID(ctx))
	if err != nil {
		log.Debug(userCtx, "failed to load profile", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return ctx.JSON(dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}
