package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notedeck/internal/ports/services"
	"notedeck/pkg/logger"
)

// UserIDKey is the locals key under which the authenticated user id is
// stored.
const UserIDKey = "userID"

const (
	errNoAuthHeader       = "no authorization header provided"
	errInvalidTokenFormat = "invalid token format"
	errInvalidToken       = "invalid or expired token"
)

// NewAuthMiddleware validates the bearer token and stores the
// authenticated user id in locals.
func NewAuthMiddleware(tokenSvc services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, errNoAuthHeader)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": errNoAuthHeader,
			})
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			log.Debug(requestCtx, errInvalidTokenFormat)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": errInvalidTokenFormat,
			})
		}

		userID, err := tokenSvc.ValidateAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, errInvalidToken, zap.Error(err))
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": errInvalidToken,
			})
		}

		ctx.Locals(UserIDKey, userID)
		return ctx.Next()
	}
}

// RequestContext returns the request scoped context stored by the
// logger middleware, falling back to the raw fiber context.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(ContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}

// UserID returns the authenticated user id stored by the auth
// middleware, or an empty string when the request is anonymous.
func UserID(ctx fiber.Ctx) string {
	if userID, ok := ctx.Locals(UserIDKey).(string); ok {
		return userID
	}
	return ""
}
