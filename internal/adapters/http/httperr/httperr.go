// Package httperr maps application errors onto HTTP responses.
package httperr

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"notedeck/internal/app"
	"notedeck/internal/domain/entities"
	"notedeck/internal/ports/services"
)

// Respond writes the JSON error response matching the error. Unknown
// errors read as an internal server error without leaking details.
func Respond(ctx fiber.Ctx, err error) error {
	status := statusOf(err)

	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "internal server error"
	}

	return ctx.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, entities.ErrNoteNotFound),
		errors.Is(err, entities.ErrTagNotFound),
		errors.Is(err, entities.ErrCategoryNotFound),
		errors.Is(err, entities.ErrUserNotFound):
		return fiber.StatusNotFound

	case errors.Is(err, entities.ErrTitleRequired),
		errors.Is(err, entities.ErrTagNameRequired),
		errors.Is(err, entities.ErrCategoryNameRequired),
		errors.Is(err, entities.ErrReferenceNotOwned),
		errors.Is(err, entities.ErrEmptyUsername),
		errors.Is(err, app.ErrInvalidEmail),
		errors.Is(err, app.ErrPasswordTooShort),
		errors.Is(err, app.ErrInvalidParams):
		return fiber.StatusBadRequest

	case errors.Is(err, entities.ErrEmailAlreadyExists):
		return fiber.StatusConflict

	case errors.Is(err, entities.ErrInvalidCredentials),
		errors.Is(err, entities.ErrTokenNotFound),
		errors.Is(err, entities.ErrTokenRevoked),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrExpiredToken),
		errors.Is(err, app.ErrUnauthorized):
		return fiber.StatusUnauthorized

	default:
		return fiber.StatusInternalServerError
	}
}
