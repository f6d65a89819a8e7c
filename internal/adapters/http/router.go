// Package http contains the HTTP server wiring.
package http

import (
	"github.com/gofiber/fiber/v3"

	"notedeck/internal/adapters/http/auth"
	"notedeck/internal/adapters/http/categories"
	"notedeck/internal/adapters/http/middleware"
	"notedeck/internal/adapters/http/notes"
	"notedeck/internal/adapters/http/share"
	"notedeck/internal/adapters/http/tags"
	"notedeck/internal/app"
	"notedeck/internal/ports/services"
)

// UseCases bundles the application layer handed to the router.
type UseCases struct {
	Auth     *app.AuthUseCase
	User     *app.UserUseCase
	Note     *app.NoteUseCase
	Tag      *app.TagUseCase
	Category *app.CategoryUseCase
}

// SetupRouter registers the middleware chain and every route.
func SetupRouter(fiberApp *fiber.App, useCases UseCases, tokenSvc services.TokenService) {
	authHandler := auth.NewHandler(useCases.Auth, useCases.User)
	notesHandler := notes.NewHandler(useCases.Note)
	tagsHandler := tags.NewHandler(useCases.Tag)
	categoriesHandler := categories.NewHandler(useCases.Category)
	shareHandler := share.NewHandler(useCases.Note)

	fiberApp.Use(middleware.NewLoggerMiddleware())
	fiberApp.Use(middleware.NewRecoveryMiddleware())

	fiberApp.Get("/healthz", func(ctx fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	apiV1 := fiberApp.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)

	// The share view is public on purpose; GetShared rejects private
	// notes itself.
	apiV1.Get("/share/:note_id", shareHandler.GetSharedNote)

	requireAuth := middleware.NewAuthMiddleware(tokenSvc)

	userRoutes := apiV1.Group("/user")
	userRoutes.Use(requireAuth)
	userRoutes.Get("/profile", authHandler.GetProfile)

	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Use(requireAuth)
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/:note_id", notesHandler.GetNote)
	notesRoutes.Put("/:note_id", notesHandler.UpdateNote)
	notesRoutes.Patch("/:note_id/visibility", notesHandler.SetVisibility)
	notesRoutes.Delete("/:note_id", notesHandler.DeleteNote)

	tagsRoutes := apiV1.Group("/tags")
	tagsRoutes.Use(requireAuth)
	tagsRoutes.Get("/", tagsHandler.ListTags)
	tagsRoutes.Post("/", tagsHandler.CreateTag)
	tagsRoutes.Patch("/:tag_id", tagsHandler.RenameTag)
	tagsRoutes.Delete("/:tag_id", tagsHandler.DeleteTag)

	categoriesRoutes := apiV1.Group("/categories")
	categoriesRoutes.Use(requireAuth)
	categoriesRoutes.Get("/", categoriesHandler.ListCategories)
	categoriesRoutes.Post("/", categoriesHandler.CreateCategory)
	categoriesRoutes.Patch("/:category_id", categoriesHandler.RenameCategory)
	categoriesRoutes.Delete("/:category_id", categoriesHandler.DeleteCategory)

	fiberApp.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "route not found",
		})
	})
}
