// Package http содержит компоненты для HTTP сервера.
package http

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"filmorate/internal/filmorate/adapters/http/films"
	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/adapters/http/reference"
	"filmorate/internal/filmorate/adapters/http/users"
	"filmorate/internal/filmorate/app"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера. storagePing
// может быть nil, тогда /health сообщает только о живости процесса.
func SetupRouter(
	fiberApp *fiber.App,
	userUseCase *app.UserUseCase,
	filmUseCase *app.FilmUseCase,
	genreUseCase *app.GenreUseCase,
	mpaUseCase *app.MpaUseCase,
	storagePing func(ctx context.Context) error,
) {
	usersHandler := users.NewHandler(userUseCase)
	filmsHandler := films.NewHandler(filmUseCase)
	referenceHandler := reference.NewHandler(genreUseCase, mpaUseCase)

	// Middleware для всех запросов.
	fiberApp.Use(middleware.NewLoggerMiddleware())
	fiberApp.Use(middleware.NewRecoveryMiddleware())

	fiberApp.Get("/health", func(c fiber.Ctx) error {
		if storagePing != nil {
			if err := storagePing(c.Context()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "degraded", "message": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Пользователи и граф дружбы.
	userRoutes := fiberApp.Group("/users")
	userRoutes.Post("/", usersHandler.CreateUser)
	userRoutes.Put("/", usersHandler.UpdateUser)
	userRoutes.Get("/", usersHandler.ListUsers)
	userRoutes.Get("/:id", usersHandler.GetUser)
	userRoutes.Put("/:id/friends/:friendId", usersHandler.AddFriend)
	userRoutes.Delete("/:id/friends/:friendId", usersHandler.RemoveFriend)
	userRoutes.Get("/:id/friends", usersHandler.Friends)
	userRoutes.Get("/:id/friends/common/:otherId", usersHandler.CommonFriends)

	// Фильмы, лайки и рейтинг. Маршрут popular регистрируется раньше :id.
	filmRoutes := fiberApp.Group("/films")
	filmRoutes.Post("/", filmsHandler.CreateFilm)
	filmRoutes.Put("/", filmsHandler.UpdateFilm)
	filmRoutes.Get("/", filmsHandler.ListFilms)
	filmRoutes.Get("/popular", filmsHandler.PopularFilms)
	filmRoutes.Get("/:id", filmsHandler.GetFilm)
	filmRoutes.Put("/:id/like/:userId", filmsHandler.AddLike)
	filmRoutes.Delete("/:id/like/:userId", filmsHandler.RemoveLike)

	// Справочники.
	genreRoutes := fiberApp.Group("/genres")
	genreRoutes.Get("/", referenceHandler.ListGenres)
	genreRoutes.Get("/:id", referenceHandler.GetGenre)

	mpaRoutes := fiberApp.Group("/mpa")
	mpaRoutes.Get("/", referenceHandler.ListMpa)
	mpaRoutes.Get("/:id", referenceHandler.GetMpa)

	// Обработчик для несуществующих маршрутов.
	fiberApp.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
