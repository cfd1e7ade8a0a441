// Package films содержит HTTP-обработчики для фильмов, лайков и рейтинга.
package films

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/http/httperr"
	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/app"
	"filmorate/internal/filmorate/domain/entities"
	"filmorate/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateFilm   = "handling create film request"
	LogHandlerUpdateFilm   = "handling update film request"
	LogHandlerListFilms    = "handling list films request"
	LogHandlerGetFilm      = "handling get film request"
	LogHandlerAddLike      = "handling add like request"
	LogHandlerRemoveLike   = "handling remove like request"
	LogHandlerPopularFilms = "handling popular films request"

	ErrMsgInvalidFilmID      = "invalid film id"
	ErrMsgInvalidCount       = "invalid count parameter"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов для работы с фильмами.
type Handler struct {
	filmUseCase *app.FilmUseCase
}

// NewHandler создает новый экземпляр обработчика фильмов.
func NewHandler(filmUseCase *app.FilmUseCase) *Handler {
	return &Handler{
		filmUseCase: filmUseCase,
	}
}

// CreateFilm обрабатывает запрос на создание фильма.
func (h *Handler) CreateFilm(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.CreateFilm"))
	log.Debug(userCtx, LogHandlerCreateFilm)

	var film entities.Film
	if err := ctx.Bind().Body(&film); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	created, err := h.filmUseCase.CreateFilm(userCtx, &film)
	if err != nil {
		log.Error(userCtx, "failed to create film", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, created)
}

// UpdateFilm обрабатывает запрос на полное обновление фильма.
func (h *Handler) UpdateFilm(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.UpdateFilm"))
	log.Debug(userCtx, LogHandlerUpdateFilm)

	var film entities.Film
	if err := ctx.Bind().Body(&film); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	updated, err := h.filmUseCase.UpdateFilm(userCtx, &film)
	if err != nil {
		log.Error(userCtx, "failed to update film", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, updated)
}

// ListFilms обрабатывает запрос на получение всех фильмов.
func (h *Handler) ListFilms(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ListFilms"))
	log.Debug(userCtx, LogHandlerListFilms)

	films, err := h.filmUseCase.ListFilms(userCtx)
	if err != nil {
		log.Error(userCtx, "failed to list films", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, films)
}

// GetFilm обрабатывает запрос на получение фильма по id.
func (h *Handler) GetFilm(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.GetFilm"))
	log.Debug(userCtx, LogHandlerGetFilm)

	id, err := pathID(ctx, "id")
	if err != nil {
		log.Error(userCtx, ErrMsgInvalidFilmID, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidFilmID)
	}

	film, err := h.filmUseCase.GetFilm(userCtx, id)
	if err != nil {
		log.Error(userCtx, "failed to get film", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, film)
}

// AddLike обрабатывает запрос на добавление лайка фильму.
func (h *Handler) AddLike(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.AddLike"))
	log.Debug(userCtx, LogHandlerAddLike)

	filmID, userID, err := pathIDPair(ctx, "id", "userId")
	if err != nil {
		log.Error(userCtx, ErrMsgInvalidFilmID, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidFilmID)
	}

	film, err := h.filmUseCase.AddLike(userCtx, filmID, userID)
	if err != nil {
		log.Error(userCtx, "failed to add like", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, film)
}

// RemoveLike обрабатывает запрос на удаление лайка.
func (h *Handler) RemoveLike(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.RemoveLike"))
	log.Debug(userCtx, LogHandlerRemoveLike)

	filmID, userID, err := pathIDPair(ctx, "id", "userId")
	if err != nil {
		log.Error(userCtx, ErrMsgInvalidFilmID, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidFilmID)
	}

	film, err := h.filmUseCase.RemoveLike(userCtx, filmID, userID)
	if err != nil {
		log.Error(userCtx, "failed to remove like", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, film)
}

// PopularFilms обрабатывает запрос на получение самых популярных фильмов.
func (h *Handler) PopularFilms(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.PopularFilms"))
	log.Debug(userCtx, LogHandlerPopularFilms)

	count := 0
	if raw := ctx.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Error(userCtx, ErrMsgInvalidCount, zap.String("count", raw))
			return badRequest(ctx, ErrMsgInvalidCount)
		}
		count = parsed
	}

	films, err := h.filmUseCase.PopularFilms(userCtx, count)
	if err != nil {
		log.Error(userCtx, "failed to list popular films", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, films)
}

func requestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}

func pathID(ctx fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid path parameter %q: %w", name, err)
	}
	return id, nil
}

func pathIDPair(ctx fiber.Ctx, first, second string) (int64, int64, error) {
	firstID, err := pathID(ctx, first)
	if err != nil {
		return 0, 0, err
	}
	secondID, err := pathID(ctx, second)
	if err != nil {
		return 0, 0, err
	}
	return firstID, secondID, nil
}

func badRequest(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   httperr.LabelValidation,
		"message": message,
	}); err != nil {
		return fmt.Errorf("failed to send bad request response: %w", err)
	}
	return nil
}

func sendJSON(ctx fiber.Ctx, payload any) error {
	if err := ctx.JSON(payload); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
