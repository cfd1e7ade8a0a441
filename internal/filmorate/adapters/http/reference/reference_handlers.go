// Package reference содержит HTTP-обработчики справочников жанров и рейтингов MPA.
package reference

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/http/httperr"
	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/app"
	"filmorate/pkg/logger"
)

const (
	LogHandlerListGenres = "handling list genres request"
	LogHandlerGetGenre   = "handling get genre request"
	LogHandlerListMpa    = "handling list mpa request"
	LogHandlerGetMpa     = "handling get mpa request"

	ErrMsgInvalidReferenceID = "invalid reference id"
)

// Handler обработчик HTTP-запросов для справочников.
type Handler struct {
	genreUseCase *app.GenreUseCase
	mpaUseCase   *app.MpaUseCase
}

// NewHandler создает новый экземпляр обработчика справочников.
func NewHandler(genreUseCase *app.GenreUseCase, mpaUseCase *app.MpaUseCase) *Handler {
	return &Handler{
		genreUseCase: genreUseCase,
		mpaUseCase:   mpaUseCase,
	}
}

// ListGenres обрабатывает запрос на получение всех жанров.
func (h *Handler) ListGenres(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ListGenres"))
	log.Debug(userCtx, LogHandlerListGenres)

	genres, err := h.genreUseCase.ListGenres(userCtx)
	if err != nil {
		log.Error(userCtx, "failed to list genres", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, genres)
}

// GetGenre обрабатывает запрос на получение жанра по id.
func (h *Handler) GetGenre(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.GetGenre"))
	log.Debug(userCtx, LogHandlerGetGenre)

	id, err := pathID(ctx, "id")
	if err != nil {
		log.Error(userCtx, ErrMsgInvalidReferenceID, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidReferenceID)
	}

	genre, err := h.genreUseCase.GetGenre(userCtx, id)
	if err != nil {
		log.Error(userCtx, "failed to get genre", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, genre)
}

// ListMpa обрабатывает запрос на получение всех рейтингов MPA.
func (h *Handler) ListMpa(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ListMpa"))
	log.Debug(userCtx, LogHandlerListMpa)

	ratings, err := h.mpaUseCase.ListMpa(userCtx)
	if err != nil {
		log.Error(userCtx, "failed to list mpa ratings", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, ratings)
}

// GetMpa обрабатывает запрос на получение рейтинга MPA по id.
func (h *Handler) GetMpa(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.GetMpa"))
	log.Debug(userCtx, LogHandlerGetMpa)

	id, err := pathID(ctx, "id")
	if err != nil {
		log.Error(userCtx, ErrMsgInvalidReferenceID, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidReferenceID)
	}

	rating, err := h.mpaUseCase.GetMpa(userCtx, id)
	if err != nil {
		log.Error(userCtx, "failed to get mpa rating", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, rating)
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
