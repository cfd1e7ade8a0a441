// Package users содержит HTTP-обработчики для пользователей и графа дружбы.
package users

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
	LogHandlerCreateUser    = "handling create user request"
	LogHandlerUpdateUser    = "handling update user request"
	LogHandlerListUsers     = "handling list users request"
	LogHandlerGetUser       = "handling get user request"
	LogHandlerAddFriend     = "handling add friend request"
	LogHandlerRemoveFriend  = "handling remove friend request"
	LogHandlerFriends       = "handling list friends request"
	LogHandlerCommonFriends = "handling common friends request"

	ErrMsgInvalidUserID      = "invalid user id"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов для работы с пользователями.
type Handler struct {
	userUseCase *app.UserUseCase
}

// NewHandler создает новый экземпляр обработчика пользователей.
func NewHandler(userUseCase *app.UserUseCase) *Handler {
	return &Handler{
		userUseCase: userUseCase,
	}
}

// CreateUser обрабатывает запрос на создание пользователя.
func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.CreateUser"))
	log.Debug(userCtx, LogHandlerCreateUser)

	var user entities.User
	if err := ctx.Bind().Body(&user); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	created, err := h.userUseCase.CreateUser(userCtx, &user)
	if err != nil {
		log.Error(userCtx, "failed to create user", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, created)
}

// UpdateUser обрабатывает запрос на полное обновление пользователя.
func (h *Handler) UpdateUser(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.UpdateUser"))
	log.Debug(userCtx, LogHandlerUpdateUser)

	var user entities.User
	if err := ctx.Bind().Body(&user); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	updated, err := h.userUseCase.UpdateUser(userCtx, &user)
	if err != nil {
		log.Error(userCtx, "failed to update user", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, updated)
}

// ListUsers обрабатывает запрос на получение всех пользователей.
func (h *Handler) ListUsers(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ListUsers"))
	log.Debug(userCtx, LogHandlerListUsers)

	users, err := h.userUseCase.ListUsers(userCtx)
	if err != nil {
		log.Error(userCtx, "failed to list users", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, users)
}

// GetUser обрабатывает запрос на получение пользователя по id.
func (h *Handler) GetUser(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.GetUser"))
	log.Debug(userCtx, LogHandlerGetUser)

	id, err := pathID(ctx, "id")
	if err != nil {
		log.Error(userCtx, ErrMsgInvalidUserID, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidUserID)
	}

	user, err := h.userUseCase.GetUser(userCtx, id)
	if err != nil {
		log.Error(userCtx, "failed to get user", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, user)
}

// AddFriend обрабатывает запрос на добавление друга.
func (h *Handler) AddFriend(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.AddFriend"))
	log.Debug(userCtx, LogHandlerAddFriend)

	userID, friendID, err := pathIDPair(ctx, "id", "friendId")
	if err != nil {
		log.Error(userCtx, ErrMsgInvalidUserID, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidUserID)
	}

	friend, err := h.userUseCase.AddFriend(userCtx, userID, friendID)
	if err != nil {
		log.Error(userCtx, "failed to add friend", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, friend)
}

// RemoveFriend обрабатывает запрос на удаление друга.
func (h *Handler) RemoveFriend(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.RemoveFriend"))
	log.Debug(userCtx, LogHandlerRemoveFriend)

	userID, friendID, err := pathIDPair(ctx, "id", "friendId")
	if err != nil {
		log.Error(userCtx, ErrMsgInvalidUserID, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidUserID)
	}

	friend, err := h.userUseCase.RemoveFriend(userCtx, userID, friendID)
	if err != nil {
		log.Error(userCtx, "failed to remove friend", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, friend)
}

// Friends обрабатывает запрос на получение друзей пользователя.
func (h *Handler) Friends(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Friends"))
	log.Debug(userCtx, LogHandlerFriends)

	id, err := pathID(ctx, "id")
	if err != nil {
		log.Error(userCtx, ErrMsgInvalidUserID, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidUserID)
	}

	friends, err := h.userUseCase.Friends(userCtx, id)
	if err != nil {
		log.Error(userCtx, "failed to list friends", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, friends)
}

// CommonFriends обрабатывает запрос на получение общих друзей.
func (h *Handler) CommonFriends(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.CommonFriends"))
	log.Debug(userCtx, LogHandlerCommonFriends)

	userID, otherID, err := pathIDPair(ctx, "id", "otherId")
	if err != nil {
		log.Error(userCtx, ErrMsgInvalidUserID, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidUserID)
	}

	common, err := h.userUseCase.CommonFriends(userCtx, userID, otherID)
	if err != nil {
		log.Error(userCtx, "failed to list common friends", zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return sendJSON(ctx, common)
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
