// Package httperr преобразует ошибки предметной области в HTTP ответы.
package httperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"filmorate/internal/filmorate/domain/entities"
)

// Метки ошибок в теле ответа.
const (
	LabelNoSuchUser      = "No such user."
	LabelNoSuchFilm      = "No such film."
	LabelNoSuchGenre     = "No such genre."
	LabelNoSuchMpa       = "No such mpa rating."
	LabelNotFound        = "Not found."
	LabelEmptyCollection = "Film collection is empty."
	LabelValidation      = "Validation error."
	LabelAlreadyExists   = "User already exists."
	LabelInternal        = "Internal server error."
)

// Respond отправляет ответ с кодом и телом, соответствующими ошибке.
func Respond(ctx fiber.Ctx, err error) error {
	status, label := classify(err)

	if sendErr := ctx.Status(status).JSON(fiber.Map{
		"error":   label,
		"message": err.Error(),
	}); sendErr != nil {
		return fmt.Errorf("error sending error response: %w", sendErr)
	}
	return nil
}

func classify(err error) (int, string) {
	var notFound *entities.NotFoundError
	if errors.As(err, &notFound) {
		return fiber.StatusNotFound, notFoundLabel(notFound.Kind)
	}

	switch {
	case errors.Is(err, entities.ErrEmptyFilmCollection):
		return fiber.StatusNotFound, LabelEmptyCollection
	case errors.Is(err, entities.ErrNotFound):
		return fiber.StatusNotFound, LabelNotFound
	case errors.Is(err, entities.ErrValidation):
		return fiber.StatusBadRequest, LabelValidation
	case errors.Is(err, entities.ErrUserAlreadyExists):
		return fiber.StatusConflict, LabelAlreadyExists
	default:
		return fiber.StatusInternalServerError, LabelInternal
	}
}

func notFoundLabel(kind string) string {
	switch kind {
	case entities.KindUser:
		return LabelNoSuchUser
	case entities.KindFilm:
		return LabelNoSuchFilm
	case entities.KindGenre:
		return LabelNoSuchGenre
	case entities.KindMpa:
		return LabelNoSuchMpa
	default:
		return LabelNotFound
	}
}
