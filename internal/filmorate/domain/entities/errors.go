package entities

import (
	"errors"
	"fmt"
)

// Базовые ошибки домена.
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrUserAlreadyExists   = errors.New("user with the same email or login already exists")
	ErrEmptyFilmCollection = errors.New("film collection is empty")
)

// Виды сущностей для NotFoundError.
const (
	KindUser  = "user"
	KindFilm  = "film"
	KindGenre = "genre"
	KindMpa   = "mpa"
)

// NotFoundError сообщает, что записи с данным идентификатором нет в хранилище.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError создает NotFoundError для сущности с идентификатором.
func NewNotFoundError(kind string, id int64) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ValidationError сообщает, что поле нарушает инвариант модели.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError создает ValidationError для поля.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
