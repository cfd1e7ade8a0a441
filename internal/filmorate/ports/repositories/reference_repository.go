package repositories

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// GenreRepository определяет интерфейс справочника жанров (только чтение).
type GenreRepository interface {
	FindAll(ctx context.Context) ([]entities.Genre, error)
	FindByID(ctx context.Context, id int64) (*entities.Genre, error)
}

// MpaRepository определяет интерфейс справочника рейтингов MPA (только чтение).
type MpaRepository interface {
	FindAll(ctx context.Context) ([]entities.Mpa, error)
	FindByID(ctx context.Context, id int64) (*entities.Mpa, error)
}
