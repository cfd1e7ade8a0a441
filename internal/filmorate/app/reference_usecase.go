package app

import (
	"context"
	"fmt"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

// GenreUseCase отдает справочник жанров.
type GenreUseCase struct {
	genreRepo repositories.GenreRepository
}

// NewGenreUseCase создает новый экземпляр GenreUseCase.
func NewGenreUseCase(genreRepo repositories.GenreRepository) *GenreUseCase {
	return &GenreUseCase{genreRepo: genreRepo}
}

// ListGenres возвращает все жанры по возрастанию id.
func (uc *GenreUseCase) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	genres, err := uc.genreRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

// GetGenre возвращает жанр по id.
func (uc *GenreUseCase) GetGenre(ctx context.Context, id int64) (*entities.Genre, error) {
	return uc.genreRepo.FindByID(ctx, id)
}

// MpaUseCase отдает справочник рейтингов MPA.
type MpaUseCase struct {
	mpaRepo repositories.MpaRepository
}

// NewMpaUseCase создает новый экземпляр MpaUseCase.
func NewMpaUseCase(mpaRepo repositories.MpaRepository) *MpaUseCase {
	return &MpaUseCase{mpaRepo: mpaRepo}
}

// ListMpa возвращает все рейтинги по возрастанию id.
func (uc *MpaUseCase) ListMpa(ctx context.Context) ([]entities.Mpa, error) {
	ratings, err := uc.mpaRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list mpa ratings: %w", err)
	}
	return ratings, nil
}

// GetMpa возвращает рейтинг по id.
func (uc *MpaUseCase) GetMpa(ctx context.Context, id int64) (*entities.Mpa, error) {
	return uc.mpaRepo.FindByID(ctx, id)
}
