package memory

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

// Справочные данные повторяют seed-строки миграции
// migrations/filmorate/000001_init.up.sql.
var (
	seedGenres = []entities.Genre{
		{ID: 1, Name: "Комедия"},
		{ID: 2, Name: "Драма"},
		{ID: 3, Name: "Мультфильм"},
		{ID: 4, Name: "Триллер"},
		{ID: 5, Name: "Документальный"},
		{ID: 6, Name: "Боевик"},
	}
	seedMpa = []entities.Mpa{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
)

// GenreStorage - справочник жанров в памяти.
type GenreStorage struct {
	genres []entities.Genre
}

// NewGenreStorage создает справочник с предзаполненными жанрами.
func NewGenreStorage() repositories.GenreRepository {
	return &GenreStorage{genres: seedGenres}
}

func (s *GenreStorage) FindAll(_ context.Context) ([]entities.Genre, error) {
	genres := make([]entities.Genre, len(s.genres))
	copy(genres, s.genres)
	return genres, nil
}

func (s *GenreStorage) FindByID(_ context.Context, id int64) (*entities.Genre, error) {
	for _, g := range s.genres {
		if g.ID == id {
			found := g
			return &found, nil
		}
	}
	return nil, entities.NewNotFoundError(entities.KindGenre, id)
}

// MpaStorage - справочник рейтингов MPA в памяти.
type MpaStorage struct {
	ratings []entities.Mpa
}

// NewMpaStorage создает справочник с предзаполненными рейтингами.
func NewMpaStorage() repositories.MpaRepository {
	return &MpaStorage{ratings: seedMpa}
}

func (s *MpaStorage) FindAll(_ context.Context) ([]entities.Mpa, error) {
	ratings := make([]entities.Mpa, len(s.ratings))
	copy(ratings, s.ratings)
	return ratings, nil
}

func (s *MpaStorage) FindByID(_ context.Context, id int64) (*entities.Mpa, error) {
	for _, m := range s.ratings {
		if m.ID == id {
			found := m
			return &found, nil
		}
	}
	return nil, entities.NewNotFoundError(entities.KindMpa, id)
}
