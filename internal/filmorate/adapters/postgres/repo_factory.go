package postgres

import (
	"filmorate/internal/filmorate/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	userRepo  repositories.UserRepository
	filmRepo  repositories.FilmRepository
	genreRepo repositories.GenreRepository
	mpaRepo   repositories.MpaRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:  NewUserRepository(pool),
		filmRepo:  NewFilmRepository(pool),
		genreRepo: NewGenreRepository(pool),
		mpaRepo:   NewMpaRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// FilmRepository возвращает репозиторий фильмов.
func (f *RepositoryFactory) FilmRepository() repositories.FilmRepository {
	return f.filmRepo
}

// GenreRepository возвращает репозиторий справочника жанров.
func (f *RepositoryFactory) GenreRepository() repositories.GenreRepository {
	return f.genreRepo
}

// MpaRepository возвращает репозиторий справочника рейтингов MPA.
func (f *RepositoryFactory) MpaRepository() repositories.MpaRepository {
	return f.mpaRepo
}
