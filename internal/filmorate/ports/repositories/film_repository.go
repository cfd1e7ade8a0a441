package repositories

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// FilmRepository определяет интерфейс хранилища фильмов и лайков.
// Возвращаемые фильмы несут число лайков в поле Rate.
type FilmRepository interface {
	Create(ctx context.Context, film *entities.Film) (*entities.Film, error)
	Update(ctx context.Context, film *entities.Film) (*entities.Film, error)
	FindByID(ctx context.Context, id int64) (*entities.Film, error)
	FindAll(ctx context.Context) ([]*entities.Film, error)
	ExistsByID(ctx context.Context, id int64) error

	// AddLike вставляет ассоциацию (filmID, userID); идемпотентно.
	AddLike(ctx context.Context, filmID, userID int64) error
	// RemoveLike удаляет ассоциацию, если она есть; отсутствие не ошибка.
	RemoveLike(ctx context.Context, filmID, userID int64) error
}
