// Package repositories определяет интерфейсы хранилищ сервиса Filmorate.
package repositories

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// UserRepository определяет интерфейс хранилища пользователей и графа дружбы.
//
// ExistsByID - проверка существования (guard): возвращает доменную ошибку
// NotFound, если записи нет, иначе nil. Каждая операция над ребрами графа
// обязана вызвать guard для всех идентификаторов до изменения данных.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	FindAll(ctx context.Context) ([]*entities.User, error)
	ExistsByID(ctx context.Context, id int64) error

	// FindByEmailOrLogin возвращает (nil, nil), когда совпадений нет.
	FindByEmailOrLogin(ctx context.Context, email, login string) (*entities.User, error)

	// AddFriend вставляет направленное ребро (userID -> friendID); идемпотентно.
	AddFriend(ctx context.Context, userID, friendID int64) error
	// RemoveFriend удаляет ребро, если оно есть; отсутствие ребра не ошибка.
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	FindFriends(ctx context.Context, userID int64) ([]*entities.User, error)
	// FindCommonFriends пересекает множества друзей по идентификаторам.
	FindCommonFriends(ctx context.Context, userID, otherID int64) ([]*entities.User, error)
}
