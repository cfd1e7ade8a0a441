// Package memory реализует хранилища Filmorate в памяти процесса.
// Все структуры защищены мьютексом и ничем не делятся между экземплярами.
package memory

import (
	"context"
	"sort"
	"sync"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

// UserStorage хранит пользователей и направленные ребра дружбы в памяти.
type UserStorage struct {
	mu      sync.RWMutex
	users   map[int64]*entities.User
	friends map[int64]map[int64]struct{}
	nextID  int64
}

// NewUserStorage создает пустое хранилище пользователей.
func NewUserStorage() repositories.UserRepository {
	return &UserStorage{
		users:   make(map[int64]*entities.User),
		friends: make(map[int64]map[int64]struct{}),
	}
}

// Create присваивает новый идентификатор и сохраняет запись.
func (s *UserStorage) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	stored := cloneUser(user)
	stored.ID = s.nextID
	s.users[stored.ID] = stored

	return cloneUser(stored), nil
}

// Update замещает запись целиком; отсутствующий id - ошибка NotFound.
func (s *UserStorage) Update(_ context.Context, user *entities.User) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return nil, entities.NewNotFoundError(entities.KindUser, user.ID)
	}
	s.users[user.ID] = cloneUser(user)

	return cloneUser(user), nil
}

// FindByID возвращает копию записи или ошибку NotFound.
func (s *UserStorage) FindByID(_ context.Context, id int64) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, entities.NewNotFoundError(entities.KindUser, id)
	}
	return cloneUser(user), nil
}

// FindAll возвращает всех пользователей в порядке создания.
func (s *UserStorage) FindAll(_ context.Context) ([]*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.usersByIDs(s.allIDs()), nil
}

// ExistsByID - guard существования пользователя.
func (s *UserStorage) ExistsByID(_ context.Context, id int64) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[id]; !ok {
		return entities.NewNotFoundError(entities.KindUser, id)
	}
	return nil
}

// FindByEmailOrLogin возвращает первого пользователя с совпадающим email
// или login либо (nil, nil), когда совпадений нет.
func (s *UserStorage) FindByEmailOrLogin(_ context.Context, email, login string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.allIDs() {
		u := s.users[id]
		if u.Email == email || u.Login == login {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// AddFriend вставляет направленное ребро; повторная вставка не меняет множество.
func (s *UserStorage) AddFriend(_ context.Context, userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.friends[userID]
	if !ok {
		set = make(map[int64]struct{})
		s.friends[userID] = set
	}
	set[friendID] = struct{}{}
	return nil
}

// RemoveFriend удаляет ребро; отсутствие ребра не ошибка.
func (s *UserStorage) RemoveFriend(_ context.Context, userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if set, ok := s.friends[userID]; ok {
		delete(set, friendID)
	}
	return nil
}

// FindFriends возвращает пользователей, на которых указывают ребра (userID -> *).
func (s *UserStorage) FindFriends(_ context.Context, userID int64) ([]*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.friends[userID]))
	for id := range s.friends[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return s.usersByIDs(ids), nil
}

// FindCommonFriends пересекает множества друзей двух пользователей по id.
func (s *UserStorage) FindCommonFriends(_ context.Context, userID, otherID int64) ([]*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	other := s.friends[otherID]
	ids := make([]int64, 0)
	for id := range s.friends[userID] {
		if _, ok := other[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return s.usersByIDs(ids), nil
}

// allIDs возвращает идентификаторы всех пользователей по возрастанию.
// Вызывается под блокировкой.
func (s *UserStorage) allIDs() []int64 {
	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// usersByIDs отображает идентификаторы на копии записей. Вызывается под блокировкой.
func (s *UserStorage) usersByIDs(ids []int64) []*entities.User {
	users := make([]*entities.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, cloneUser(u))
		}
	}
	return users
}

func cloneUser(u *entities.User) *entities.User {
	c := *u
	return &c
}
