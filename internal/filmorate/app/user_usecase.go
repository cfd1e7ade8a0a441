// Package app реализует бизнес-логику сервиса Filmorate.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

// UserUseCase представляет собой бизнес-логику работы с пользователями
// и графом дружбы.
type UserUseCase struct {
	userRepo          repositories.UserRepository
	enforceUniqueness bool
}

// NewUserUseCase создает новый экземпляр UserUseCase.
func NewUserUseCase(userRepo repositories.UserRepository, enforceUniqueness bool) *UserUseCase {
	return &UserUseCase{
		userRepo:          userRepo,
		enforceUniqueness: enforceUniqueness,
	}
}

// CreateUser проверяет и сохраняет нового пользователя. Пустое имя
// замещается логином до записи.
func (uc *UserUseCase) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	user.NormalizeName()

	if uc.enforceUniqueness {
		existing, err := uc.userRepo.FindByEmailOrLogin(ctx, user.Email, user.Login)
		if err != nil {
			return nil, fmt.Errorf("failed to check user uniqueness: %w", err)
		}
		if existing != nil {
			return nil, entities.ErrUserAlreadyExists
		}
	}

	created, err := uc.userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Log(ctx).Info(ctx, "user created", zap.Int64("user_id", created.ID))
	return created, nil
}

// UpdateUser полностью замещает запись пользователя по id из тела запроса.
func (uc *UserUseCase) UpdateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	user.NormalizeName()

	updated, err := uc.userRepo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, "user updated", zap.Int64("user_id", updated.ID))
	return updated, nil
}

// GetUser возвращает пользователя по id.
func (uc *UserUseCase) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	return uc.userRepo.FindByID(ctx, id)
}

// ListUsers возвращает всех пользователей.
func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := uc.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// AddFriend добавляет направленное ребро дружбы и возвращает друга.
// Оба идентификатора должны существовать.
func (uc *UserUseCase) AddFriend(ctx context.Context, userID, friendID int64) (*entities.User, error) {
	if err := uc.ensureBothExist(ctx, userID, friendID); err != nil {
		return nil, err
	}

	if err := uc.userRepo.AddFriend(ctx, userID, friendID); err != nil {
		return nil, fmt.Errorf("failed to add friend: %w", err)
	}

	logger.Log(ctx).Info(ctx, "friend added",
		zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))
	return uc.userRepo.FindByID(ctx, friendID)
}

// RemoveFriend удаляет ребро дружбы; отсутствие ребра не ошибка.
// Оба идентификатора должны существовать.
func (uc *UserUseCase) RemoveFriend(ctx context.Context, userID, friendID int64) (*entities.User, error) {
	if err := uc.ensureBothExist(ctx, userID, friendID); err != nil {
		return nil, err
	}

	if err := uc.userRepo.RemoveFriend(ctx, userID, friendID); err != nil {
		return nil, fmt.Errorf("failed to remove friend: %w", err)
	}

	logger.Log(ctx).Info(ctx, "friend removed",
		zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))
	return uc.userRepo.FindByID(ctx, friendID)
}

// Friends возвращает друзей пользователя по возрастанию id.
func (uc *UserUseCase) Friends(ctx context.Context, userID int64) ([]*entities.User, error) {
	if err := uc.userRepo.ExistsByID(ctx, userID); err != nil {
		return nil, err
	}
	return uc.userRepo.FindFriends(ctx, userID)
}

// CommonFriends возвращает пересечение множеств друзей двух пользователей.
func (uc *UserUseCase) CommonFriends(ctx context.Context, userID, otherID int64) ([]*entities.User, error) {
	if err := uc.ensureBothExist(ctx, userID, otherID); err != nil {
		return nil, err
	}
	return uc.userRepo.FindCommonFriends(ctx, userID, otherID)
}

func (uc *UserUseCase) ensureBothExist(ctx context.Context, firstID, secondID int64) error {
	if err := uc.userRepo.ExistsByID(ctx, firstID); err != nil {
		return err
	}
	return uc.userRepo.ExistsByID(ctx, secondID)
}
